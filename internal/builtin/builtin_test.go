package builtin

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

func execute(t *testing.T, tl tool.Tool, input string) tool.Result {
	t.Helper()
	res, err := tool.NewInvoker().Execute(context.Background(), tool.MustRegistry(tl), core.ToolCall{
		ID: "1", Name: tl.Name(), Input: json.RawMessage(input),
	})
	require.NoError(t, err)
	return res
}

func TestCalculator(t *testing.T) {
	calc := Calculator()

	tests := []struct {
		name     string
		input    string
		expected float64
		success  bool
	}{
		{name: "add", input: `{"operation":"add","a":2,"b":3}`, expected: 5, success: true},
		{name: "subtract", input: `{"operation":"subtract","a":2,"b":3}`, expected: -1, success: true},
		{name: "multiply", input: `{"operation":"multiply","a":4,"b":2.5}`, expected: 10, success: true},
		{name: "divide", input: `{"operation":"divide","a":9,"b":3}`, expected: 3, success: true},
		{name: "power", input: `{"operation":"power","a":2,"b":10}`, expected: 1024, success: true},
		{name: "sqrt", input: `{"operation":"sqrt","a":16}`, expected: 4, success: true},
		{name: "divide by zero", input: `{"operation":"divide","a":1,"b":0}`},
		{name: "negative sqrt", input: `{"operation":"sqrt","a":-1}`},
		{name: "missing b", input: `{"operation":"add","a":1}`},
		{name: "unknown op rejected by schema", input: `{"operation":"modulo","a":1,"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, calc, tt.input)
			assert.Equal(t, tt.success, res.Success, res.Error)
			if tt.success {
				assert.InDelta(t, tt.expected, res.Output.(CalculatorResult).Result, 1e-9)
			}
		})
	}
}

func TestCalculator_EnumInSchema(t *testing.T) {
	schema := Calculator().Parameters()
	assert.Equal(t, operations, schema.Properties["operation"].Enum)
	assert.ElementsMatch(t, []string{"operation", "a"}, schema.Required)
}

func TestClock(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	clock := Clock(func() time.Time { return fixed })

	res := execute(t, clock, `{}`)
	require.True(t, res.Success, res.Error)
	out := res.Output.(ClockResult)
	assert.Equal(t, "2025-03-14T15:09:26Z", out.Time)
	assert.Equal(t, "UTC", out.Timezone)
	assert.Equal(t, "Friday", out.Weekday)

	res = execute(t, clock, `{"timezone":"Mars/Olympus"}`)
	assert.False(t, res.Success)
}

func TestTextStats(t *testing.T) {
	res := execute(t, TextStats(), `{"text":"hello world\nsecond line"}`)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, TextStatsResult{Characters: 23, Words: 4, Lines: 2}, res.Output)

	res = execute(t, TextStats(), `{"text":""}`)
	require.True(t, res.Success)
	assert.Equal(t, TextStatsResult{}, res.Output)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Names()))
	assert.Equal(t, []string{"calculator", "clock", "text_stats"}, Names())

	some, err := Select([]string{"clock"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "clock", some[0].Name())

	_, err = Select([]string{"teleport"})
	assert.Error(t, err)
}
