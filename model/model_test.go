package model

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/core"
)

func TestScriptedModel_ReplaysInOrder(t *testing.T) {
	m := NewScriptedModel(
		Response{Text: "first"},
		Response{Text: "second"},
	)
	ctx := context.Background()
	req := Request{Messages: []core.Message{core.NewTextMessage(core.RoleUser, "hi")}}

	r1, err := m.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "first", r1.Text)

	r2, err := m.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "second", r2.Text)

	_, err = m.Generate(ctx, req)
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Equal(t, 3, m.Calls())
	assert.Len(t, m.Requests(), 3)
}

func TestScriptedModel_Fallback(t *testing.T) {
	m := NewScriptedModel().WithFallback(Response{Text: "again"})
	for range 3 {
		resp, err := m.Generate(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "again", resp.Text)
	}
}

func TestScriptedModel_RequestSnapshotIsolated(t *testing.T) {
	m := NewScriptedModel(Response{Text: "ok"})
	msgs := []core.Message{core.NewTextMessage(core.RoleUser, "a")}
	_, err := m.Generate(context.Background(), Request{Messages: msgs})
	require.NoError(t, err)

	msgs[0] = core.NewTextMessage(core.RoleUser, "mutated")
	assert.Equal(t, "a", m.Requests()[0].Messages[0].Text())
}

func TestScriptedModel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScriptedModel(Response{}).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToolDefinition_ParametersMap(t *testing.T) {
	def := ToolDefinition{
		Name: "add",
		Parameters: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"a": {Type: "number"},
			},
			Required: []string{"a"},
		},
	}
	params, err := def.ParametersMap()
	require.NoError(t, err)
	assert.Equal(t, "object", params["type"])
	assert.Contains(t, params["properties"], "a")
	assert.Equal(t, []any{"a"}, params["required"])

	empty, err := ToolDefinition{Name: "noop"}.ParametersMap()
	require.NoError(t, err)
	assert.Equal(t, "object", empty["type"])
}
