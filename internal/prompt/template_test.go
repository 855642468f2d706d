package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		vars     map[string]any
		expected string
		wantErr  bool
	}{
		{name: "plain", text: "no markers", expected: "no markers"},
		{name: "variable", text: "Today is {{ .date }}.", vars: map[string]any{"date": "Monday"}, expected: "Today is Monday."},
		{name: "no html escaping", text: "{{ .q }}", vars: map[string]any{"q": "a < b & c"}, expected: "a < b & c"},
		{name: "funcs", text: `{{ upper .x }} {{ default "n/a" .y }}`, vars: map[string]any{"x": "hi", "y": ""}, expected: "HI n/a"},
		{name: "missing key", text: "{{ .absent }}", vars: map[string]any{}, wantErr: true},
		{name: "parse error", text: "{{ .x ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.text, tt.vars)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestVars(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "1"}, Vars(map[string]string{"a": "1"}))
}
