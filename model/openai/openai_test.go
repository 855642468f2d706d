package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/model"
)

const completionWithToolCall = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "gpt-4o-mini",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": "checking",
      "tool_calls": [{
        "id": "call_1",
        "type": "function",
        "function": {"name": "add", "arguments": "{\"a\":2,\"b\":3}"}
      }]
    }
  }],
  "usage": {"prompt_tokens": 11, "completion_tokens": 7, "total_tokens": 18}
}`

func newTestServer(t *testing.T, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestModel_Generate(t *testing.T) {
	var seen map[string]any
	srv := newTestServer(t, completionWithToolCall, &seen)
	defer srv.Close()

	m := NewModel(func(o *Options) {
		o.APIKey = "test"
		o.BaseURL = srv.URL + "/"
	})

	req := model.Request{
		Messages: []core.Message{
			core.NewTextMessage(core.RoleSystem, "be terse"),
			core.NewTextMessage(core.RoleUser, "add 2 and 3"),
			{Role: core.RoleAssistant, Parts: []core.Part{
				core.ToolCallPart{ToolCall: core.ToolCall{ID: "call_0", Name: "add", Input: json.RawMessage(`{"a":1,"b":1}`)}},
			}},
			{Role: core.RoleTool, Parts: []core.Part{
				core.ToolResultPart{CallID: "call_0", Name: "add", Content: `{"sum":2}`},
			}},
		},
		Tools: []model.ToolDefinition{{
			Name:        "add",
			Description: "Add two numbers",
			Parameters: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"a": {Type: "number"},
					"b": {Type: "number"},
				},
			},
		}},
	}

	resp, err := m.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "checking", resp.Text)
	assert.Equal(t, "tool_calls", resp.FinishReason)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "add", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"a":2,"b":3}`, string(resp.ToolCalls[0].Input))
	assert.Equal(t, &core.Usage{InputTokens: 11, OutputTokens: 7, TotalTokens: 18}, resp.Usage)

	msgs, ok := seen["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 4)
	roles := make([]string, 0, len(msgs))
	for _, raw := range msgs {
		roles = append(roles, raw.(map[string]any)["role"].(string))
	}
	assert.Equal(t, []string{"system", "user", "assistant", "tool"}, roles)
	assert.Equal(t, "call_0", msgs[3].(map[string]any)["tool_call_id"])

	tools, ok := seen["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	fn := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "add", fn["name"])
}

func TestModel_Info(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.APIKey = "test"
		o.Model = "gpt-test"
	})
	info := m.Info()
	assert.Equal(t, "gpt-test", info.Name)
	assert.Equal(t, "openai", info.Provider)
	assert.True(t, info.SupportsTools)
}
