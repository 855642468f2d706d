package agentkit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/agent"
	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/model"
	"github.com/hupe1980/agentkit/subagent"
	"github.com/hupe1980/agentkit/tool"
)

type lookupArgs struct {
	Key string `json:"key"`
}

func TestDelegationEndToEnd(t *testing.T) {
	lookup, err := tool.NewFunctionTool("lookup", "Look up a value", func(_ *core.ToolContext, in lookupArgs) (map[string]string, error) {
		return map[string]string{"key": in.Key, "value": "42"}, nil
	})
	require.NoError(t, err)

	def, err := DefineSubagent(subagent.Definition{
		Name:         "fact-finder",
		Description:  "Finds facts using lookup",
		SystemPrompt: "You find facts.",
	})
	require.NoError(t, err)
	assert.Equal(t, agent.DefaultMaxIterations, def.MaxIterations)

	// one shared scripted model serves parent and child in call order
	m := model.NewScriptedModel(
		model.Response{ToolCalls: []core.ToolCall{{ID: "p1", Name: "subagent_fact-finder", Input: json.RawMessage(`{"instruction":"what is the answer?"}`)}}},
		model.Response{ToolCalls: []core.ToolCall{{ID: "c1", Name: "lookup", Input: json.RawMessage(`{"key":"answer"}`)}}},
		model.Response{Text: "The answer is 42."},
		model.Response{Text: "Subagent says: The answer is 42."},
	)

	base := tool.MustRegistry(lookup)
	delegate, err := CreateDelegationTool(def, subagent.Context{Model: m, Tools: base})
	require.NoError(t, err)

	tools, err := base.With(delegate)
	require.NoError(t, err)

	var steps int
	res, err := Run(context.Background(), agent.Config{
		Model:  m,
		Tools:  tools,
		Input:  "Ask the fact finder.",
		OnStep: func(agent.Step) { steps++ },
	})
	require.NoError(t, err)

	assert.Equal(t, "Subagent says: The answer is 42.", res.Output)
	assert.Equal(t, 2, steps)
	assert.Equal(t, 4, m.Calls())

	reqs := m.Requests()
	// the child never sees the delegation tool
	var childTools []string
	for _, d := range reqs[1].Tools {
		childTools = append(childTools, d.Name)
	}
	assert.Equal(t, []string{"lookup"}, childTools)
	assert.Equal(t, "You find facts.", reqs[1].Messages[0].Text())

	tr := res.Messages[3].ToolResults()
	require.Len(t, tr, 1)
	assert.Equal(t, "The answer is 42.", tr[0].Content)
}

func TestRunSubagent(t *testing.T) {
	m := model.NewScriptedModel(model.Response{Text: "done"})
	res, err := RunSubagent(context.Background(), subagent.Definition{Name: "worker", Description: "Works"}, "work", subagent.Context{Model: m})
	require.NoError(t, err)
	assert.Equal(t, "worker", res.SubagentName)
	assert.Equal(t, "done", res.Output)
}

func TestDefineSubagent_Invalid(t *testing.T) {
	_, err := DefineSubagent(subagent.Definition{Name: "Bad Name!", Description: "x"})
	var de *subagent.DefinitionError
	assert.ErrorAs(t, err, &de)
}
