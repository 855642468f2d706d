package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentkit/config"
	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/logging"
	"github.com/hupe1980/agentkit/model"
)

const testConfig = `
[agent]
system_prompt = "Assist {{ .team }}."
tools = ["calculator", "text_stats"]
max_iterations = 3

[agent.vars]
team = "the QA team"

[[subagents]]
name = "math-helper"
description = "Does arithmetic"
system_prompt = "You help {{ .team }} with math."
tools = ["calculator"]
`

func loadTestConfig(t *testing.T, body string) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestBuildApp(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)

	a, err := buildApp(cfg, model.NewScriptedModel(), logging.NoOpLogger{})
	require.NoError(t, err)
	assert.Equal(t, []string{"calculator", "subagent_math-helper", "text_stats"}, a.tools.Names())

	runCfg, err := a.agentConfig("hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "Assist the QA team.", runCfg.SystemPrompt)
	assert.Equal(t, 3, runCfg.MaxIterations)
	assert.Equal(t, "hi", runCfg.Input)
}

func TestBuildApp_Errors(t *testing.T) {
	_, err := buildApp(loadTestConfig(t, `
[agent]
tools = ["teleport"]
`), model.NewScriptedModel(), nil)
	assert.Error(t, err)

	_, err = buildApp(loadTestConfig(t, `
[[subagents]]
name = "Bad Name"
description = "x"
`), model.NewScriptedModel(), nil)
	assert.Error(t, err)
}

func TestNewModel(t *testing.T) {
	for _, provider := range []string{"openai", "anthropic"} {
		m, err := newModel(config.ModelConfig{Provider: provider, Name: "m", APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, provider, m.Info().Provider)
	}

	_, err := newModel(config.ModelConfig{Provider: "acme"})
	assert.Error(t, err)
}

func TestExecute_DelegatesToSubagent(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)

	m := model.NewScriptedModel(
		model.Response{ToolCalls: []core.ToolCall{{ID: "p1", Name: "subagent_math-helper", Input: json.RawMessage(`{"instruction":"2+3"}`)}}},
		model.Response{ToolCalls: []core.ToolCall{{ID: "c1", Name: "calculator", Input: json.RawMessage(`{"operation":"add","a":2,"b":3}`)}}},
		model.Response{Text: "5"},
		model.Response{Text: "The answer is 5."},
	)
	a, err := buildApp(cfg, m, logging.NoOpLogger{})
	require.NoError(t, err)

	var out, steps bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&steps)
	cmd.SetContext(context.Background())

	require.NoError(t, execute(cmd, a, "what is 2+3?", &runOptions{showSteps: true}))
	assert.Equal(t, "The answer is 5.\n", out.String())
	assert.Contains(t, steps.String(), "subagent_math-helper")

	reqs := m.Requests()
	require.Len(t, reqs, 4)
	assert.Equal(t, "You help the QA team with math.", reqs[1].Messages[0].Text())
}

func TestExecute_SubagentInheritsLimits(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)
	cfg.Agent.MaxToolCalls = 1

	m := model.NewScriptedModel(
		model.Response{ToolCalls: []core.ToolCall{{ID: "p1", Name: "subagent_math-helper", Input: json.RawMessage(`{"instruction":"sums"}`)}}},
		model.Response{ToolCalls: []core.ToolCall{
			{ID: "c1", Name: "calculator", Input: json.RawMessage(`{"operation":"add","a":1,"b":1}`)},
			{ID: "c2", Name: "calculator", Input: json.RawMessage(`{"operation":"add","a":2,"b":2}`)},
		}},
		model.Response{Text: "2"},
		model.Response{Text: "done"},
	)
	a, err := buildApp(cfg, m, logging.NoOpLogger{})
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	require.NoError(t, execute(cmd, a, "add things", &runOptions{}))

	// the child's second request carries both results, the capped one failed
	reqs := m.Requests()
	require.Len(t, reqs, 4)
	msgs := reqs[2].Messages
	require.Len(t, msgs, 5)
	assert.False(t, msgs[3].ToolResults()[0].IsError)
	second := msgs[4].ToolResults()[0]
	assert.True(t, second.IsError)
	assert.Contains(t, second.Content, "CALL_LIMIT_EXCEEDED")
}

func TestExecute_JSONAndExhaustion(t *testing.T) {
	cfg := loadTestConfig(t, testConfig)

	a, err := buildApp(cfg, model.NewScriptedModel(model.Response{Text: "plain"}), logging.NoOpLogger{})
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	require.NoError(t, execute(cmd, a, "x", &runOptions{jsonOutput: true}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "plain", decoded["output"])

	looping := model.NewScriptedModel().WithFallback(model.Response{
		ToolCalls: []core.ToolCall{{ID: "1", Name: "text_stats", Input: json.RawMessage(`{"text":"a"}`)}},
	})
	a, err = buildApp(cfg, looping, logging.NoOpLogger{})
	require.NoError(t, err)
	err = execute(cmd, a, "x", &runOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "within 3 iterations")
}

func TestToolsCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"tools", "--schema"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "calculator")
	assert.Contains(t, out.String(), "clock")
	assert.Contains(t, out.String(), `"operation"`)
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"validate", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "ok:")
	assert.Contains(t, out.String(), "subagent_math-helper")
}
