package builtin

import (
	"strings"
	"unicode/utf8"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

// TextStatsArgs are the text_stats tool arguments.
type TextStatsArgs struct {
	Text string `json:"text" jsonschema:"The text to analyze"`
}

// TextStatsResult is the text_stats tool output.
type TextStatsResult struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
}

// TextStats counts characters, words and lines.
func TextStats() tool.Tool {
	return tool.MustFunctionTool("text_stats", "Count characters, words and lines of a text",
		func(_ *core.ToolContext, in TextStatsArgs) (TextStatsResult, error) {
			lines := 0
			if in.Text != "" {
				lines = strings.Count(in.Text, "\n") + 1
			}
			return TextStatsResult{
				Characters: utf8.RuneCountInString(in.Text),
				Words:      len(strings.Fields(in.Text)),
				Lines:      lines,
			}, nil
		})
}
