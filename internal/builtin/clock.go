package builtin

import (
	"fmt"
	"time"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

// ClockArgs are the clock tool arguments.
type ClockArgs struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA timezone such as Europe/Berlin; defaults to UTC"`
}

// ClockResult is the clock tool output.
type ClockResult struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	Weekday  string `json:"weekday"`
}

// Clock reports the current time. A nil now uses time.Now.
func Clock(now func() time.Time) tool.Tool {
	if now == nil {
		now = time.Now
	}
	return tool.MustFunctionTool("clock", "Get the current date and time, optionally in a given timezone",
		func(_ *core.ToolContext, in ClockArgs) (ClockResult, error) {
			tz := in.Timezone
			if tz == "" {
				tz = "UTC"
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return ClockResult{}, fmt.Errorf("unknown timezone %q", tz)
			}
			t := now().In(loc)
			return ClockResult{
				Time:     t.Format(time.RFC3339),
				Timezone: tz,
				Weekday:  t.Weekday().String(),
			}, nil
		})
}
