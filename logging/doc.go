// Package logging defines the Logger interface used by the agent loop, the
// tool invoker and the subagent layer, plus a log/slog backed implementation.
//
// Entries are short dotted event names ("agent.iteration.start") followed by
// key/value pairs:
//
//	logger := logging.New(logging.Config{Level: "debug", Format: "json"})
//	res, err := agent.Run(ctx, agent.Config{Model: m, Logger: logger, Input: "hi"})
//
// Use With to scope any Logger to a run, a tool call or a subagent. A nil
// Logger anywhere in agentkit means NoOpLogger.
package logging
