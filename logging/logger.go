package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the leveled key/value logging surface used across agentkit.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config configures New.
type Config struct {
	Level     string // debug, info, warn or error
	Format    string // text or json
	Output    io.Writer
	AddSource bool
	Component string
}

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogLogger implements Logger on top of a *slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// New builds a SlogLogger writing to cfg.Output (stderr when nil).
func New(cfg Config) *SlogLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	l := slog.New(handler)
	if cfg.Component != "" {
		l = l.With("component", cfg.Component)
	}

	return &SlogLogger{logger: l}
}

// FromSlog wraps an existing *slog.Logger. A nil logger uses slog.Default().
func FromSlog(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{logger: l}
}

// With returns a logger that adds args to every entry.
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Slog exposes the underlying *slog.Logger.
func (l *SlogLogger) Slog() *slog.Logger { return l.logger }

func (l *SlogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *SlogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *SlogLogger) log(level slog.Level, msg string, args []any) {
	l.logger.Log(context.Background(), level, msg, args...)
}

// With scopes any Logger with fixed key/value pairs. Loggers that provide
// their own With method are asked first; others are wrapped.
func With(l Logger, args ...any) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	if len(args) == 0 {
		return l
	}
	switch base := l.(type) {
	case NoOpLogger:
		return base
	case interface{ With(...any) Logger }:
		return base.With(args...)
	}
	return &scoped{base: l, attrs: args}
}

type scoped struct {
	base  Logger
	attrs []any
}

func (s *scoped) join(args []any) []any {
	return append(append(make([]any, 0, len(s.attrs)+len(args)), s.attrs...), args...)
}

func (s *scoped) With(args ...any) Logger {
	return &scoped{base: s.base, attrs: s.join(args)}
}

func (s *scoped) Debug(msg string, args ...any) { s.base.Debug(msg, s.join(args)...) }
func (s *scoped) Info(msg string, args ...any)  { s.base.Info(msg, s.join(args)...) }
func (s *scoped) Warn(msg string, args ...any)  { s.base.Warn(msg, s.join(args)...) }
func (s *scoped) Error(msg string, args ...any) { s.base.Error(msg, s.join(args)...) }

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}
