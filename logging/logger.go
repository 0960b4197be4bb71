// Package logging builds the slog logger shared by the simulator commands.
// Run progress is logged at info, per-run parameters at debug and every
// generated sample at trace.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below Debug and carries one record per simulated sample.
const LevelTrace = slog.LevelDebug - 4

var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
}

// ParseLevel maps a case-insensitive level name to a slog.Level. Unknown
// names fall back to info.
func ParseLevel(s string) slog.Level {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l
	}
	return slog.LevelInfo
}

// ValidLevel reports whether s names a level ParseLevel knows. The empty
// string is valid and means info.
func ValidLevel(s string) bool {
	_, ok := levels[strings.ToLower(s)]
	return ok || s == ""
}

// NewLogger returns a text logger writing records at or above level to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: labelTrace,
	}))
}

func labelTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// Tracing reports whether l writes trace records, so callers can skip
// building per-sample attributes.
func Tracing(ctx context.Context, l *slog.Logger) bool {
	return l.Enabled(ctx, LevelTrace)
}

// Trace logs msg at LevelTrace.
func Trace(ctx context.Context, l *slog.Logger, msg string, args ...any) {
	l.Log(ctx, LevelTrace, msg, args...)
}
