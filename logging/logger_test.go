package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"Trace", LevelTrace},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)
	logger.Debug("hidden")
	logger.Info("shown", "run", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %s", out)
	}
	if !strings.Contains(out, "run=3") {
		t.Errorf("info record missing: %s", out)
	}
}

func TestTraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "sample", "i", 0)

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace level not labelled: %s", buf.String())
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"", "trace", "DEBUG", "info", "warn"} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	if ValidLevel("loud") {
		t.Error(`ValidLevel("loud") = true`)
	}
}

func TestTraceOnlyWhenEnabled(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	debug := NewLogger("debug", &buf)
	if Tracing(ctx, debug) {
		t.Error("debug logger reports tracing")
	}
	Trace(ctx, debug, "sample", "i", 1)
	if buf.Len() != 0 {
		t.Errorf("trace record written at debug level: %s", buf.String())
	}

	Trace(ctx, NewLogger("trace", &buf), "sample", "i", 2)
	if !strings.Contains(buf.String(), "level=TRACE msg=sample i=2") {
		t.Errorf("trace record missing: %s", buf.String())
	}
}
