package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
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

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, false)

	logger.Info("Tab created", "tab_id", "t1")
	logger.Warn("RPC error", "code", "not_found")

	out := buf.String()
	if strings.Contains(out, "Tab created") {
		t.Errorf("Info record logged below WARN level: %q", out)
	}
	if !strings.Contains(out, "RPC error") || !strings.Contains(out, "code=not_found") {
		t.Errorf("Expected warn record with attributes, got %q", out)
	}
}
