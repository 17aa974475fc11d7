package logging

import (
	"bytes"
	"encoding/json"
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
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", "info")
	logger.Info("table built", "candidates", 300)

	var rec map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if rec["service"] != "lexigen" {
		t.Errorf("service = %v, want lexigen", rec["service"])
	}
	if rec["candidates"] != float64(300) {
		t.Errorf("candidates = %v, want 300", rec["candidates"])
	}
}

func TestNewDefaultsToJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", "").Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON for non-terminal writer, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", "warn")
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "kept") {
		t.Error("warn record missing")
	}
}

func TestSetLoggerAndComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(&buf, "text", "debug"))
	SetLogger(nil) // ignored

	WithComponent("words").Debug("sampled")
	if !strings.Contains(buf.String(), "component=words") {
		t.Errorf("component attribute missing: %q", buf.String())
	}
}
