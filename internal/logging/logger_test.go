package logging

import (
	"bytes"
	"context"
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
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	if got := RunID(ctx); got != "run-123" {
		t.Errorf("RunID() = %q, want %q", got, "run-123")
	}
	if got := RunID(context.Background()); got != "" {
		t.Errorf("RunID(empty) = %q, want empty", got)
	}
}

func TestFromContext_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Setup(&buf, "info", "json")

	ctx := WithRunID(context.Background(), "abc")
	WithFields(ctx, "table", "orders").Info("loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v (raw %q)", err, buf.String())
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v, want %q", entry["run_id"], "abc")
	}
	if entry["table"] != "orders" {
		t.Errorf("table = %v, want %q", entry["table"], "orders")
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Setup(&buf, "warn", "text")
	slog.Info("hidden")
	slog.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn entry missing: %q", out)
	}
}
