package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"perftrack/internal/platform/config"
)

func TestNewProductionLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{Environment: "production", LogLevel: slog.LevelInfo})
	logger.Info("ready", "addr", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "perftrack" || entry["addr"] != ":8080" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{Environment: "development", LogLevel: slog.LevelWarn})
	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}
