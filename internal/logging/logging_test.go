package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		if _, err := New("loud", "text"); err == nil {
			t.Error("Expected error for unknown level, got nil")
		}
	})

	t.Run("json format writes structured fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithOutput("info", "json", &buf)
		if err != nil {
			t.Fatalf("NewWithOutput() returned unexpected error: %v", err)
		}

		logger.WithField("fund", "ARKK").Info("ingested")

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
		}
		if line["fund"] != "ARKK" {
			t.Errorf("Expected fund field 'ARKK', got %v", line["fund"])
		}
		if line["msg"] != "ingested" {
			t.Errorf("Expected msg 'ingested', got %v", line["msg"])
		}
	})

	t.Run("level filters debug output", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithOutput("warn", "text", &buf)
		if err != nil {
			t.Fatalf("NewWithOutput() returned unexpected error: %v", err)
		}

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("Expected no output below warn level, got %q", buf.String())
		}
	})
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored entry", func(t *testing.T) {
		entry := logrus.New().WithField("request_id", "abc")
		ctx := WithLogger(context.Background(), entry)

		if got := FromContext(ctx); got != entry {
			t.Error("Expected stored entry to be returned")
		}
	})

	t.Run("falls back to standard logger", func(t *testing.T) {
		got := FromContext(context.Background())
		if got == nil || got.Logger != logrus.StandardLogger() {
			t.Error("Expected fallback entry on the standard logger")
		}
	})
}
