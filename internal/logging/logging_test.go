package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "tag", "python")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if record["msg"] != "shown" || record["tag"] != "python" {
		t.Errorf("record = %v", record)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for bad level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Errorf("expected error for bad format")
	}
}
