package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAppendsJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	for i := 0; i < 2; i++ {
		logger, closer, err := New(dir)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		logger.Info("condition assigned", "subject", "Kofi", "run", i)
		if err := closer.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["msg"] != "condition assigned" || entry["subject"] != "Kofi" {
		t.Errorf("entry = %v", entry)
	}
}
