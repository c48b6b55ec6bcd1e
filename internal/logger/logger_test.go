package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.log")
	l, err := New("prod", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("component", "test").Info("hello", "quest", "pushups")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") || !strings.Contains(string(data), "pushups") {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Warn("y", "k", 1)
	l.Sync()
}
