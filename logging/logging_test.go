package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closeFn, err := New(Options{Level: log.DebugLevel})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	logger.Info("nothing to see")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")
	logger, closeFn, err := New(Options{File: path, Level: log.DebugLevel})
	if err != nil {
		t.Fatalf("new logger failed: %v", err)
	}
	logger.Debug("applied", "cmd", "add")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "cmd=add") || !strings.Contains(out, prefix) {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, log.InfoLevel)
	logger.Debug("hidden")
	logger.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected filtering: %q", buf.String())
	}
}
