package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-runner/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("runner %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestListShowsRunner(t *testing.T) {
	out := execute(t, "list")
	if !strings.Contains(out, "runner") || !strings.Contains(out, "Endless Runner") {
		t.Errorf("list output missing the runner:\n%s", out)
	}
}

func TestConfigPrintsEffectiveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  max_jumps: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "config", "--config", path)
	if !strings.HasPrefix(out, "# source: "+path) {
		t.Errorf("output should start with the source, got:\n%s", out)
	}

	cfg, err := config.Parse([]byte(out))
	if err != nil {
		t.Fatalf("printed config does not parse: %v", err)
	}
	if cfg.Physics.MaxJumps != 3 {
		t.Errorf("MaxJumps = %d, expected 3", cfg.Physics.MaxJumps)
	}
	flagConfig = ""
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.log")

	logger, closeFn, err := newLogger(path, true, io.Discard)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Debug("spawned", "id", 7)
	logger.Info("round started")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"runner", "spawned", "id=7", "round started"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
}

func TestNewLoggerBadPath(t *testing.T) {
	_, _, err := newLogger(filepath.Join(t.TempDir(), "missing", "runner.log"), false, io.Discard)
	if err == nil {
		t.Error("newLogger() should fail for an unwritable path")
	}
}
