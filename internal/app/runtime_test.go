package app

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lavahop/internal/arena"
	"lavahop/internal/logging"
)

type recordingSink struct {
	steps int
}

func (s *recordingSink) Handle([]arena.Event) { s.steps++ }

func TestRuntimeLogsToFallback(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig()
	r, err := NewRuntime(cfg, RuntimeOptions{LogOutput: &buf})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer r.Close()
	if !strings.Contains(buf.String(), "arena ready") {
		t.Fatalf("missing startup log, got %q", buf.String())
	}
	if r.SpectateAddr != "" {
		t.Fatalf("spectator enabled without -spectate: %s", r.SpectateAddr)
	}
}

func TestRuntimeDebugWritesLogFile(t *testing.T) {
	cfg := NewConfig()
	cfg.Debug = true
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")
	r, err := NewRuntime(cfg, RuntimeOptions{})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	r.Close()
	data, err := os.ReadFile(filepath.Join(cfg.LogDir, logging.FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "arena ready") {
		t.Fatalf("log file missing startup line: %q", data)
	}
}

func TestRuntimeSoundOnlyWhenEnabled(t *testing.T) {
	sink := &recordingSink{}
	cfg := NewConfig()
	r, err := NewRuntime(cfg, RuntimeOptions{Sound: sink})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	r.Session.Step(1.0 / 60)
	r.Close()
	if sink.steps != 0 {
		t.Fatalf("sound sink called %d times with -sound off", sink.steps)
	}

	cfg.Sound = true
	r, err = NewRuntime(cfg, RuntimeOptions{Sound: sink})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer r.Close()
	r.Session.Step(1.0 / 60)
	if sink.steps != 1 {
		t.Fatalf("sound sink called %d times, want 1", sink.steps)
	}
}

func TestRuntimeServesSpectators(t *testing.T) {
	cfg := NewConfig()
	cfg.Spectate = "127.0.0.1:0"
	r, err := NewRuntime(cfg, RuntimeOptions{})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer r.Close()

	resp, err := http.Get("http://" + r.SpectateAddr + "/scores")
	if err != nil {
		t.Fatalf("GET /scores: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRuntimeRejectsBadConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Red = "robot"
	if _, err := NewRuntime(cfg, RuntimeOptions{}); err == nil {
		t.Fatal("expected an error for an unknown controller")
	}
	cfg = NewConfig()
	cfg.LogLevel = "loud"
	if _, err := NewRuntime(cfg, RuntimeOptions{}); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}
