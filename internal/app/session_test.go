package app

import (
	"flag"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"lavahop/internal/arena"
	"lavahop/internal/spectate"
)

func TestConfigBindAndArena(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lavahop", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-seed", "5", "-blue", "ai", "-set", "lava_speed=1.5", "-set", "red=human"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ac, err := cfg.Arena()
	if err != nil {
		t.Fatalf("arena config: %v", err)
	}
	if ac.Seed != 5 || ac.Blue != arena.ControllerAI || ac.Red != arena.ControllerHuman {
		t.Fatalf("unexpected arena config %+v", ac)
	}
	if ac.Params.LavaSpeed != 1.5 {
		t.Fatalf("lava speed override lost: %.2f", ac.Params.LavaSpeed)
	}
}

func TestConfigRejectsBadOverrides(t *testing.T) {
	cfg := NewConfig()
	cfg.Overrides = KVList{"gravity=9"}
	if _, err := cfg.Arena(); err == nil {
		t.Fatal("unknown override must fail")
	}
	cfg = NewConfig()
	cfg.Red = "robot"
	if _, err := cfg.Arena(); err == nil {
		t.Fatal("unknown controller must fail")
	}
	var l KVList
	if err := l.Set("novalue"); err == nil {
		t.Fatal("KVList must reject entries without '='")
	}
}

func TestSessionPublishesSnapshots(t *testing.T) {
	logger, _ := test.NewNullLogger()
	hub := spectate.NewHub(logger)
	cfg := arena.DefaultConfig()
	cfg.Blue = arena.ControllerAI
	w := arena.NewWithConfig(cfg)
	w.SetLogger(logger)
	s := NewSession(w, SessionOptions{Hub: hub, PublishEvery: 10, Logger: logger})

	snap, ok := hub.Latest()
	if !ok || snap.Phase != "start" {
		t.Fatalf("initial snapshot missing or wrong: %v %q", ok, snap.Phase)
	}
	s.TogglePause()
	if w.Phase() != arena.PhaseRunning {
		t.Fatalf("first toggle must start the match, got %s", w.Phase())
	}
	for i := 0; i < 25; i++ {
		s.Step(1.0 / 60)
	}
	snap, _ = hub.Latest()
	if snap.Tick != 20 {
		t.Fatalf("latest published tick %d, want 20", snap.Tick)
	}

	s.Reset(0)
	if w.Tick() != 0 || s.Seed() != cfg.Seed {
		t.Fatalf("reset kept tick %d seed %d", w.Tick(), s.Seed())
	}
	s.Reset(99)
	if s.Seed() != 99 || w.Config().Seed != 99 {
		t.Fatalf("reseed ignored: %d", s.Seed())
	}
}

func TestSessionPublishesMatchOver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	hub := spectate.NewHub(logger)
	cfg := arena.DefaultConfig()
	cfg.Blue = arena.ControllerAI
	cfg.Params.MatchDuration = 0.5
	w := arena.NewWithConfig(cfg)
	w.SetLogger(logger)
	s := NewSession(w, SessionOptions{Hub: hub, PublishEvery: 1000, Logger: logger})
	s.Start()
	for i := 0; i < 40; i++ {
		s.Step(1.0 / 64)
	}
	snap, _ := hub.Latest()
	if snap.Phase != "over" {
		t.Fatalf("phase change must publish immediately, got %q", snap.Phase)
	}
	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "match over" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a match over log entry")
	}
}
