package arena

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const testDT = 1.0 / 64.0

// scenarioWorld returns a running world with an empty grid, both players
// human and still, and the lava parked far below so nothing interferes.
func scenarioWorld(t *testing.T) (*World, *test.Hook) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Blue = ControllerHuman
	cfg.Red = ControllerHuman
	cfg.Params.LavaStart = -10
	cfg.Params.LavaSpeed = 0
	w := NewWithConfig(cfg)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	w.SetLogger(logger)
	w.grid = NewGrid()
	w.frontier = 3
	w.Start()
	return w, hook
}

func place(t *testing.T, w *World, c Cell, value uint8) *Block {
	t.Helper()
	b := &Block{Cell: c, Value: value}
	if !w.grid.Insert(b) {
		t.Fatalf("cell %v already occupied", c)
	}
	return b
}

func putPlayer(w *World, t Team, c Cell) *Player {
	p, _ := w.PlayerByTeam(t)
	p.Pos = standPos(c, t)
	return p
}

// tapOnce presses dir for team exactly once.
func tapOnce(team Team, dir Direction) Input {
	used := false
	return InputFunc(func(t Team, d Direction) bool {
		if used || t != team || d != dir {
			return false
		}
		used = true
		return true
	})
}

func stepN(w *World, n int, dt float64) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
