package arena

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestPruneRemovesSubmergedBlocks(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 2}, 5)
	place(t, w, Cell{X: 0, Y: 3}, 5)
	w.lava.Height = 2.6
	w.lava.Speed = 0

	w.Step(testDT)

	if _, ok := w.grid.Get(Cell{X: 0, Y: 2}); ok {
		t.Fatal("block at row 2 must be pruned under lava 2.6")
	}
	if _, ok := w.grid.Get(Cell{X: 0, Y: 3}); !ok {
		t.Fatal("block at row 3 must survive lava 2.6")
	}
	if n := countEvents(w.Events(), EventBlockRemoved); n != 1 {
		t.Fatalf("expected 1 removal event, got %d", n)
	}
}

func TestPruneBoundary(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 2}, 5)
	w.lava.Height = 2.5
	w.Step(testDT)
	if _, ok := w.grid.Get(Cell{X: 0, Y: 2}); !ok {
		t.Fatal("row 2 is not below 2.5-0.5 and must survive")
	}
}

func TestPruneCreditsOwner(t *testing.T) {
	w, _ := scenarioWorld(t)
	blue, _ := w.PlayerByTeam(TeamBlue)
	red, _ := w.PlayerByTeam(TeamRed)
	owned := place(t, w, Cell{X: 0, Y: 1}, 7)
	owned.Owner = blue.ID
	place(t, w, Cell{X: 1, Y: 1}, 9)
	stale := place(t, w, Cell{X: 2, Y: 1}, 4)
	stale.Owner = PlayerID(99)
	place(t, w, Cell{X: 0, Y: 8}, 1)
	w.lava.Height = 1.6

	w.Step(testDT)

	if blue.Score != 7 {
		t.Fatalf("blue score = %d, want 7", blue.Score)
	}
	if red.Score != 0 {
		t.Fatalf("red score = %d, want 0", red.Score)
	}
	if n := countEvents(w.Events(), EventScored); n != 1 {
		t.Fatalf("expected 1 score event, got %d", n)
	}
	if w.grid.Len() != 1 {
		t.Fatalf("expected only the high block to remain, got %d", w.grid.Len())
	}
}

func TestLavaContactKillsFromAnyState(t *testing.T) {
	setups := map[string]func(w *World, p *Player){
		"idle": func(w *World, p *Player) {},
		"moving": func(w *World, p *Player) {
			w.Move(p.ID, DirRight)
		},
		"falling": func(w *World, p *Player) {
			w.Move(p.ID, DirRight)
			w.land(p)
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			w, _ := scenarioWorld(t)
			place(t, w, Cell{X: 0, Y: 0}, 1)
			p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
			setup(w, p)
			p.Pos.Y = 1.0
			w.lava.Height = 1.5

			w.Step(testDT)
			if p.State() != StateDying {
				t.Fatalf("expected dying, got %s", p.State())
			}
		})
	}
}

func TestDyingRespawnsOnTopRow(t *testing.T) {
	w, _ := scenarioWorld(t)
	w.cfg.Params.GenerateAhead = 0
	for x := -1; x <= 1; x++ {
		place(t, w, Cell{X: x, Y: 5}, 3)
	}
	w.frontier = 5
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
	p.Pos.Y = 1.0
	w.lava.Height = 1.5

	w.Step(0.25)
	if p.State() != StateDying {
		t.Fatalf("expected dying, got %s", p.State())
	}
	stepN(w, 7, 0.25)
	if p.State() != StateDying {
		t.Fatalf("respawned after 1.75s, want a full 2s")
	}
	w.Step(0.25)
	if p.State() != StateIdle {
		t.Fatalf("expected idle after 2s, got %s", p.State())
	}
	c := p.Cell()
	if c.Y != 5 || c.X < -1 || c.X > 1 {
		t.Fatalf("respawned at %v, want a cell of row 5", c)
	}
	if want := standPos(c, TeamBlue); p.Pos != want {
		t.Fatalf("respawn position %+v, want %+v", p.Pos, want)
	}
	if countEvents(w.Events(), EventRespawned) != 1 {
		t.Fatal("expected a respawn event")
	}
}

func TestRespawnWaitsForPopulatedRow(t *testing.T) {
	w, hook := scenarioWorld(t)
	w.frontier = 100
	p := putPlayer(w, TeamRed, Cell{X: 0, Y: 0})
	p.Pos.Y = 1.0
	w.lava.Height = 1.5

	stepN(w, 20, 0.25)
	if p.State() != StateDying {
		t.Fatalf("expected to keep dying without a row, got %s", p.State())
	}
	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			warnings++
		}
	}
	if warnings != 1 {
		t.Fatalf("expected a single delay warning, got %d", warnings)
	}

	place(t, w, Cell{X: 2, Y: 9}, 6)
	w.Step(0.25)
	if p.State() != StateIdle {
		t.Fatalf("expected respawn once a row exists, got %s", p.State())
	}
	if p.Cell() != (Cell{X: 2, Y: 9}) {
		t.Fatalf("respawned at %v, want 2;9", p.Cell())
	}
}

func TestInvalidTransitionPanics(t *testing.T) {
	w, _ := scenarioWorld(t)
	p, _ := w.PlayerByTeam(TeamBlue)
	defer func() {
		if recover() == nil {
			t.Fatal("idle -> falling must panic")
		}
	}()
	w.transition(p, StateFalling)
}

func TestLandWithoutMovePanics(t *testing.T) {
	w, _ := scenarioWorld(t)
	p, _ := w.PlayerByTeam(TeamBlue)
	defer func() {
		if recover() == nil {
			t.Fatal("landing an idle player must panic")
		}
	}()
	w.land(p)
}

func TestStatesStayValidOverLongRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blue = ControllerAI
	cfg.Seed = 11
	w := NewWithConfig(cfg)
	w.Start()
	for i := 0; i < 6000; i++ {
		w.Step(testDT)
		for _, p := range w.Players() {
			switch p.State() {
			case StateIdle, StateFalling, StateDying:
			case StateMoving:
				if _, ok := p.Target(); !ok {
					t.Fatalf("tick %d: moving player without a target", w.Tick())
				}
			default:
				t.Fatalf("tick %d: unknown state %d", w.Tick(), p.State())
			}
			if p.State() != StateMoving {
				if _, ok := p.Target(); ok {
					t.Fatalf("tick %d: %s player exposes a hop target", w.Tick(), p.State())
				}
			}
		}
	}
}
