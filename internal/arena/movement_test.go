package arena

import (
	"math"
	"testing"
)

func TestHopUpClaimsBlock(t *testing.T) {
	w, _ := scenarioWorld(t)
	for y := 0; y <= 3; y++ {
		place(t, w, Cell{X: 0, Y: y}, uint8(y+1))
	}
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
	w.SetInput(tapOnce(TeamBlue, DirUp))

	w.Step(testDT)
	if p.State() != StateMoving {
		t.Fatalf("expected moving after input, got %s", p.State())
	}
	stepN(w, 64, testDT)

	if p.State() != StateIdle {
		t.Fatalf("expected idle after landing, got %s", p.State())
	}
	if got := p.Cell(); got != (Cell{X: 0, Y: 1}) {
		t.Fatalf("landed on %v, want 0;1", got)
	}
	b, _ := w.grid.Get(Cell{X: 0, Y: 1})
	if b.Owner != p.ID {
		t.Fatalf("block owner = %d, want %d", b.Owner, p.ID)
	}
	if w.OwnerTeam(b) != TeamBlue {
		t.Fatalf("owner team = %s, want blue", w.OwnerTeam(b))
	}
	start, _ := w.grid.Get(Cell{X: 0, Y: 0})
	if start.Owned() {
		t.Fatal("departure block must stay unowned")
	}
}

func TestHopIntoVoidFalls(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 0}, 4)
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
	w.SetInput(tapOnce(TeamBlue, DirUp))

	for i := 0; i < 200 && p.State() != StateFalling; i++ {
		w.Step(testDT)
	}
	if p.State() != StateFalling {
		t.Fatalf("expected falling, got %s", p.State())
	}

	before := p.Pos.Y
	w.Step(0.1)
	if drop := before - p.Pos.Y; math.Abs(drop-0.5) > 1e-9 {
		t.Fatalf("fell %.6f in 0.1s, want 0.5", drop)
	}
	before = p.Pos.Y
	w.Step(0.2)
	if drop := before - p.Pos.Y; math.Abs(drop-1.0) > 1e-9 {
		t.Fatalf("fell %.6f in 0.2s, want 1.0", drop)
	}
}

func TestLandingIsExact(t *testing.T) {
	for _, dir := range Directions {
		t.Run(dir.String(), func(t *testing.T) {
			w, _ := scenarioWorld(t)
			origin := Cell{X: 0, Y: 1}
			place(t, w, origin, 1)
			place(t, w, origin.Add(dir.Delta()), 2)
			p := putPlayer(w, TeamRed, origin)
			start := p.Pos
			w.SetInput(tapOnce(TeamRed, dir))

			// Uneven steps exercise the snap at progress >= 1.
			for _, dt := range []float64{0.013, 0.21, 0.07, 0.19, 0.3} {
				w.Step(dt)
			}
			if p.State() != StateIdle {
				t.Fatalf("expected idle, got %s", p.State())
			}
			want := start.Add(dir.Step())
			if p.Pos != want {
				t.Fatalf("position %+v, want exactly %+v", p.Pos, want)
			}
			if p.Cell() != origin.Add(dir.Delta()) {
				t.Fatalf("cell %v, want %v", p.Cell(), origin.Add(dir.Delta()))
			}
		})
	}
}

func TestMoveOnlyFromIdle(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 0}, 1)
	place(t, w, Cell{X: 1, Y: 0}, 1)
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})

	if !w.Move(p.ID, DirRight) {
		t.Fatal("idle player must accept a hop")
	}
	if w.Move(p.ID, DirLeft) {
		t.Fatal("moving player must reject a second hop")
	}
	if d, ok := p.Heading(); !ok || d != DirRight {
		t.Fatalf("heading = %s,%v; want right", d, ok)
	}
	if w.Move(NoPlayer, DirRight) {
		t.Fatal("unknown player must be rejected")
	}
}

func TestMovementEasesMidHop(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 0}, 1)
	place(t, w, Cell{X: 1, Y: 0}, 1)
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
	start := p.Pos
	w.Move(p.ID, DirRight)

	// Quarter of the way through a hop at two hops per second.
	w.Step(0.125)
	got := p.Pos.X - start.X
	want := Ease(0.25)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("offset %.6f, want eased %.6f", got, want)
	}
	if want >= 0.25 {
		t.Fatalf("in-out cubic must lag linear progress early on, got %.4f", want)
	}
	if Ease(0) != 0 || Ease(1) != 1 || Ease(2) != 1 {
		t.Fatal("ease must clamp to [0,1]")
	}
}
