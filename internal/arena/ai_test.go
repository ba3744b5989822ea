package arena

import "testing"

func TestClassifyNeighbours(t *testing.T) {
	w, _ := scenarioWorld(t)
	red := putPlayer(w, TeamRed, Cell{X: 0, Y: 1})
	blue, _ := w.PlayerByTeam(TeamBlue)
	place(t, w, Cell{X: 0, Y: 1}, 1)
	place(t, w, Cell{X: 1, Y: 1}, 2).Owner = blue.ID
	place(t, w, Cell{X: -1, Y: 1}, 3).Owner = red.ID
	place(t, w, Cell{X: 0, Y: 2}, 4)

	n := w.Classify(red)
	if len(n.Enemy) != 1 || n.Enemy[0] != DirRight {
		t.Fatalf("enemy = %v, want [right]", n.Enemy)
	}
	if len(n.Own) != 1 || n.Own[0] != DirLeft {
		t.Fatalf("own = %v, want [left]", n.Own)
	}
	if len(n.Unowned) != 1 || n.Unowned[0] != DirUp {
		t.Fatalf("unowned = %v, want [up]", n.Unowned)
	}
}

func TestChoosePrefersEnemyOverOwn(t *testing.T) {
	n := Neighbors{Enemy: []Direction{DirUp}, Own: []Direction{DirLeft, DirRight}}
	for pick := 0; pick < 3; pick++ {
		d, ok := n.Choose(func(int) int { return pick })
		if !ok || d != DirUp {
			t.Fatalf("pick %d chose %s, want up", pick, d)
		}
	}
	n = Neighbors{Own: []Direction{DirLeft}}
	if d, ok := n.Choose(func(int) int { return 0 }); !ok || d != DirLeft {
		t.Fatalf("only own blocks: chose %s,%v", d, ok)
	}
	if _, ok := (Neighbors{}).Choose(func(int) int { return 0 }); ok {
		t.Fatal("no neighbours must yield no move")
	}
}

func TestAIAttacksEnemyBlock(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		w, _ := scenarioWorld(t)
		w.Reset(seed)
		w.grid = NewGrid()
		w.lava = Lava{Height: -10}
		w.Start()
		red, _ := w.PlayerByTeam(TeamRed)
		red.Controller = ControllerAI
		blue, _ := w.PlayerByTeam(TeamBlue)

		putPlayer(w, TeamRed, Cell{X: 0, Y: 1})
		place(t, w, Cell{X: 0, Y: 1}, 1)
		place(t, w, Cell{X: 0, Y: 2}, 1).Owner = blue.ID
		place(t, w, Cell{X: -1, Y: 1}, 1).Owner = red.ID
		place(t, w, Cell{X: 1, Y: 1}, 1).Owner = red.ID

		w.Step(testDT)
		d, ok := red.Heading()
		if !ok || d != DirUp {
			t.Fatalf("seed %d: AI heading %s,%v; want up", seed, d, ok)
		}
	}
}

func TestAIStaysPutWithoutNeighbours(t *testing.T) {
	w, _ := scenarioWorld(t)
	red := putPlayer(w, TeamRed, Cell{X: 0, Y: 1})
	red.Controller = ControllerAI
	place(t, w, Cell{X: 0, Y: 1}, 1)
	stepN(w, 10, testDT)
	if red.State() != StateIdle {
		t.Fatalf("AI with no neighbours must idle, got %s", red.State())
	}
}

func TestHumanInputPriority(t *testing.T) {
	w, _ := scenarioWorld(t)
	place(t, w, Cell{X: 0, Y: 0}, 1)
	p := putPlayer(w, TeamBlue, Cell{X: 0, Y: 0})
	w.SetInput(InputFunc(func(team Team, d Direction) bool {
		return team == TeamBlue && (d == DirLeft || d == DirUp)
	}))
	w.Step(testDT)
	if d, _ := p.Heading(); d != DirLeft {
		t.Fatalf("left outranks up, got %s", d)
	}
}

func TestClaimOverwritesAndIsIdempotent(t *testing.T) {
	w, _ := scenarioWorld(t)
	blue, _ := w.PlayerByTeam(TeamBlue)
	red, _ := w.PlayerByTeam(TeamRed)
	b := place(t, w, Cell{X: 0, Y: 0}, 6)

	w.claim(blue, b)
	w.claim(blue, b)
	if b.Owner != blue.ID {
		t.Fatalf("owner = %d after double claim, want %d", b.Owner, blue.ID)
	}
	w.claim(red, b)
	if b.Owner != red.ID {
		t.Fatalf("owner = %d after enemy claim, want %d", b.Owner, red.ID)
	}
	last := w.Events()[len(w.Events())-1]
	if last.Kind != EventClaimed || last.Previous != blue.ID || last.Team != TeamRed {
		t.Fatalf("unexpected claim event %+v", last)
	}
}
