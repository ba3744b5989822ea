package arena

// Neighbors groups the hops open to a player by who owns the landing block.
// Hops onto empty space are never listed.
type Neighbors struct {
	Enemy   []Direction
	Unowned []Direction
	Own     []Direction
}

// Classify inspects the four neighbours of p's logical cell.
func (w *World) Classify(p *Player) Neighbors {
	var n Neighbors
	here := p.Cell()
	for _, d := range Directions {
		b, ok := w.grid.Get(here.Add(d.Delta()))
		if !ok {
			continue
		}
		owner, owned := w.Player(b.Owner)
		switch {
		case !owned:
			n.Unowned = append(n.Unowned, d)
		case owner.ID == p.ID:
			n.Own = append(n.Own, d)
		default:
			n.Enemy = append(n.Enemy, d)
		}
	}
	return n
}

// Choose picks uniformly inside the best non-empty class: enemy blocks first,
// then unowned, then the player's own.
func (n Neighbors) Choose(pick func(int) int) (Direction, bool) {
	for _, class := range [][]Direction{n.Enemy, n.Unowned, n.Own} {
		if len(class) == 0 {
			continue
		}
		i := pick(len(class))
		if i < 0 || i >= len(class) {
			i = 0
		}
		return class[i], true
	}
	return DirNone, false
}

// decideAI starts a hop for every idle AI player that has somewhere to go.
func (w *World) decideAI() {
	for _, p := range w.players {
		if p.Controller != ControllerAI || p.state != StateIdle {
			continue
		}
		d, ok := w.Classify(p).Choose(w.rng.Pick)
		if !ok {
			continue
		}
		w.beginMove(p, d)
	}
}

// readInput starts a hop for every idle human player holding a direction.
func (w *World) readInput() {
	if w.input == nil {
		return
	}
	for _, p := range w.players {
		if p.Controller != ControllerHuman || p.state != StateIdle {
			continue
		}
		for _, d := range Directions {
			if w.input.Pressed(p.Team, d) {
				w.beginMove(p, d)
				break
			}
		}
	}
}
