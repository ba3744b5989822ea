package arena

import log "github.com/sirupsen/logrus"

// integrateFalling drops falling players at a constant rate.
func (w *World) integrateFalling(dt float64) {
	for _, p := range w.players {
		if p.state != StateFalling {
			continue
		}
		p.Pos.Y -= w.cfg.Params.FallSpeed * dt
	}
}

// checkLavaContact kills every player below the lava, whatever they were
// doing. It runs after the lava moved this tick.
func (w *World) checkLavaContact(float64) {
	for _, p := range w.players {
		if p.state == StateDying {
			continue
		}
		if p.Pos.Y < w.lava.Height {
			w.log.WithFields(log.Fields{"team": p.Team.String(), "lava": w.lava.Height}).Info("player fell into lava")
			w.transition(p, StateDying)
		}
	}
}

// resolveDying respawns players whose dying timer ran out on a random cell of
// the top row. With no populated row the respawn waits for one.
func (w *World) resolveDying(float64) {
	for _, p := range w.players {
		if p.state != StateDying {
			continue
		}
		if w.elapsed-p.dyingSince < w.cfg.Params.DyingDuration {
			continue
		}
		c, ok := w.respawnCell()
		if !ok {
			if !p.waitingRow {
				p.waitingRow = true
				w.log.WithField("team", p.Team.String()).Warn("no populated row to respawn on, delaying")
			}
			continue
		}
		p.Pos = standPos(c, p.Team)
		w.transition(p, StateIdle)
		w.emit(Event{Kind: EventRespawned, Player: p.ID, Team: p.Team, Cell: c})
		w.log.WithFields(log.Fields{"team": p.Team.String(), "x": c.X, "y": c.Y}).Info("respawned")
	}
}

func (w *World) respawnCell() (Cell, bool) {
	top, ok := w.grid.TopRow()
	if !ok {
		return Cell{}, false
	}
	row := w.grid.Row(top)
	i := w.rng.Pick(len(row))
	if i < 0 {
		return Cell{}, false
	}
	return row[i], true
}
