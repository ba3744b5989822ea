package arena

import log "github.com/sirupsen/logrus"

// spawnBlock creates a block with a random value at c. The caller guarantees
// c is vacant.
func (w *World) spawnBlock(c Cell) *Block {
	b := &Block{Cell: c, Value: uint8(w.rng.IntRange(1, 9))}
	if !w.grid.Insert(b) {
		return nil
	}
	w.emit(Event{Kind: EventBlockSpawned, Cell: c, Value: b.Value})
	return b
}

// populate lays down the initial band of rows. Player start cells are always
// filled so nobody begins by falling.
func (w *World) populate() {
	p := w.cfg.Params
	starts := make(map[Cell]bool, len(Teams))
	for _, t := range Teams {
		starts[w.startCell(t)] = true
	}
	for y := 0; y < p.InitialRows; y++ {
		for x := p.LaneMin; x <= p.LaneMax; x++ {
			c := Cell{X: x, Y: y}
			if w.rng.Chance(p.SpawnChance) || starts[c] {
				w.spawnBlock(c)
			}
		}
	}
	w.frontier = p.InitialRows - 1
}

func (w *World) startCell(t Team) Cell {
	p := w.cfg.Params
	return Cell{X: p.ClampLane(t.startLane()), Y: p.StartRow()}
}

// Frontier is the highest row generation has reached. An empty grid resumes
// above it.
func (w *World) Frontier() int { return w.frontier }

// generateRows adds one row above the top populated row when the lava gets
// close to it. A row where every lane missed stays empty and is retried on
// the next tick. An empty grid measures from the frontier instead.
func (w *World) generateRows(float64) {
	p := w.cfg.Params
	top, ok := w.grid.TopRow()
	if !ok {
		top = w.frontier
	}
	if float64(top-p.GenerateAhead) >= w.lava.Height {
		return
	}
	y := top + 1
	spawned := 0
	for x := p.LaneMin; x <= p.LaneMax; x++ {
		if w.rng.Chance(p.SpawnChance) {
			if w.spawnBlock(Cell{X: x, Y: y}) != nil {
				spawned++
			}
		}
	}
	w.frontier = max(w.frontier, y)
	w.log.WithFields(log.Fields{"row": y, "blocks": spawned, "lava": w.lava.Height}).Debug("row generated")
}

// pruneBlocks removes blocks swallowed by lava and pays their owners.
func (w *World) pruneBlocks(float64) {
	margin := w.cfg.Params.PruneMargin
	for _, b := range w.grid.Blocks() {
		if !w.lava.Covers(b.Cell.Y, margin) {
			continue
		}
		w.grid.Remove(b.Cell)
		w.emit(Event{Kind: EventBlockRemoved, Cell: b.Cell, Value: b.Value, Player: b.Owner})
		owner, ok := w.Player(b.Owner)
		if !ok {
			continue
		}
		owner.Score += int(b.Value)
		w.emit(Event{Kind: EventScored, Player: owner.ID, Team: owner.Team, Cell: b.Cell, Value: b.Value, Score: owner.Score})
		w.log.WithFields(log.Fields{
			"team":  owner.Team.String(),
			"value": b.Value,
			"score": owner.Score,
		}).Info("score")
	}
}
