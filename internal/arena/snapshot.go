package arena

import "fmt"

// PlayerView is the plain-value view of a player.
type PlayerView struct {
	ID         int     `json:"id" msgpack:"id"`
	Team       string  `json:"team" msgpack:"team"`
	Controller string  `json:"controller" msgpack:"controller"`
	State      string  `json:"state" msgpack:"state"`
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	Z          float64 `json:"z" msgpack:"z"`
	CellX      int     `json:"cell_x" msgpack:"cell_x"`
	CellY      int     `json:"cell_y" msgpack:"cell_y"`
	Score      int     `json:"score" msgpack:"score"`
}

// BlockView is the plain-value view of a block. Owner is the owning team
// name, empty when unowned.
type BlockView struct {
	X     int    `json:"x" msgpack:"x"`
	Y     int    `json:"y" msgpack:"y"`
	Value uint8  `json:"value" msgpack:"value"`
	Owner string `json:"owner,omitempty" msgpack:"owner,omitempty"`
}

// Snapshot is a copy of the world state that shares nothing with the World.
// It is safe to hand to other goroutines.
type Snapshot struct {
	Tick     uint64       `json:"tick" msgpack:"tick"`
	Elapsed  float64      `json:"elapsed" msgpack:"elapsed"`
	Phase    string       `json:"phase" msgpack:"phase"`
	Lava     float64      `json:"lava" msgpack:"lava"`
	Frontier int          `json:"frontier" msgpack:"frontier"`
	LaneMin  int          `json:"lane_min" msgpack:"lane_min"`
	LaneMax  int          `json:"lane_max" msgpack:"lane_max"`
	Winner   string       `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Players  []PlayerView `json:"players" msgpack:"players"`
	Blocks   []BlockView  `json:"blocks" msgpack:"blocks"`
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     w.tick,
		Elapsed:  w.elapsed,
		Phase:    w.phase.String(),
		Lava:     w.lava.Height,
		Frontier: w.frontier,
		LaneMin:  w.cfg.Params.LaneMin,
		LaneMax:  w.cfg.Params.LaneMax,
		Players:  make([]PlayerView, 0, len(w.players)),
		Blocks:   make([]BlockView, 0, w.grid.Len()),
	}
	if w.phase == PhaseOver {
		s.Winner = w.Winner().String()
	}
	for _, p := range w.players {
		c := p.Cell()
		s.Players = append(s.Players, PlayerView{
			ID:         int(p.ID),
			Team:       p.Team.String(),
			Controller: p.Controller.String(),
			State:      p.state.String(),
			X:          p.Pos.X,
			Y:          p.Pos.Y,
			Z:          p.Pos.Z,
			CellX:      c.X,
			CellY:      c.Y,
			Score:      p.Score,
		})
	}
	w.grid.Each(func(b *Block) {
		v := BlockView{X: b.Cell.X, Y: b.Cell.Y, Value: b.Value}
		if t := w.OwnerTeam(b); t != TeamNone {
			v.Owner = t.String()
		}
		s.Blocks = append(s.Blocks, v)
	})
	return s
}

// Score returns the score of the named team, or zero.
func (s Snapshot) Score(team string) int {
	for _, p := range s.Players {
		if p.Team == team {
			return p.Score
		}
	}
	return 0
}

// ScoreText formats the scoreboard the way the HUD shows it.
func (s Snapshot) ScoreText() string {
	return fmt.Sprintf("red: %d\nblue: %d", s.Score(TeamRed.String()), s.Score(TeamBlue.String()))
}
