package arena

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// PlayerID is the stable identity used for block ownership. Zero means no
// player.
type PlayerID int

// NoPlayer marks an unowned block.
const NoPlayer PlayerID = 0

// Team identifies one of the two sides.
type Team uint8

const (
	TeamNone Team = iota
	TeamBlue
	TeamRed
)

// Teams lists the playing teams in spawn order.
var Teams = [...]Team{TeamBlue, TeamRed}

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "blue"
	case TeamRed:
		return "red"
	default:
		return "none"
	}
}

// startLane is the lane each team begins in.
func (t Team) startLane() int {
	if t == TeamRed {
		return -1
	}
	return 1
}

// Offset is the fixed lateral shift applied to the team's world position so
// two players on one cell do not overlap.
func (t Team) Offset() float64 {
	if t == TeamRed {
		return -0.2
	}
	return 0.2
}

// Controller says who picks a team's moves.
type Controller uint8

const (
	ControllerHuman Controller = iota
	ControllerAI
)

func (c Controller) String() string {
	if c == ControllerAI {
		return "ai"
	}
	return "human"
}

// State is the motion state of a player. Exactly one holds at any time.
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StateFalling
	StateDying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateFalling:
		return "falling"
	case StateDying:
		return "dying"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// Vec3 is a continuous world position. X is lateral, Y is height and Z the
// visual depth, which only renderers care about.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

// Lerp interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// CellAt derives the logical cell of a world position. Movement and the AI
// both go through here so they agree on rounding.
func CellAt(v Vec3) Cell {
	return Cell{X: int(math.Round(v.X)), Y: int(math.Round(v.Y - 0.5))}
}

// standPos is where a player of team t stands on cell c.
func standPos(c Cell, t Team) Vec3 {
	return Vec3{X: float64(c.X) + t.Offset(), Y: float64(c.Y) + 0.5, Z: -float64(c.Y)}
}

type moveState struct {
	dir    Direction
	start  float64
	source Vec3
	target Vec3
}

// Player is one of the two competitors.
type Player struct {
	ID         PlayerID
	Team       Team
	Controller Controller
	Pos        Vec3
	Speed      float64
	Score      int

	state      State
	move       moveState
	dyingSince float64
	waitingRow bool
}

// State returns the current motion state.
func (p *Player) State() State { return p.state }

// Cell returns the player's logical cell.
func (p *Player) Cell() Cell { return CellAt(p.Pos) }

// Target returns the destination of the hop in progress.
func (p *Player) Target() (Vec3, bool) {
	if p.state != StateMoving {
		return Vec3{}, false
	}
	return p.move.target, true
}

// Heading is the direction of the hop in progress.
func (p *Player) Heading() (Direction, bool) {
	if p.state != StateMoving {
		return DirNone, false
	}
	return p.move.dir, true
}

func validTransition(from, to State) bool {
	switch from {
	case StateIdle:
		return to == StateMoving || to == StateDying
	case StateMoving:
		return to == StateIdle || to == StateFalling || to == StateDying
	case StateFalling:
		return to == StateDying
	case StateDying:
		return to == StateIdle
	}
	return false
}

// transition is the only writer of a player's state. It clears the payload of
// the state being left so stale move or timer data never leaks.
func (w *World) transition(p *Player, to State) {
	from := p.state
	if !validTransition(from, to) {
		panic(fmt.Sprintf("arena: invalid transition %s -> %s for %s player", from, to, p.Team))
	}
	switch from {
	case StateMoving:
		p.move = moveState{}
	case StateDying:
		p.dyingSince = 0
		p.waitingRow = false
	}
	if to == StateDying {
		p.dyingSince = w.elapsed
	}
	p.state = to
	w.emit(Event{Kind: EventStateChanged, Player: p.ID, Team: p.Team, From: from, To: to, Cell: p.Cell()})
	w.log.WithFields(log.Fields{
		"team": p.Team.String(),
		"from": from.String(),
		"to":   to.String(),
		"tick": w.tick,
	}).Debug("player state changed")
}
