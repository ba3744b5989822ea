package arena

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
)

// Direction is a hop request.
type Direction uint8

const (
	DirNone Direction = iota
	DirRight
	DirLeft
	DirUp
	DirDown
)

// Directions lists the hop directions in the order input and the AI scan them.
var Directions = [...]Direction{DirRight, DirLeft, DirUp, DirDown}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Delta is the grid offset of one hop.
func (d Direction) Delta() Cell {
	switch d {
	case DirRight:
		return Cell{X: 1}
	case DirLeft:
		return Cell{X: -1}
	case DirUp:
		return Cell{Y: 1}
	case DirDown:
		return Cell{Y: -1}
	}
	return Cell{}
}

// Step is the world-space offset of one hop. Vertical hops also move one
// unit in depth.
func (d Direction) Step() Vec3 {
	switch d {
	case DirRight:
		return Vec3{X: 1}
	case DirLeft:
		return Vec3{X: -1}
	case DirUp:
		return Vec3{Y: 1, Z: -1}
	case DirDown:
		return Vec3{Y: -1, Z: 1}
	}
	return Vec3{}
}

// Ease maps linear hop progress onto the cubic in-out curve.
func Ease(progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	return float64(ease.InOutCubic(float32(progress), 0, 1, 1))
}

// Move asks the player to hop. Only idle players accept a hop; the return
// value reports whether it started.
func (w *World) Move(id PlayerID, d Direction) bool {
	p, ok := w.Player(id)
	if !ok || d == DirNone || p.state != StateIdle {
		return false
	}
	w.beginMove(p, d)
	return true
}

func (w *World) beginMove(p *Player, d Direction) {
	p.move = moveState{
		dir:    d,
		start:  w.elapsed,
		source: p.Pos,
		target: p.Pos.Add(d.Step()),
	}
	w.transition(p, StateMoving)
	w.log.WithFields(log.Fields{
		"team": p.Team.String(),
		"dir":  d.String(),
		"from": fmt.Sprintf("%d;%d", p.Cell().X, p.Cell().Y),
	}).Debug("hop")
}

// integrateMovement advances every hop in progress and resolves landings.
func (w *World) integrateMovement(float64) {
	for _, p := range w.players {
		if p.state != StateMoving {
			continue
		}
		progress := (w.elapsed - p.move.start) * p.Speed
		if progress >= 1 {
			w.land(p)
			continue
		}
		p.Pos = p.move.source.Lerp(p.move.target, Ease(progress))
	}
}

// land snaps the player onto its target and either claims the block there or
// starts falling. Ownership and the state change happen together.
func (w *World) land(p *Player) {
	if p.state != StateMoving {
		panic(fmt.Sprintf("arena: landing resolved for %s player in state %s", p.Team, p.state))
	}
	p.Pos = p.move.target
	c := CellAt(p.Pos)
	if b, ok := w.grid.Get(c); ok {
		w.claim(p, b)
		w.transition(p, StateIdle)
		return
	}
	w.log.WithFields(log.Fields{"team": p.Team.String(), "x": c.X, "y": c.Y}).Info("player is falling")
	w.transition(p, StateFalling)
}
