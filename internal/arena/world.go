package arena

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"lavahop/internal/core"
)

// Phase is the match lifecycle.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return fmt.Sprintf("phase(%d)", p)
	}
}

// Input reports which directions a human team is holding.
type Input interface {
	Pressed(team Team, dir Direction) bool
}

// InputFunc adapts a function to Input.
type InputFunc func(Team, Direction) bool

// Pressed implements Input.
func (f InputFunc) Pressed(t Team, d Direction) bool { return f(t, d) }

// NoInput never presses anything.
var NoInput Input = InputFunc(func(Team, Direction) bool { return false })

type system struct {
	name  string
	gated bool
	run   func(dt float64)
}

// World owns the whole game state and advances it one step at a time. It is
// not safe for concurrent use.
type World struct {
	cfg Config

	grid     *Grid
	players  []*Player
	lava     Lava
	frontier int

	elapsed float64
	runTime float64
	tick    uint64
	phase   Phase

	input   Input
	rng     *core.RNG
	events  []Event
	systems []system
	log     log.FieldLogger
}

// New constructs a world with the default configuration.
func New() *World {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig constructs a world using the provided configuration.
func NewWithConfig(cfg Config) *World {
	w := &World{cfg: cfg, input: NoInput, log: log.StandardLogger()}
	w.systems = []system{
		{name: "lava", gated: true, run: w.advanceLava},
		{name: "prune", run: w.pruneBlocks},
		{name: "generate", run: w.generateRows},
		{name: "control", gated: true, run: w.control},
		{name: "movement", run: w.integrateMovement},
		{name: "falling", run: w.integrateFalling},
		{name: "lava_contact", run: w.checkLavaContact},
		{name: "dying", run: w.resolveDying},
	}
	w.Reset(cfg.Seed)
	return w
}

// Reset rebuilds the arena from seed. The phase returns to Start.
func (w *World) Reset(seed int64) {
	w.cfg.Seed = seed
	w.rng = core.NewRNG(seed)
	w.grid = NewGrid()
	w.lava = Lava{Height: w.cfg.Params.LavaStart, Speed: w.cfg.Params.LavaSpeed}
	w.elapsed = 0
	w.runTime = 0
	w.tick = 0
	w.phase = PhaseStart
	w.events = w.events[:0]

	w.players = w.players[:0]
	for i, t := range Teams {
		p := &Player{
			ID:         PlayerID(i + 1),
			Team:       t,
			Controller: w.cfg.Controller(t),
			Speed:      w.cfg.Params.PlayerSpeed,
			state:      StateIdle,
		}
		w.players = append(w.players, p)
	}
	w.populate()
	for _, p := range w.players {
		p.Pos = standPos(w.startCell(p.Team), p.Team)
	}
	w.log.WithFields(log.Fields{"seed": seed, "blocks": w.grid.Len()}).Debug("arena reset")
}

// SetLogger replaces the diagnostics logger. A nil logger restores the
// standard one.
func (w *World) SetLogger(l log.FieldLogger) {
	if l == nil {
		l = log.StandardLogger()
	}
	w.log = l
}

// SetInput installs the human input source. A nil input presses nothing.
func (w *World) SetInput(in Input) {
	if in == nil {
		in = NoInput
	}
	w.input = in
}

// Step advances the simulation by dt seconds and runs every system once in
// order. Events from the previous step are discarded.
func (w *World) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.events = w.events[:0]
	w.tick++
	w.elapsed += dt
	running := w.phase == PhaseRunning
	if running {
		w.runTime += dt
	}
	for _, s := range w.systems {
		if s.gated && !running {
			continue
		}
		s.run(dt)
	}
	if running && w.cfg.Params.MatchDuration > 0 && w.runTime >= w.cfg.Params.MatchDuration {
		w.setPhase(PhaseOver)
	}
}

func (w *World) advanceLava(dt float64) { w.lava.Advance(dt) }

func (w *World) control(float64) {
	w.readInput()
	w.decideAI()
}

// Start leaves the Start phase. It does nothing in any other phase.
func (w *World) Start() {
	if w.phase == PhaseStart {
		w.setPhase(PhaseRunning)
	}
}

// TogglePause switches between Running and Paused.
func (w *World) TogglePause() {
	switch w.phase {
	case PhaseRunning:
		w.setPhase(PhasePaused)
	case PhasePaused:
		w.setPhase(PhaseRunning)
	}
}

func (w *World) setPhase(p Phase) {
	if w.phase == p {
		return
	}
	w.phase = p
	w.emit(Event{Kind: EventPhaseChanged, Phase: p})
	w.log.WithFields(log.Fields{"phase": p.String(), "elapsed": w.elapsed}).Info("phase changed")
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.events = append(w.events, e)
}

// Events returns the events raised by the last step. The slice is reused by
// the next step.
func (w *World) Events() []Event { return w.events }

// Phase returns the match phase.
func (w *World) Phase() Phase { return w.phase }

// Elapsed returns the simulation clock in seconds.
func (w *World) Elapsed() float64 { return w.elapsed }

// RunTime returns the seconds spent in the Running phase.
func (w *World) RunTime() float64 { return w.runTime }

// Tick returns the number of steps taken since the last reset.
func (w *World) Tick() uint64 { return w.tick }

// Lava returns the current lava height.
func (w *World) Lava() float64 { return w.lava.Height }

// Grid exposes the block grid for read-only inspection.
func (w *World) Grid() *Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Players returns the players in id order.
func (w *World) Players() []*Player { return w.players }

// Player resolves an id. Unknown ids, including NoPlayer, report false.
func (w *World) Player(id PlayerID) (*Player, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(w.players) {
		return nil, false
	}
	return w.players[i], true
}

// PlayerByTeam returns the player on team t.
func (w *World) PlayerByTeam(t Team) (*Player, bool) {
	for _, p := range w.players {
		if p.Team == t {
			return p, true
		}
	}
	return nil, false
}

// Winner returns the team with the higher score. A tie reports TeamNone.
func (w *World) Winner() Team {
	best, team, tie := -1, TeamNone, false
	for _, p := range w.players {
		switch {
		case p.Score > best:
			best, team, tie = p.Score, p.Team, false
		case p.Score == best:
			tie = true
		}
	}
	if tie {
		return TeamNone
	}
	return team
}
