package app

import (
	log "github.com/sirupsen/logrus"

	"lavahop/internal/arena"
	"lavahop/internal/spectate"
)

// EventSink receives the events of every step, e.g. the sound cue player.
type EventSink interface {
	Handle(events []arena.Event)
}

// Session drives a World for a frontend and forwards each step to the
// optional sound and spectator collaborators. It belongs to the game loop
// goroutine.
type Session struct {
	world        *arena.World
	hub          *spectate.Hub
	sound        EventSink
	publishEvery uint64
	seed         int64
	log          log.FieldLogger
}

// SessionOptions wires the optional collaborators. Nil fields are skipped.
type SessionOptions struct {
	Hub          *spectate.Hub
	Sound        EventSink
	PublishEvery int
	Logger       log.FieldLogger
}

// NewSession wraps world.
func NewSession(world *arena.World, opts SessionOptions) *Session {
	every := opts.PublishEvery
	if every <= 0 {
		every = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Session{
		world:        world,
		hub:          opts.Hub,
		sound:        opts.Sound,
		publishEvery: uint64(every),
		seed:         world.Config().Seed,
		log:          logger,
	}
	s.publish()
	return s
}

// World returns the simulated world.
func (s *Session) World() *arena.World { return s.world }

// Step advances the world by dt seconds.
func (s *Session) Step(dt float64) {
	before := s.world.Phase()
	s.world.Step(dt)
	events := s.world.Events()
	if s.sound != nil {
		s.sound.Handle(events)
	}
	if s.world.Phase() != before && s.world.Phase() == arena.PhaseOver {
		snap := s.world.Snapshot()
		s.log.WithFields(log.Fields{
			"winner": s.world.Winner().String(),
			"red":    snap.Score("red"),
			"blue":   snap.Score("blue"),
		}).Info("match over")
	}
	if s.world.Tick()%s.publishEvery == 0 || s.world.Phase() != before {
		s.publish()
	}
}

// Start begins the match from the Start phase.
func (s *Session) Start() {
	s.world.Start()
	s.publish()
}

// TogglePause pauses or resumes a running match. Any key starts a match that
// has not begun yet.
func (s *Session) TogglePause() {
	if s.world.Phase() == arena.PhaseStart {
		s.world.Start()
	} else {
		s.world.TogglePause()
	}
	s.publish()
}

// Reset restarts the arena. A zero seed reuses the current one.
func (s *Session) Reset(seed int64) {
	if seed != 0 {
		s.seed = seed
	}
	s.world.Reset(s.seed)
	s.log.WithField("seed", s.seed).Info("arena reset")
	s.publish()
}

// Seed returns the seed of the current arena.
func (s *Session) Seed() int64 { return s.seed }

func (s *Session) publish() {
	if s.hub == nil {
		return
	}
	if err := s.hub.Publish(s.world.Snapshot()); err != nil {
		s.log.WithError(err).Warn("publish snapshot")
	}
}
