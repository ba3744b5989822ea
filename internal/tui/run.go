package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"lavahop/internal/arena"
	"lavahop/internal/core"
)

// Driver is the part of a game session the terminal loop controls.
type Driver interface {
	World() *arena.World
	Step(dt float64)
	Start()
	TogglePause()
	Reset(seed int64)
}

// Loop runs a session on a terminal screen.
type Loop struct {
	screen  tcell.Screen
	driver  Driver
	latch   *Latch
	timer   *core.FixedStep
	clock   float64
	reseed  func() int64
	stopped bool
}

// NewLoop wires driver to screen at tps ticks per second. Keyboard input is
// routed to the world's human players.
func NewLoop(screen tcell.Screen, driver Driver, tps int) *Loop {
	l := &Loop{
		screen: screen,
		driver: driver,
		latch:  NewLatch(DefaultHold),
		timer:  core.NewFixedStep(tps),
		reseed: func() int64 { return time.Now().UnixNano() },
	}
	driver.World().SetInput(l.latch)
	return l
}

// Run polls screen events and steps the session until the player quits.
func (l *Loop) Run() {
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(l.screen, done)

	ticker := time.NewTicker(l.timer.Step())
	defer ticker.Stop()
	l.draw()
	for !l.stopped {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			l.Handle(ev)
		case <-ticker.C:
			for n := l.timer.Due(); n > 0; n-- {
				l.Tick()
			}
			l.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done is
// closed. The returned channel is closed when forwarding stops.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// Stopped reports whether the player asked to quit.
func (l *Loop) Stopped() bool { return l.stopped }

// Handle applies one screen event.
func (l *Loop) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		l.screen.Sync()
	case *tcell.EventKey:
		l.command(l.latch.HandleKey(ev))
	}
}

func (l *Loop) command(c Command) {
	switch c {
	case CommandQuit:
		l.stopped = true
	case CommandStart:
		l.driver.Start()
	case CommandPause:
		l.driver.TogglePause()
	case CommandReset:
		l.latch.Release()
		l.driver.Reset(0)
	case CommandReseed:
		l.latch.Release()
		l.driver.Reset(l.reseed())
	}
}

// Tick advances the session by one fixed step.
func (l *Loop) Tick() {
	dt := l.timer.Seconds()
	l.clock += dt
	l.latch.Advance(l.clock)
	l.driver.Step(dt)
}

func (l *Loop) draw() {
	l.screen.Clear()
	Draw(l.screen, l.driver.World().Snapshot())
	l.screen.Show()
}
