package tui

import (
	"github.com/gdamore/tcell/v2"

	"lavahop/internal/arena"
)

// DefaultHold is how long a key press counts as held. Terminals report
// repeats, not releases, so a press is latched for a short window.
const DefaultHold = 0.18

// Command is a non-movement key action.
type Command uint8

const (
	CommandNone Command = iota
	CommandQuit
	CommandStart
	CommandPause
	CommandReset
	CommandReseed
)

type binding struct {
	team arena.Team
	dir  arena.Direction
}

var runeBindings = map[rune]binding{
	'w': {arena.TeamRed, arena.DirUp},
	'a': {arena.TeamRed, arena.DirLeft},
	's': {arena.TeamRed, arena.DirDown},
	'd': {arena.TeamRed, arena.DirRight},
}

var keyBindings = map[tcell.Key]binding{
	tcell.KeyUp:    {arena.TeamBlue, arena.DirUp},
	tcell.KeyLeft:  {arena.TeamBlue, arena.DirLeft},
	tcell.KeyDown:  {arena.TeamBlue, arena.DirDown},
	tcell.KeyRight: {arena.TeamBlue, arena.DirRight},
}

// Latch turns key events into the held-key view the arena polls. It is used
// from the game loop only.
type Latch struct {
	hold  float64
	now   float64
	until map[binding]float64
}

// NewLatch returns a latch holding each press for hold seconds.
func NewLatch(hold float64) *Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Latch{hold: hold, until: make(map[binding]float64)}
}

// Advance moves the latch clock to now, in seconds.
func (l *Latch) Advance(now float64) { l.now = now }

// Press latches dir for team.
func (l *Latch) Press(team arena.Team, dir arena.Direction) {
	l.until[binding{team, dir}] = l.now + l.hold
}

// Release drops every latched key.
func (l *Latch) Release() {
	clear(l.until)
}

// Pressed implements arena.Input.
func (l *Latch) Pressed(team arena.Team, dir arena.Direction) bool {
	return l.until[binding{team, dir}] > l.now
}

// HandleKey latches movement keys and translates the rest into commands.
func (l *Latch) HandleKey(ev *tcell.EventKey) Command {
	return l.Handle(ev.Key(), ev.Rune())
}

// Handle is HandleKey for a decoded key and rune.
func (l *Latch) Handle(key tcell.Key, r rune) Command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyEnter:
		return CommandStart
	case tcell.KeyRune:
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if b, ok := runeBindings[r]; ok {
			l.Press(b.team, b.dir)
			return CommandStart
		}
		switch r {
		case 'q':
			return CommandQuit
		case ' ', 'p':
			return CommandPause
		case 'r':
			return CommandReset
		case 'n':
			return CommandReseed
		}
		return CommandNone
	}
	if b, ok := keyBindings[key]; ok {
		l.Press(b.team, b.dir)
		return CommandStart
	}
	return CommandNone
}
