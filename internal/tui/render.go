// Package tui draws the arena on a terminal with tcell.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"lavahop/internal/arena"
)

const (
	cellWidth   = 3
	headerLines = 2
	footerLines = 1
)

var (
	styleDefault = tcell.StyleDefault
	styleLava    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Background(tcell.ColorDarkRed)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func blockStyle(owner string) tcell.Style {
	switch owner {
	case "blue":
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	case "red":
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	}
}

func playerStyle(p arena.PlayerView) tcell.Style {
	style := tcell.StyleDefault.Bold(true)
	if p.Team == "red" {
		style = style.Foreground(tcell.ColorRed)
	} else {
		style = style.Foreground(tcell.ColorDodgerBlue)
	}
	if p.State == "dying" {
		style = style.Foreground(tcell.ColorGray)
	}
	return style
}

// Layout maps arena cells onto terminal coordinates.
type Layout struct {
	Left   int
	TopRow int
	Rows   int
	Lanes  int
	snap   arena.Snapshot
}

// NewLayout fits the arena into a w x h terminal. The bottom visible row
// sits just under the lava surface.
func NewLayout(s arena.Snapshot, w, h int) Layout {
	lanes := s.LaneMax - s.LaneMin + 1
	if lanes < 1 {
		lanes = 1
	}
	rows := h - headerLines - footerLines
	if rows < 1 {
		rows = 1
	}
	bottom := int(math.Floor(s.Lava)) - 1
	left := (w - lanes*cellWidth) / 2
	if left < 0 {
		left = 0
	}
	return Layout{Left: left, TopRow: bottom + rows - 1, Rows: rows, Lanes: lanes, snap: s}
}

// Cell returns the screen column of the cell's first character and its line.
func (l Layout) Cell(x, y int) (int, int, bool) {
	line := headerLines + (l.TopRow - y)
	col := l.Left + (x-l.snap.LaneMin)*cellWidth
	if y > l.TopRow || y <= l.TopRow-l.Rows || x < l.snap.LaneMin || x > l.snap.LaneMax {
		return 0, 0, false
	}
	return col, line, true
}

// Draw paints s onto screen. It does not call Show.
func Draw(screen tcell.Screen, s arena.Snapshot) {
	screen.Clear()
	w, h := screen.Size()
	layout := NewLayout(s, w, h)

	header := fmt.Sprintf("lavahop  %-8s lava %.1f", s.Phase, s.Lava)
	drawText(screen, 0, 0, styleDefault, header)
	drawText(screen, 0, 1, styleDefault, fmt.Sprintf("red: %d  blue: %d", s.Score("red"), s.Score("blue")))

	for i := 0; i < layout.Rows; i++ {
		y := layout.TopRow - i
		if float64(y)+0.5 >= s.Lava {
			continue
		}
		for x := s.LaneMin; x <= s.LaneMax; x++ {
			col, line, _ := layout.Cell(x, y)
			drawText(screen, col, line, styleLava, "~~~")
		}
	}
	for _, b := range s.Blocks {
		col, line, ok := layout.Cell(b.X, b.Y)
		if !ok {
			continue
		}
		drawText(screen, col, line, blockStyle(b.Owner), fmt.Sprintf("[%d]", b.Value))
	}
	for _, p := range s.Players {
		col, line, ok := layout.Cell(int(math.Round(p.X)), int(math.Round(p.Y-0.5)))
		if !ok {
			continue
		}
		// Blue leans right and red left, like their world offsets.
		if p.Team == "red" {
			col++
		} else {
			col += 2
		}
		r := '@'
		if p.State == "dying" {
			r = 'x'
		}
		screen.SetContent(col, line, r, nil, playerStyle(p))
	}

	switch s.Phase {
	case "start":
		drawCentered(screen, w, h/2, styleBanner, "press any key to start")
	case "paused":
		drawCentered(screen, w, h/2, styleBanner, "paused")
	case "over":
		msg := "draw"
		if s.Winner != "" && s.Winner != "none" {
			msg = s.Winner + " wins"
		}
		drawCentered(screen, w, h/2, styleBanner, "game over: "+msg)
	}
	drawText(screen, 0, h-1, styleHelp, "blue: arrows  red: wasd  space: pause  r: reset  q: quit")
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func drawCentered(screen tcell.Screen, w, y int, style tcell.Style, text string) {
	x := (w - len(text)) / 2
	if x < 0 {
		x = 0
	}
	drawText(screen, x, y, style, text)
}
