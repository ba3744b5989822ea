//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"lavahop/internal/arena"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the scoreboard and parameter panel to the right of the arena.
type HUD struct {
	world    *arena.World
	controls *Controls
	width    int

	panel        *ebiten.Image
	lastHeight   int
	panelOffsetX int
	rows         []hudRow

	pixel *ebiten.Image
}

type hudRow struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for world with the given panel width.
func NewHUD(world *arena.World, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{world: world, controls: NewControls(world), width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layoutControls()
	return h
}

// Update refreshes parameter values and handles clicks on the +/- buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.controls.Refresh()
	h.handleInput()
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawScoreboard()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i, row := range h.rows {
		if pointInRect(px, my, row.minusRect) {
			h.controls.Adjust(i, -1)
			return
		}
		if pointInRect(px, my, row.plusRect) {
			h.controls.Adjust(i, 1)
			return
		}
	}
}

func (h *HUD) drawScoreboard() {
	face := basicfont.Face7x13
	snap := h.world.Snapshot()
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "lavahop", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	y += scoreSpacing
	text.Draw(h.panel, fmt.Sprintf("red:  %d", snap.Score("red")), face, panelPadding, y, color.RGBA{R: 255, G: 120, B: 130, A: 255})
	y += scoreSpacing
	text.Draw(h.panel, fmt.Sprintf("blue: %d", snap.Score("blue")), face, panelPadding, y, color.RGBA{R: 130, G: 180, B: 255, A: 255})
	y += scoreSpacing
	text.Draw(h.panel, fmt.Sprintf("%s  lava %.1f", snap.Phase, snap.Lava), face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	for i, row := range h.rows {
		labelY := row.top + labelBaseline
		text.Draw(h.panel, h.controls.Label(i), face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !h.controls.Known(i) {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		value := h.controls.Value(i)
		valueX := row.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)

		h.drawButton(row.minusRect, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(row.plusRect, "+", h.controls.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	h.rows = make([]hudRow, h.controls.Len())
	for i := range h.rows {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.rows[i] = hudRow{top: top, minusRect: minusRect, plusRect: plusRect}
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	scoreSpacing   = 18
	controlsTop    = panelPadding + headerBaseline + 4*scoreSpacing
)
