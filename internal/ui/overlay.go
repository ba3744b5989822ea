//go:build ebiten

package ui

import (
	"image/color"

	"lavahop/internal/arena"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the phase banner and an optional lane grid over the arena.
type Overlay struct {
	world    *arena.World
	showGrid bool
	pixel    *ebiten.Image
}

// NewOverlay constructs an overlay for world.
func NewOverlay(world *arena.World) *Overlay {
	o := &Overlay{world: world}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the lane grid with the G key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the overlay over an arena area of w x h pixels.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int, view arena.View) {
	if o.showGrid {
		o.drawGrid(screen, w, h, view)
	}
	banner := PhaseBanner(o.world.Phase(), o.world.Winner())
	if banner == "" {
		return
	}
	face := basicfont.Face7x13
	bounds := text.BoundString(face, banner)
	x := (w - bounds.Dx()) / 2
	y := h / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()+24), float64(bounds.Dy()+16))
	op.GeoM.Translate(float64(x-12), float64(y-bounds.Dy()-8))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	screen.DrawImage(o.pixel, op)
	text.Draw(screen, banner, face, x, y, color.RGBA{R: 255, G: 220, B: 120, A: 255})
}

func (o *Overlay) drawGrid(screen *ebiten.Image, w, h int, view arena.View) {
	if view.CellPx <= 0 {
		return
	}
	line := color.RGBA{R: 255, G: 255, B: 255, A: 40}
	for x := 0; x <= w; x += view.CellPx {
		o.fill(screen, x, 0, 1, h, line)
	}
	// Rows are centred on integer heights, so boundaries sit at y+0.5.
	_, first := view.WorldToPixel(0, float64(int(view.Bottom))+0.5, h)
	for y := first; y >= 0; y -= view.CellPx {
		o.fill(screen, 0, y, w, 1, line)
	}
}

func (o *Overlay) fill(screen *ebiten.Image, x, y, w, h int, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(o.pixel, op)
}
