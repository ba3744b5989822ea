package arena

import (
	"image/color"
	"math"

	"lavahop/internal/core"
)

// Palette indices written by Render. Block indices are derived from the
// block's value and owning team with BlockIndex.
const (
	IndexSky uint8 = iota
	IndexLava
	IndexPlayerBlue
	IndexPlayerRed
	IndexDying
)

const (
	blockIndexBase = 16
	paletteSize    = 64

	playerHalfWidth = 0.2
	playerHeight    = 0.6
	blockInset      = 0.06
)

var arenaPalette = buildArenaPalette()

// BlockIndex is the material lookup key for a block of the given value
// owned by team t.
func BlockIndex(value uint8, t Team) uint8 {
	if value > 9 {
		value = 9
	}
	return blockIndexBase*(1+uint8(t)) + value
}

// Palette exposes the colours Render's indices refer to.
func (w *World) Palette() []color.RGBA {
	return arenaPalette
}

func buildArenaPalette() []color.RGBA {
	palette := make([]color.RGBA, paletteSize)
	palette[IndexSky] = color.RGBA{R: 18, G: 20, B: 32, A: 255}
	palette[IndexLava] = color.RGBA{R: 255, G: 90, B: 40, A: 255}
	palette[IndexPlayerBlue] = color.RGBA{R: 120, G: 180, B: 255, A: 255}
	palette[IndexPlayerRed] = color.RGBA{R: 255, G: 110, B: 120, A: 255}
	palette[IndexDying] = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	for _, t := range [...]Team{TeamNone, TeamBlue, TeamRed} {
		for v := uint8(1); v <= 9; v++ {
			palette[BlockIndex(v, t)] = shade(teamBase(t), v)
		}
	}
	return palette
}

func teamBase(t Team) color.RGBA {
	switch t {
	case TeamBlue:
		return color.RGBA{R: 40, G: 90, B: 200, A: 255}
	case TeamRed:
		return color.RGBA{R: 190, G: 40, B: 50, A: 255}
	default:
		return color.RGBA{R: 120, G: 120, B: 110, A: 255}
	}
}

// shade brightens higher values so the scoring potential of a block reads at
// a glance.
func shade(base color.RGBA, value uint8) color.RGBA {
	f := 0.55 + 0.05*float64(value)
	scale := func(c uint8) uint8 {
		v := float64(c) * f
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: 255}
}

// View describes the window Render drew. Bottom is the world height at the
// lower edge of the raster.
type View struct {
	CellPx int
	Bottom float64
	Left   float64
}

// WorldToPixel maps a world position onto raster coordinates.
func (v View) WorldToPixel(x, y float64, h int) (int, int) {
	px := int(math.Floor((x - v.Left) * float64(v.CellPx)))
	py := h - 1 - int(math.Floor((y-v.Bottom)*float64(v.CellPx)))
	return px, py
}

// Render rasterises the arena into dst with cellPx raster pixels per cell.
// The camera follows the lava so the surface stays near the bottom edge.
func (w *World) Render(dst *core.ByteGrid, cellPx int) View {
	if cellPx <= 0 {
		cellPx = 1
	}
	view := View{
		CellPx: cellPx,
		Bottom: w.lava.Height - 1.5,
		Left:   float64(w.cfg.Params.LaneMin) - 0.5,
	}
	scale := float64(cellPx)
	for py := 0; py < dst.H; py++ {
		wy := view.Bottom + (float64(dst.H-py)-0.5)/scale
		for px := 0; px < dst.W; px++ {
			wx := view.Left + (float64(px)+0.5)/scale
			dst.Set(px, py, w.sample(wx, wy))
		}
	}
	for _, p := range w.players {
		idx := IndexPlayerBlue
		if p.Team == TeamRed {
			idx = IndexPlayerRed
		}
		if p.state == StateDying {
			idx = IndexDying
		}
		x0, y1 := view.WorldToPixel(p.Pos.X-playerHalfWidth, p.Pos.Y, dst.H)
		x1, y0 := view.WorldToPixel(p.Pos.X+playerHalfWidth, p.Pos.Y+playerHeight, dst.H)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.Set(x, y, idx)
			}
		}
	}
	return view
}

func (w *World) sample(wx, wy float64) uint8 {
	if wy < w.lava.Height {
		return IndexLava
	}
	c := Cell{X: int(math.Round(wx)), Y: int(math.Round(wy))}
	b, ok := w.grid.Get(c)
	if !ok {
		return IndexSky
	}
	if math.Abs(wx-float64(c.X)) > 0.5-blockInset || math.Abs(wy-float64(c.Y)) > 0.5-blockInset {
		return IndexSky
	}
	return BlockIndex(b.Value, w.OwnerTeam(b))
}
