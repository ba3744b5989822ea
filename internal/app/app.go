//go:build ebiten

package app

import (
	"time"

	"lavahop/internal/arena"
	"lavahop/internal/core"
	"lavahop/internal/render"
	"lavahop/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// rasterCellPx is the raster resolution of one arena cell before scaling.
const rasterCellPx = 8

// visibleRows is how many arena rows fit on screen above the lava.
const visibleRows = 12

var blueKeys = map[arena.Direction]ebiten.Key{
	arena.DirUp:    ebiten.KeyArrowUp,
	arena.DirDown:  ebiten.KeyArrowDown,
	arena.DirLeft:  ebiten.KeyArrowLeft,
	arena.DirRight: ebiten.KeyArrowRight,
}

var redKeys = map[arena.Direction]ebiten.Key{
	arena.DirUp:    ebiten.KeyW,
	arena.DirDown:  ebiten.KeyS,
	arena.DirLeft:  ebiten.KeyA,
	arena.DirRight: ebiten.KeyD,
}

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	raster  *core.ByteGrid
	view    arena.View
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	hudWidth int
	dt       float64
}

// New constructs a Game around session. scale is the on-screen size of one
// arena cell in pixels.
func New(session *Session, scale, tps, hudWidth int) *Game {
	world := session.World()
	world.SetInput(arena.InputFunc(keyboardPressed))

	lanes := world.Config().Params.LaneMax - world.Config().Params.LaneMin + 1
	raster := core.NewByteGrid(lanes*rasterCellPx, visibleRows*rasterCellPx)
	pixelScale := scale / rasterCellPx
	if pixelScale < 1 {
		pixelScale = 1
	}
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		session:  session,
		painter:  render.NewGridPainter(raster.W, raster.H),
		raster:   raster,
		hud:      ui.NewHUD(world, hudWidth),
		overlay:  ui.NewOverlay(world),
		scale:    pixelScale,
		hudWidth: hudWidth,
		dt:       1 / float64(tps),
	}
}

func keyboardPressed(team arena.Team, dir arena.Direction) bool {
	keys := blueKeys
	if team == arena.TeamRed {
		keys = redKeys
	}
	key, ok := keys[dir]
	return ok && ebiten.IsKeyPressed(key)
}

func anyMovementKey() bool {
	for _, keys := range []map[arena.Direction]ebiten.Key{blueKeys, redKeys} {
		for _, key := range keys {
			if inpututil.IsKeyJustPressed(key) {
				return true
			}
		}
	}
	return false
}

// Update handles per-frame logic and advances the arena by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || (g.session.World().Phase() == arena.PhaseStart && anyMovementKey()) {
		g.session.Start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.session.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.arenaWidth())

	g.session.Step(g.dt)
	return nil
}

// Draw renders the arena, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	world := g.session.World()
	g.view = world.Render(g.raster, rasterCellPx)
	g.painter.Blit(screen, g.raster.Cells(), world.Palette(), g.scale)

	screenView := g.view
	screenView.CellPx = rasterCellPx * g.scale
	g.overlay.Draw(screen, g.arenaWidth(), g.arenaHeight(), screenView)
	g.hud.Draw(screen, g.arenaWidth(), g.arenaHeight())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.arenaWidth() + g.hudWidth, g.arenaHeight()
}

func (g *Game) arenaWidth() int  { return g.raster.W * g.scale }
func (g *Game) arenaHeight() int { return g.raster.H * g.scale }
