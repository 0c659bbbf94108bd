//go:build ebiten

package app

import (
	"time"

	"surface-grid/internal/render"
	"surface-grid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sphere simulation to the ebiten.Game interface,
// rendering it through the equirectangular projection.
type Game struct {
	sim     Sim
	overlay *ui.Overlay

	width, height int
	buf           []byte
	img           *ebiten.Image

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim Sim, width, height int, seed int64) *Game {
	return &Game{
		sim:     sim,
		overlay: ui.NewOverlay(width, height),
		width:   width,
		height:  height,
		buf:     make([]byte, width*height*4),
		img:     ebiten.NewImage(width, height),
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	render.Equirect(g.buf, g.width, g.height, g.sim.Sample)
	g.img.WritePixels(g.buf)
	screen.DrawImage(g.img, nil)
	if g.overlay != nil {
		g.overlay.Draw(screen, g.sim)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
