//go:build ebiten

package main

import (
	"errors"
	"flag"
	"image/color"
	"log"

	"surface-grid/internal/app"
	"surface-grid/pkg/sims/conway"

	"github.com/golang/geo/s2"
	"github.com/hajimehoshi/ebiten/v2"
)

// board colours the Life simulation for the viewer: live cells white,
// dead cells black.
type board struct {
	*conway.Life
}

func (b board) Sample(ll s2.LatLng) color.RGBA {
	if b.At(ll) {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{A: 255}
}

// FaceAt enables the seam overlay.
func (b board) FaceAt(ll s2.LatLng) (int, bool) {
	p, err := b.Grid().FromGeographic(ll)
	if err != nil {
		return 0, false
	}
	return int(p.Face), true
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := conway.New(cfg.Size)
	if err != nil {
		log.Fatal(err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(board{sim}, cfg.Width, cfg.Height, cfg.Seed)

	ebiten.SetWindowTitle("surface-grid — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
