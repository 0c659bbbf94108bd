//go:build ebiten

package main

import (
	"errors"
	"flag"
	"image/color"
	"log"

	"surface-grid/internal/app"
	"surface-grid/pkg/sphere"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/hajimehoshi/ebiten/v2"
)

// faces is a static diagnostic view that paints every cell with its
// own unit-sphere position mapped to RGB. Seam translation bugs show
// up as colour discontinuities along the face edges.
type faces struct {
	grid *sphere.CubeGrid[r3.Vector]
}

func newFaces(size int) (*faces, error) {
	g, err := sphere.NewCubeGridPar(size, func(p sphere.CubePoint) r3.Vector {
		return p.Position(1)
	})
	if err != nil {
		return nil, err
	}
	return &faces{grid: g}, nil
}

func (f *faces) Name() string { return "cubeview" }

func (f *faces) Reset(int64) {}

func (f *faces) Step() {}

func (f *faces) Sample(ll s2.LatLng) color.RGBA {
	p, err := f.grid.FromGeographic(ll)
	if err != nil {
		return color.RGBA{A: 255}
	}
	v, _ := f.grid.Get(p)
	return color.RGBA{
		R: uint8((v.X + 1) / 2 * 255),
		G: uint8((v.Y + 1) / 2 * 255),
		B: uint8((v.Z + 1) / 2 * 255),
		A: 255,
	}
}

// FaceAt enables the seam overlay.
func (f *faces) FaceAt(ll s2.LatLng) (int, bool) {
	p, err := f.grid.FromGeographic(ll)
	if err != nil {
		return 0, false
	}
	return int(p.Face), true
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := newFaces(cfg.Size)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.Width, cfg.Height, cfg.Seed)

	ebiten.SetWindowTitle("surface-grid — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
