// Package conway runs Conway's Game of Life on a cube grid, so the
// board has no edges and gliders cross face seams undisturbed.
package conway

import (
	"math/rand/v2"

	"github.com/golang/geo/s2"

	"surface-grid/pkg/sphere"
	"surface-grid/pkg/surface"
)

// Life holds the double-buffered board.
type Life struct {
	cur *sphere.CubeGrid[bool]
	nxt *sphere.CubeGrid[bool]
}

// New returns a Life simulation on a cube with the given face size.
func New(size int) (*Life, error) {
	cur, err := sphere.NewCubeGrid(size, func(sphere.CubePoint) bool { return false })
	if err != nil {
		return nil, err
	}
	nxt, err := sphere.NewCubeGrid(size, func(sphere.CubePoint) bool { return false })
	if err != nil {
		return nil, err
	}
	return &Life{cur: cur, nxt: nxt}, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "conway" }

// Size returns the face side length.
func (l *Life) Size() int { return l.cur.Size() }

// Grid exposes the current generation.
func (l *Life) Grid() *sphere.CubeGrid[bool] { return l.cur }

// Reset randomizes the board using the provided seed.
func (l *Life) Reset(seed int64) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	l.cur.SetFromFn(func(sphere.CubePoint) bool { return rng.IntN(2) == 1 })
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	// The buffers share a size by construction, so the shape check
	// cannot fail.
	_ = surface.SetFromNeighboursDiagonalsPar(l.nxt, l.cur, func(alive bool, neighbours []bool) bool {
		n := 0
		for _, v := range neighbours {
			if v {
				n++
			}
		}
		return n == 3 || (alive && n == 2)
	})
	l.cur, l.nxt = l.nxt, l.cur
}

// At reports whether the cell covering the given location is alive.
func (l *Life) At(ll s2.LatLng) bool {
	p, err := l.cur.FromGeographic(ll)
	if err != nil {
		return false
	}
	v, _ := l.cur.Get(p)
	return v
}
