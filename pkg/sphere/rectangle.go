package sphere

import (
	"iter"
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"surface-grid/pkg/surface"
)

// RectanglePoint identifies a cell on a RectangleGrid. Column x = 0
// sits at longitude -pi and row y = 0 at latitude +pi/2 (the north
// pole row).
type RectanglePoint struct {
	X, Y int

	w, h int
}

var _ = assertSpherePoint[RectanglePoint]

// The vertical moves follow the meridian great circle through the
// cell: crossing a pole row continues on the antipodal column of the
// same row, and on the antipodal half of the grid (x >= w/2) the
// vertical directions run reversed, so that repeating Up traverses a
// full meridian loop of 2*h steps.

// Up moves one cell along the meridian towards decreasing y.
func (p RectanglePoint) Up() RectanglePoint {
	if p.X >= p.w/2 {
		if p.Y == p.h-1 {
			return RectanglePoint{X: (p.X + p.w/2) % p.w, Y: p.h - 1, w: p.w, h: p.h}
		}
		return RectanglePoint{X: p.X, Y: p.Y + 1, w: p.w, h: p.h}
	}
	if p.Y == 0 {
		return RectanglePoint{X: (p.X + p.w/2) % p.w, Y: 0, w: p.w, h: p.h}
	}
	return RectanglePoint{X: p.X, Y: p.Y - 1, w: p.w, h: p.h}
}

// Down moves one cell along the meridian towards increasing y.
func (p RectanglePoint) Down() RectanglePoint {
	if p.X < p.w/2 {
		if p.Y == p.h-1 {
			return RectanglePoint{X: (p.X + p.w/2) % p.w, Y: p.h - 1, w: p.w, h: p.h}
		}
		return RectanglePoint{X: p.X, Y: p.Y + 1, w: p.w, h: p.h}
	}
	if p.Y == 0 {
		return RectanglePoint{X: (p.X + p.w/2) % p.w, Y: 0, w: p.w, h: p.h}
	}
	return RectanglePoint{X: p.X, Y: p.Y - 1, w: p.w, h: p.h}
}

// Left moves one cell west, wrapping across the longitude seam.
func (p RectanglePoint) Left() RectanglePoint {
	return RectanglePoint{X: (p.X + p.w - 1) % p.w, Y: p.Y, w: p.w, h: p.h}
}

// Right moves one cell east, wrapping across the longitude seam.
func (p RectanglePoint) Right() RectanglePoint {
	return RectanglePoint{X: (p.X + 1) % p.w, Y: p.Y, w: p.w, h: p.h}
}

func (p RectanglePoint) UpLeft() RectanglePoint    { return p.Up().Left() }
func (p RectanglePoint) UpRight() RectanglePoint   { return p.Up().Right() }
func (p RectanglePoint) DownLeft() RectanglePoint  { return p.Down().Left() }
func (p RectanglePoint) DownRight() RectanglePoint { return p.Down().Right() }

// LatLng returns the geographic coordinates of the cell's top-left
// sample: y = 0 maps to latitude +pi/2 and x = 0 to longitude -pi.
func (p RectanglePoint) LatLng() s2.LatLng {
	lat := math.Pi/2 - float64(p.Y)/float64(p.h)*math.Pi
	lng := float64(p.X)/float64(p.w)*2*math.Pi - math.Pi
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lng)}
}

// Position returns the cell's location on a sphere with the given
// radius.
func (p RectanglePoint) Position(scale float64) r3.Vector {
	return s2.PointFromLatLng(p.LatLng()).Mul(scale)
}

// RectangleGrid is a sphere grid based on the equirectangular
// projection: a single width x height array whose columns wrap
// cylindrically in longitude and whose top and bottom rows border the
// poles.
type RectangleGrid[T any] struct {
	w, h  int
	cells []T
}

var _ surface.SphereGrid[int, RectanglePoint] = (*RectangleGrid[int])(nil)

// NewRectangleGrid builds a grid by evaluating f exactly once per
// point. The width must be positive and even (pole crossings land on
// the antipodal column) and the height positive; anything else fails
// with ErrDimensionMismatch.
func NewRectangleGrid[T any](width, height int, f func(RectanglePoint) T) (*RectangleGrid[T], error) {
	g, err := emptyRectangleGrid[T](width, height)
	if err != nil {
		return nil, err
	}
	g.SetFromFn(f)
	return g, nil
}

// NewRectangleGridPar is NewRectangleGrid with f evaluated on the
// worker pool. For a pure f the result is identical.
func NewRectangleGridPar[T any](width, height int, f func(RectanglePoint) T) (*RectangleGrid[T], error) {
	g, err := emptyRectangleGrid[T](width, height)
	if err != nil {
		return nil, err
	}
	g.SetFromFnPar(f)
	return g, nil
}

func emptyRectangleGrid[T any](width, height int) (*RectangleGrid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(surface.ErrDimensionMismatch, "rectangle grid %dx%d", width, height)
	}
	if width%2 != 0 {
		return nil, errors.Wrapf(surface.ErrDimensionMismatch, "rectangle grid width %d is odd", width)
	}
	return &RectangleGrid[T]{w: width, h: height, cells: make([]T, width*height)}, nil
}

// Width returns the number of columns.
func (g *RectangleGrid[T]) Width() int { return g.w }

// Height returns the number of rows.
func (g *RectangleGrid[T]) Height() int { return g.h }

// Len returns the total number of cells.
func (g *RectangleGrid[T]) Len() int { return len(g.cells) }

// At returns the point at column x, row y. Coordinates outside the
// grid fail with ErrInvalidCoordinate; they are never wrapped.
func (g *RectangleGrid[T]) At(x, y int) (RectanglePoint, error) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return RectanglePoint{}, errors.Wrapf(surface.ErrInvalidCoordinate, "(%d, %d) outside %dx%d grid", x, y, g.w, g.h)
	}
	return RectanglePoint{X: x, Y: y, w: g.w, h: g.h}, nil
}

func (g *RectangleGrid[T]) index(p RectanglePoint) (int, error) {
	if p.w != g.w || p.h != g.h || p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return 0, errors.Wrapf(surface.ErrInvalidCoordinate, "point (%d, %d) does not address a %dx%d grid", p.X, p.Y, g.w, g.h)
	}
	return p.Y*g.w + p.X, nil
}

// Get returns the value stored at p.
func (g *RectangleGrid[T]) Get(p RectanglePoint) (T, error) {
	i, err := g.index(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.cells[i], nil
}

// Set stores v at p.
func (g *RectangleGrid[T]) Set(p RectanglePoint, v T) error {
	i, err := g.index(p)
	if err != nil {
		return err
	}
	g.cells[i] = v
	return nil
}

// SetFromFn evaluates f once per point and stores the result.
func (g *RectangleGrid[T]) SetFromFn(f func(RectanglePoint) T) {
	g.fillRows(0, g.h, f)
}

// SetFromFnPar evaluates f once per point across the worker pool; each
// worker owns a disjoint range of rows.
func (g *RectangleGrid[T]) SetFromFnPar(f func(RectanglePoint) T) {
	surface.ParallelFor(g.h, func(lo, hi int) { g.fillRows(lo, hi, f) })
}

func (g *RectangleGrid[T]) fillRows(lo, hi int, f func(RectanglePoint) T) {
	for y := lo; y < hi; y++ {
		for x := 0; x < g.w; x++ {
			g.cells[y*g.w+x] = f(RectanglePoint{X: x, Y: y, w: g.w, h: g.h})
		}
	}
}

// All yields every (point, value) pair in row-major order.
func (g *RectangleGrid[T]) All() iter.Seq2[RectanglePoint, T] {
	return func(yield func(RectanglePoint, T) bool) {
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				if !yield(RectanglePoint{X: x, Y: y, w: g.w, h: g.h}, g.cells[y*g.w+x]) {
					return
				}
			}
		}
	}
}

// Points yields every point in row-major order.
func (g *RectangleGrid[T]) Points() iter.Seq[RectanglePoint] {
	return func(yield func(RectanglePoint) bool) {
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				if !yield(RectanglePoint{X: x, Y: y, w: g.w, h: g.h}) {
					return
				}
			}
		}
	}
}

// RangePar calls f once per cell from the worker pool.
func (g *RectangleGrid[T]) RangePar(f func(RectanglePoint, T)) {
	surface.ParallelFor(g.h, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < g.w; x++ {
				f(RectanglePoint{X: x, Y: y, w: g.w, h: g.h}, g.cells[y*g.w+x])
			}
		}
	})
}

// Clone returns a deep copy of the grid.
func (g *RectangleGrid[T]) Clone() surface.Grid[T, RectanglePoint] {
	return &RectangleGrid[T]{w: g.w, h: g.h, cells: slices.Clone(g.cells)}
}

// FromGeographic returns the point whose cell covers the given
// location.
func (g *RectangleGrid[T]) FromGeographic(ll s2.LatLng) (RectanglePoint, error) {
	if err := checkGeographic(ll); err != nil {
		return RectanglePoint{}, err
	}
	lat, lng := ll.Lat.Radians(), ll.Lng.Radians()

	x := int(math.Floor((lng + math.Pi) / (2 * math.Pi) * float64(g.w)))
	// The antimeridian wraps back onto column zero.
	x = ((x % g.w) + g.w) % g.w

	y := int(math.Floor((math.Pi/2 - lat) / math.Pi * float64(g.h)))
	y = max(0, min(y, g.h-1))

	return RectanglePoint{X: x, Y: y, w: g.w, h: g.h}, nil
}

func assertSpherePoint[P surface.SpherePoint[P]]() {}
