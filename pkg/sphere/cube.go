package sphere

import (
	"iter"
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"surface-grid/pkg/surface"
)

// CubePoint identifies a cell on a CubeGrid: a face and a local
// position on that face's size x size square.
type CubePoint struct {
	Face Face
	X, Y int

	size int
}

var _ = assertSpherePoint[CubePoint]

// step moves dx cells along the face's u axis and dy cells along its v
// axis. A move that leaves the face crosses the seam table, the u axis
// first; a diagonal move out of a face corner therefore crosses at
// most two seams and lands on one of the faces abutting the cube
// corner.
func (p CubePoint) step(dx, dy int) CubePoint {
	f, x, y, s := p.Face, p.X+dx, p.Y+dy, p.size
	for x < 0 || x >= s || y < 0 || y >= s {
		switch {
		case x < 0:
			f, x, y = crossSeam(f, edgeNegU, y, s)
		case x >= s:
			f, x, y = crossSeam(f, edgePosU, y, s)
		case y < 0:
			f, x, y = crossSeam(f, edgeNegV, x, s)
		default:
			f, x, y = crossSeam(f, edgePosV, x, s)
		}
	}
	return CubePoint{Face: f, X: x, Y: y, size: s}
}

// Up moves one cell towards decreasing y.
func (p CubePoint) Up() CubePoint { return p.step(0, -1) }

// Down moves one cell towards increasing y.
func (p CubePoint) Down() CubePoint { return p.step(0, 1) }

// Left moves one cell towards decreasing x.
func (p CubePoint) Left() CubePoint { return p.step(-1, 0) }

// Right moves one cell towards increasing x.
func (p CubePoint) Right() CubePoint { return p.step(1, 0) }

func (p CubePoint) UpLeft() CubePoint    { return p.step(-1, -1) }
func (p CubePoint) UpRight() CubePoint   { return p.step(1, -1) }
func (p CubePoint) DownLeft() CubePoint  { return p.step(-1, 1) }
func (p CubePoint) DownRight() CubePoint { return p.step(1, 1) }

// cube returns the cell centre on the cube surface, with in-plane
// coordinates in (-1, 1) and the outward coordinate fixed at +/-1.
func (p CubePoint) cube() r3.Vector {
	s := float64(p.size)
	u := (2*float64(p.X)+1)/s - 1
	v := (2*float64(p.Y)+1)/s - 1
	fr := frames[p.Face]
	return fr.n.Add(fr.u.Mul(u)).Add(fr.v.Mul(v))
}

// Position returns the cell centre projected onto a sphere with the
// given radius. The whole cube-surface vector is normalized, rather
// than each axis rescaled, so corners receive no extra stretching.
func (p CubePoint) Position(scale float64) r3.Vector {
	return p.cube().Normalize().Mul(scale)
}

// LatLng returns the geographic coordinates of the projected cell
// centre.
func (p CubePoint) LatLng() s2.LatLng {
	c := p.cube()
	return s2.LatLngFromPoint(s2.PointFromCoords(c.X, c.Y, c.Z))
}

// CubeGrid wraps a cube around a sphere: six independent size x size
// faces glued at their edges by the seam table, normalized onto the
// enclosing sphere. Size is the side length of one face, so the grid
// holds 6*size*size cells.
type CubeGrid[T any] struct {
	size  int
	cells []T // face-major, then row-major within a face
}

var _ surface.SphereGrid[int, CubePoint] = (*CubeGrid[int])(nil)

// NewCubeGrid builds a grid by evaluating f exactly once per point.
// A non-positive size fails with ErrDimensionMismatch.
func NewCubeGrid[T any](size int, f func(CubePoint) T) (*CubeGrid[T], error) {
	g, err := emptyCubeGrid[T](size)
	if err != nil {
		return nil, err
	}
	g.SetFromFn(f)
	return g, nil
}

// NewCubeGridPar is NewCubeGrid with f evaluated on the worker pool.
func NewCubeGridPar[T any](size int, f func(CubePoint) T) (*CubeGrid[T], error) {
	g, err := emptyCubeGrid[T](size)
	if err != nil {
		return nil, err
	}
	g.SetFromFnPar(f)
	return g, nil
}

func emptyCubeGrid[T any](size int) (*CubeGrid[T], error) {
	if size <= 0 {
		return nil, errors.Wrapf(surface.ErrDimensionMismatch, "cube grid face size %d", size)
	}
	return &CubeGrid[T]{size: size, cells: make([]T, numFaces*size*size)}, nil
}

// Size returns the side length of one face.
func (g *CubeGrid[T]) Size() int { return g.size }

// Len returns the total number of cells across all six faces.
func (g *CubeGrid[T]) Len() int { return len(g.cells) }

// At returns the point at position (x, y) on the given face.
func (g *CubeGrid[T]) At(f Face, x, y int) (CubePoint, error) {
	if f >= numFaces || x < 0 || x >= g.size || y < 0 || y >= g.size {
		return CubePoint{}, errors.Wrapf(surface.ErrInvalidCoordinate, "(%v, %d, %d) outside cube grid of face size %d", f, x, y, g.size)
	}
	return CubePoint{Face: f, X: x, Y: y, size: g.size}, nil
}

func (g *CubeGrid[T]) index(p CubePoint) (int, error) {
	if p.size != g.size || p.Face >= numFaces || p.X < 0 || p.X >= g.size || p.Y < 0 || p.Y >= g.size {
		return 0, errors.Wrapf(surface.ErrInvalidCoordinate, "point (%v, %d, %d) does not address a cube grid of face size %d", p.Face, p.X, p.Y, g.size)
	}
	return (int(p.Face)*g.size+p.Y)*g.size + p.X, nil
}

// Get returns the value stored at p.
func (g *CubeGrid[T]) Get(p CubePoint) (T, error) {
	i, err := g.index(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return g.cells[i], nil
}

// Set stores v at p.
func (g *CubeGrid[T]) Set(p CubePoint, v T) error {
	i, err := g.index(p)
	if err != nil {
		return err
	}
	g.cells[i] = v
	return nil
}

// SetFromFn evaluates f once per point and stores the result.
func (g *CubeGrid[T]) SetFromFn(f func(CubePoint) T) {
	g.fillRows(0, numFaces*g.size, f)
}

// SetFromFnPar evaluates f once per point across the worker pool.
// Work is partitioned by face row, so each worker owns a disjoint
// slice of cells.
func (g *CubeGrid[T]) SetFromFnPar(f func(CubePoint) T) {
	surface.ParallelFor(numFaces*g.size, func(lo, hi int) { g.fillRows(lo, hi, f) })
}

// fillRows fills global rows [lo, hi); row r is row r%size of face
// r/size.
func (g *CubeGrid[T]) fillRows(lo, hi int, f func(CubePoint) T) {
	for r := lo; r < hi; r++ {
		face, y := Face(r/g.size), r%g.size
		for x := 0; x < g.size; x++ {
			g.cells[r*g.size+x] = f(CubePoint{Face: face, X: x, Y: y, size: g.size})
		}
	}
}

// All yields every (point, value) pair, face by face.
func (g *CubeGrid[T]) All() iter.Seq2[CubePoint, T] {
	return func(yield func(CubePoint, T) bool) {
		for r := 0; r < numFaces*g.size; r++ {
			face, y := Face(r/g.size), r%g.size
			for x := 0; x < g.size; x++ {
				if !yield(CubePoint{Face: face, X: x, Y: y, size: g.size}, g.cells[r*g.size+x]) {
					return
				}
			}
		}
	}
}

// Points yields every point, face by face.
func (g *CubeGrid[T]) Points() iter.Seq[CubePoint] {
	return func(yield func(CubePoint) bool) {
		for r := 0; r < numFaces*g.size; r++ {
			face, y := Face(r/g.size), r%g.size
			for x := 0; x < g.size; x++ {
				if !yield(CubePoint{Face: face, X: x, Y: y, size: g.size}) {
					return
				}
			}
		}
	}
}

// RangePar calls f once per cell from the worker pool.
func (g *CubeGrid[T]) RangePar(f func(CubePoint, T)) {
	surface.ParallelFor(numFaces*g.size, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			face, y := Face(r/g.size), r%g.size
			for x := 0; x < g.size; x++ {
				f(CubePoint{Face: face, X: x, Y: y, size: g.size}, g.cells[r*g.size+x])
			}
		}
	})
}

// Clone returns a deep copy of the grid.
func (g *CubeGrid[T]) Clone() surface.Grid[T, CubePoint] {
	return &CubeGrid[T]{size: g.size, cells: slices.Clone(g.cells)}
}

// FromGeographic returns the point whose cell covers the given
// location: the face is the one whose outward axis carries the
// largest-magnitude component of the direction vector, and the other
// two components divide through it onto the face square.
func (g *CubeGrid[T]) FromGeographic(ll s2.LatLng) (CubePoint, error) {
	if err := checkGeographic(ll); err != nil {
		return CubePoint{}, err
	}
	d := s2.PointFromLatLng(ll).Vector

	f := dominantFace(d)
	fr := frames[f]
	depth := d.Dot(fr.n)
	u := d.Dot(fr.u) / depth
	v := d.Dot(fr.v) / depth

	return CubePoint{Face: f, X: cellIndex(u, g.size), Y: cellIndex(v, g.size), size: g.size}, nil
}

// dominantFace selects the face whose outward axis has the greatest
// absolute component of d. Exact ties break in X, Y, Z order.
func dominantFace(d r3.Vector) Face {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	switch {
	case ax >= ay && ax >= az:
		if d.X >= 0 {
			return FacePosX
		}
		return FaceNegX
	case ay >= az:
		if d.Y >= 0 {
			return FacePosY
		}
		return FaceNegY
	default:
		if d.Z >= 0 {
			return FacePosZ
		}
		return FaceNegZ
	}
}

// cellIndex rescales an in-plane coordinate in [-1, 1] to a cell
// index, clamping for floating point rounding at the face edges.
func cellIndex(u float64, size int) int {
	i := int(math.Floor((u + 1) / 2 * float64(size)))
	return max(0, min(i, size-1))
}
