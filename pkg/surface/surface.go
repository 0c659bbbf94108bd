// Package surface defines square-tiled grids wrapped around the surface
// of a 3D object. A grid variant supplies cell storage and a Point type
// that knows how to move across the topology (including wraps and
// seams); this package layers neighbour discovery, bulk transforms and
// parallel traversal on top of that contract.
package surface

import (
	"iter"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
)

// Point identifies one cell on a surface grid. Two points are equal
// exactly when they address the same physical cell.
//
// Each point is associated with a direction: moving repeatedly the same
// way on a closed surface eventually returns to the starting cell. The
// directional moves always yield a valid point of the same grid; it is
// the neighbour enumeration in this package that deduplicates the
// degenerate cases (poles, cube corners).
type Point[P any] interface {
	comparable

	Up() P
	Down() P
	Left() P
	Right() P

	UpLeft() P
	UpRight() P
	DownLeft() P
	DownRight() P

	// Position returns the location of the cell centre on the surface
	// of the 3D object with the given scale.
	Position(scale float64) r3.Vector
}

// Grid is a fixed-shape, mutable-content container holding one value of
// type T per point. Implementations own disjoint row partitions in
// their parallel methods, so no locking is needed by callers.
type Grid[T any, P Point[P]] interface {
	// Len returns the total number of cells.
	Len() int

	// Get returns the value stored at p. It fails with
	// ErrInvalidCoordinate when p does not address this grid.
	Get(p P) (T, error)

	// Set stores v at p. It fails with ErrInvalidCoordinate when p
	// does not address this grid.
	Set(p P, v T) error

	// SetFromFn evaluates f exactly once per point and stores the
	// result, in no particular order.
	SetFromFn(f func(P) T)

	// SetFromFnPar is SetFromFn distributed over the worker pool. For
	// a pure f the resulting grid is identical to SetFromFn's.
	SetFromFnPar(f func(P) T)

	// All yields every (point, value) pair exactly once.
	All() iter.Seq2[P, T]

	// Points yields every point exactly once.
	Points() iter.Seq[P]

	// RangePar calls f once per cell from the worker pool. The grid
	// must not be mutated during the call.
	RangePar(f func(P, T))

	// Clone returns a deep copy of the grid.
	Clone() Grid[T, P]
}

// SpherePoint is a Point that lies on a sphere and converts to
// geographic coordinates.
type SpherePoint[P any] interface {
	Point[P]

	// LatLng returns the geographic coordinates of the cell centre.
	LatLng() s2.LatLng
}

// SphereGrid is a Grid on a sphere that can resolve geographic
// coordinates back to points.
type SphereGrid[T any, P SpherePoint[P]] interface {
	Grid[T, P]

	// FromGeographic returns the point whose cell covers the given
	// location. It fails with ErrConversionOutOfRange when the
	// coordinates lie outside [-pi/2, pi/2] x [-pi, pi].
	FromGeographic(ll s2.LatLng) (P, error)
}
