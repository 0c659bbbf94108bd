package surface

import "github.com/pkg/errors"

// The bulk transforms come in families: Map* builds a new grid from an
// old one, SetFrom* writes into a destination grid from a separate
// source (the double-buffer form), Update* rewrites a grid in place
// from a snapshot taken before the call. Every family has a diagonal,
// a position-aware and a parallel variant; for a pure combining
// function the sequential and parallel variants produce identical
// grids, because each cell is computed independently from the old
// values only.

// MapNeighbours returns a new grid where every cell combines its old
// value with the values of its edge-adjacent neighbours.
func MapNeighbours[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) Grid[T, P] {
	return mapGrid(g, false, func(p P) T { return f(cell(g, p), cells(g, Neighbours(p))) })
}

// MapNeighboursPar is MapNeighbours on the worker pool.
func MapNeighboursPar[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) Grid[T, P] {
	return mapGrid(g, true, func(p P) T { return f(cell(g, p), cells(g, Neighbours(p))) })
}

// MapNeighboursDiagonals is MapNeighbours over the 8-connected set.
func MapNeighboursDiagonals[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) Grid[T, P] {
	return mapGrid(g, false, func(p P) T { return f(cell(g, p), cells(g, NeighboursDiagonals(p))) })
}

// MapNeighboursDiagonalsPar is MapNeighboursDiagonals on the worker pool.
func MapNeighboursDiagonalsPar[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) Grid[T, P] {
	return mapGrid(g, true, func(p P) T { return f(cell(g, p), cells(g, NeighboursDiagonals(p))) })
}

// MapNeighboursWithPosition is MapNeighbours with the neighbour values
// labelled by relative position, for direction-dependent rules.
func MapNeighboursWithPosition[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood[T]) T) Grid[T, P] {
	return mapGrid(g, false, func(p P) T { return f(p, hood(g, p)) })
}

// MapNeighboursWithPositionPar is MapNeighboursWithPosition on the worker pool.
func MapNeighboursWithPositionPar[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood[T]) T) Grid[T, P] {
	return mapGrid(g, true, func(p P) T { return f(p, hood(g, p)) })
}

// MapNeighboursDiagonalsWithPosition is the labelled 8-connected map.
func MapNeighboursDiagonalsWithPosition[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood8[T]) T) Grid[T, P] {
	return mapGrid(g, false, func(p P) T { return f(p, hood8(g, p)) })
}

// MapNeighboursDiagonalsWithPositionPar is MapNeighboursDiagonalsWithPosition on the worker pool.
func MapNeighboursDiagonalsWithPositionPar[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood8[T]) T) Grid[T, P] {
	return mapGrid(g, true, func(p P) T { return f(p, hood8(g, p)) })
}

// SetFromNeighbours overwrites every cell of dst by combining the
// corresponding cell of src with its neighbours in src. It fails with
// ErrDimensionMismatch, before any write, when the grids do not share
// a coordinate space. dst and src must be distinct grids; use
// UpdateNeighbours for the in-place form.
func SetFromNeighbours[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(current U, neighbours []U) T) error {
	return setGrid(dst, src, false, func(p P) T { return f(cell(src, p), cells(src, Neighbours(p))) })
}

// SetFromNeighboursPar is SetFromNeighbours on the worker pool.
func SetFromNeighboursPar[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(current U, neighbours []U) T) error {
	return setGrid(dst, src, true, func(p P) T { return f(cell(src, p), cells(src, Neighbours(p))) })
}

// SetFromNeighboursDiagonals is SetFromNeighbours over the 8-connected set.
func SetFromNeighboursDiagonals[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(current U, neighbours []U) T) error {
	return setGrid(dst, src, false, func(p P) T { return f(cell(src, p), cells(src, NeighboursDiagonals(p))) })
}

// SetFromNeighboursDiagonalsPar is SetFromNeighboursDiagonals on the worker pool.
func SetFromNeighboursDiagonalsPar[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(current U, neighbours []U) T) error {
	return setGrid(dst, src, true, func(p P) T { return f(cell(src, p), cells(src, NeighboursDiagonals(p))) })
}

// SetFromNeighboursWithPosition is the labelled double-buffer form.
func SetFromNeighboursWithPosition[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(p P, n Neighbourhood[U]) T) error {
	return setGrid(dst, src, false, func(p P) T { return f(p, hood(src, p)) })
}

// SetFromNeighboursWithPositionPar is SetFromNeighboursWithPosition on the worker pool.
func SetFromNeighboursWithPositionPar[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(p P, n Neighbourhood[U]) T) error {
	return setGrid(dst, src, true, func(p P) T { return f(p, hood(src, p)) })
}

// SetFromNeighboursDiagonalsWithPosition is the labelled 8-connected
// double-buffer form.
func SetFromNeighboursDiagonalsWithPosition[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(p P, n Neighbourhood8[U]) T) error {
	return setGrid(dst, src, false, func(p P) T { return f(p, hood8(src, p)) })
}

// SetFromNeighboursDiagonalsWithPositionPar is SetFromNeighboursDiagonalsWithPosition on the worker pool.
func SetFromNeighboursDiagonalsWithPositionPar[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], f func(p P, n Neighbourhood8[U]) T) error {
	return setGrid(dst, src, true, func(p P) T { return f(p, hood8(src, p)) })
}

// UpdateNeighbours rewrites g in place. Every cell reads only from a
// snapshot of the grid taken before the call, so the result does not
// depend on visitation order.
func UpdateNeighbours[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) {
	snap := g.Clone()
	g.SetFromFn(func(p P) T { return f(cell(snap, p), cells(snap, Neighbours(p))) })
}

// UpdateNeighboursPar is UpdateNeighbours on the worker pool.
func UpdateNeighboursPar[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) {
	snap := g.Clone()
	g.SetFromFnPar(func(p P) T { return f(cell(snap, p), cells(snap, Neighbours(p))) })
}

// UpdateNeighboursDiagonals is UpdateNeighbours over the 8-connected set.
func UpdateNeighboursDiagonals[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) {
	snap := g.Clone()
	g.SetFromFn(func(p P) T { return f(cell(snap, p), cells(snap, NeighboursDiagonals(p))) })
}

// UpdateNeighboursDiagonalsPar is UpdateNeighboursDiagonals on the worker pool.
func UpdateNeighboursDiagonalsPar[T any, P Point[P]](g Grid[T, P], f func(current T, neighbours []T) T) {
	snap := g.Clone()
	g.SetFromFnPar(func(p P) T { return f(cell(snap, p), cells(snap, NeighboursDiagonals(p))) })
}

// UpdateNeighboursWithPosition is the labelled in-place form.
func UpdateNeighboursWithPosition[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood[T]) T) {
	snap := g.Clone()
	g.SetFromFn(func(p P) T { return f(p, hood(snap, p)) })
}

// UpdateNeighboursWithPositionPar is UpdateNeighboursWithPosition on the worker pool.
func UpdateNeighboursWithPositionPar[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood[T]) T) {
	snap := g.Clone()
	g.SetFromFnPar(func(p P) T { return f(p, hood(snap, p)) })
}

// UpdateNeighboursDiagonalsWithPosition is the labelled 8-connected
// in-place form.
func UpdateNeighboursDiagonalsWithPosition[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood8[T]) T) {
	snap := g.Clone()
	g.SetFromFn(func(p P) T { return f(p, hood8(snap, p)) })
}

// UpdateNeighboursDiagonalsWithPositionPar is UpdateNeighboursDiagonalsWithPosition on the worker pool.
func UpdateNeighboursDiagonalsWithPositionPar[T any, P Point[P]](g Grid[T, P], f func(p P, n Neighbourhood8[T]) T) {
	snap := g.Clone()
	g.SetFromFnPar(func(p P) T { return f(p, hood8(snap, p)) })
}

// ForEach replaces every cell value with f of itself, independent of
// neighbours.
func ForEach[T any, P Point[P]](g Grid[T, P], f func(T) T) {
	g.SetFromFn(func(p P) T { return f(cell(g, p)) })
}

// ForEachPar is ForEach on the worker pool. Each cell is read and
// written only by the worker that owns it.
func ForEachPar[T any, P Point[P]](g Grid[T, P], f func(T) T) {
	g.SetFromFnPar(func(p P) T { return f(cell(g, p)) })
}

// ForEachWithPosition is ForEach with the cell's point supplied.
func ForEachWithPosition[T any, P Point[P]](g Grid[T, P], f func(P, T) T) {
	g.SetFromFn(func(p P) T { return f(p, cell(g, p)) })
}

// ForEachWithPositionPar is ForEachWithPosition on the worker pool.
func ForEachWithPositionPar[T any, P Point[P]](g Grid[T, P], f func(P, T) T) {
	g.SetFromFnPar(func(p P) T { return f(p, cell(g, p)) })
}

func mapGrid[T any, P Point[P]](g Grid[T, P], par bool, f func(P) T) Grid[T, P] {
	out := g.Clone()
	if par {
		out.SetFromFnPar(f)
	} else {
		out.SetFromFn(f)
	}
	return out
}

func setGrid[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P], par bool, f func(P) T) error {
	if err := checkShape(dst, src); err != nil {
		return err
	}
	if par {
		dst.SetFromFnPar(f)
	} else {
		dst.SetFromFn(f)
	}
	return nil
}

// checkShape verifies that dst and src share a coordinate space, so
// that a mismatch fails before any cell is written.
func checkShape[T, U any, P Point[P]](dst Grid[T, P], src Grid[U, P]) error {
	if dst.Len() != src.Len() {
		return errors.Wrapf(ErrDimensionMismatch, "destination has %d cells, source has %d", dst.Len(), src.Len())
	}
	for p := range dst.Points() {
		if _, err := src.Get(p); err != nil {
			return errors.Wrap(ErrDimensionMismatch, "source and destination do not share a coordinate space")
		}
		break
	}
	return nil
}

// cell reads a point that is valid for g by construction.
func cell[T any, P Point[P]](g Grid[T, P], p P) T {
	v, _ := g.Get(p)
	return v
}

func cells[T any, P Point[P]](g Grid[T, P], ps []P) []T {
	out := make([]T, len(ps))
	for i, p := range ps {
		out[i] = cell(g, p)
	}
	return out
}

func hood[T any, P Point[P]](g Grid[T, P], p P) Neighbourhood[T] {
	return Neighbourhood[T]{
		Current: cell(g, p),
		Up:      cell(g, p.Up()),
		Down:    cell(g, p.Down()),
		Left:    cell(g, p.Left()),
		Right:   cell(g, p.Right()),
	}
}

func hood8[T any, P Point[P]](g Grid[T, P], p P) Neighbourhood8[T] {
	return Neighbourhood8[T]{
		Current:   cell(g, p),
		Up:        cell(g, p.Up()),
		Down:      cell(g, p.Down()),
		Left:      cell(g, p.Left()),
		Right:     cell(g, p.Right()),
		UpLeft:    cell(g, p.UpLeft()),
		UpRight:   cell(g, p.UpRight()),
		DownLeft:  cell(g, p.DownLeft()),
		DownRight: cell(g, p.DownRight()),
	}
}
