package surface

import "slices"

// Neighbourhood carries the values of a cell and its four
// edge-adjacent neighbours by relative position.
type Neighbourhood[T any] struct {
	Current T
	Up      T
	Down    T
	Left    T
	Right   T
}

// Neighbourhood8 carries the values of a cell and its eight
// edge- and corner-adjacent neighbours by relative position. Where the
// topology degenerates (poles, cube corners) several positions may
// refer to the same physical cell.
type Neighbourhood8[T any] struct {
	Current   T
	Up        T
	Down      T
	Left      T
	Right     T
	UpLeft    T
	UpRight   T
	DownLeft  T
	DownRight T
}

// Neighbours returns the set of cells sharing an edge with p. The set
// is deduplicated, never contains p itself, and is symmetric: q is in
// Neighbours(p) exactly when p is in Neighbours(q).
func Neighbours[P Point[P]](p P) []P {
	return dedup(p, []P{p.Up(), p.Down(), p.Left(), p.Right()})
}

// NeighboursDiagonals returns the set of cells sharing an edge or a
// corner with p. At a cube corner only three faces meet, so the
// across-corner position collapses onto an existing neighbour and the
// set shrinks accordingly.
func NeighboursDiagonals[P Point[P]](p P) []P {
	return dedup(p, []P{
		p.Up(), p.Down(), p.Left(), p.Right(),
		p.UpLeft(), p.UpRight(), p.DownLeft(), p.DownRight(),
	})
}

func dedup[P Point[P]](p P, candidates []P) []P {
	out := make([]P, 0, len(candidates))
	for _, q := range candidates {
		if q != p && !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out
}
