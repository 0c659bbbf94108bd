package surface_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"surface-grid/pkg/sphere"
	"surface-grid/pkg/surface"
)

func numberGrid(t *testing.T, w, h int) *sphere.RectangleGrid[int] {
	t.Helper()
	g, err := sphere.NewRectangleGrid(w, h, func(p sphere.RectanglePoint) int { return p.X })
	if err != nil {
		t.Fatalf("NewRectangleGrid(%d, %d): %v", w, h, err)
	}
	return g
}

func collect[T any, P surface.Point[P]](g surface.Grid[T, P]) map[P]T {
	out := make(map[P]T, g.Len())
	for p, v := range g.All() {
		out[p] = v
	}
	return out
}

func sum(current int, neighbours []int) int {
	s := current
	for _, v := range neighbours {
		s += v
	}
	return s
}

func TestMapNeighboursSums(t *testing.T) {
	g := numberGrid(t, 20, 10)
	p, err := g.At(5, 3)
	if err != nil {
		t.Fatalf("At(5, 3): %v", err)
	}

	out := collect(surface.MapNeighbours(g, sum))
	// 5 + (5 above) + (5 below) + (4 left) + (6 right).
	if out[p] != 25 {
		t.Fatalf("edge-neighbour sum at (5,3) = %d, want 25", out[p])
	}

	out = collect(surface.MapNeighboursDiagonals(g, sum))
	// The four corners add 4+6+4+6 on top of the edge sum.
	if out[p] != 45 {
		t.Fatalf("8-neighbour sum at (5,3) = %d, want 45", out[p])
	}
}

func TestMapIdentity(t *testing.T) {
	g := numberGrid(t, 8, 4)
	out := surface.MapNeighbours(g, func(current int, neighbours []int) int { return current })
	if diff := cmp.Diff(collect[int, sphere.RectanglePoint](g), collect(out)); diff != "" {
		t.Fatalf("identity transform changed the grid (-in +out):\n%s", diff)
	}
}

func TestMapLeavesSourceUntouched(t *testing.T) {
	g := numberGrid(t, 8, 4)
	surface.MapNeighbours(g, sum)
	for p, v := range g.All() {
		if v != p.X {
			t.Fatalf("source cell %v changed to %d", p, v)
		}
	}
}

func TestSequentialAndParallelAgree(t *testing.T) {
	newGrid := func() *sphere.RectangleGrid[int] {
		g, err := sphere.NewRectangleGrid(16, 9, func(p sphere.RectanglePoint) int { return 31*p.X + 17*p.Y })
		if err != nil {
			t.Fatalf("NewRectangleGrid: %v", err)
		}
		return g
	}
	g := newGrid()

	upDown := func(p sphere.RectanglePoint, n surface.Neighbourhood[int]) int {
		return n.Up - n.Down + n.Current
	}
	corners := func(p sphere.RectanglePoint, n surface.Neighbourhood8[int]) int {
		return n.UpLeft + n.UpRight + n.DownLeft + n.DownRight
	}

	if diff := cmp.Diff(collect(surface.MapNeighbours(g, sum)), collect(surface.MapNeighboursPar(g, sum))); diff != "" {
		t.Fatalf("MapNeighbours seq/par mismatch (-seq +par):\n%s", diff)
	}
	if diff := cmp.Diff(collect(surface.MapNeighboursDiagonals(g, sum)), collect(surface.MapNeighboursDiagonalsPar(g, sum))); diff != "" {
		t.Fatalf("MapNeighboursDiagonals seq/par mismatch (-seq +par):\n%s", diff)
	}
	if diff := cmp.Diff(collect(surface.MapNeighboursWithPosition(g, upDown)), collect(surface.MapNeighboursWithPositionPar(g, upDown))); diff != "" {
		t.Fatalf("MapNeighboursWithPosition seq/par mismatch (-seq +par):\n%s", diff)
	}
	if diff := cmp.Diff(collect(surface.MapNeighboursDiagonalsWithPosition(g, corners)), collect(surface.MapNeighboursDiagonalsWithPositionPar(g, corners))); diff != "" {
		t.Fatalf("MapNeighboursDiagonalsWithPosition seq/par mismatch (-seq +par):\n%s", diff)
	}

	seq, par := newGrid(), newGrid()
	surface.UpdateNeighbours(seq, sum)
	surface.UpdateNeighboursPar(par, sum)
	if diff := cmp.Diff(collect[int, sphere.RectanglePoint](seq), collect[int, sphere.RectanglePoint](par)); diff != "" {
		t.Fatalf("UpdateNeighbours seq/par mismatch (-seq +par):\n%s", diff)
	}

	seq, par = newGrid(), newGrid()
	surface.ForEachPar(par, func(v int) int { return v * 2 })
	surface.ForEach(seq, func(v int) int { return v * 2 })
	if diff := cmp.Diff(collect[int, sphere.RectanglePoint](seq), collect[int, sphere.RectanglePoint](par)); diff != "" {
		t.Fatalf("ForEach seq/par mismatch (-seq +par):\n%s", diff)
	}
}

func TestUpdateMatchesMap(t *testing.T) {
	g := numberGrid(t, 12, 6)
	want := collect(surface.MapNeighboursDiagonals(g, sum))

	surface.UpdateNeighboursDiagonals(g, sum)
	if diff := cmp.Diff(want, collect[int, sphere.RectanglePoint](g)); diff != "" {
		t.Fatalf("in-place update differs from map (-map +update):\n%s", diff)
	}
}

func TestSetFromNeighboursAcrossTypes(t *testing.T) {
	src, err := sphere.NewRectangleGrid(6, 4, func(p sphere.RectanglePoint) uint8 { return uint8(p.Y) })
	if err != nil {
		t.Fatalf("NewRectangleGrid: %v", err)
	}
	dst := numberGrid(t, 6, 4)

	err = surface.SetFromNeighbours(dst, src, func(current uint8, neighbours []uint8) int {
		s := int(current)
		for _, v := range neighbours {
			s += int(v)
		}
		return s
	})
	if err != nil {
		t.Fatalf("SetFromNeighbours: %v", err)
	}

	p, err := dst.At(2, 2)
	if err != nil {
		t.Fatalf("At(2, 2): %v", err)
	}
	got, err := dst.Get(p)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// 2 + (1 above) + (3 below) + (2 left) + (2 right).
	if got != 10 {
		t.Fatalf("value at (2,2) = %d, want 10", got)
	}
}

func TestSetFromNeighboursShapeMismatch(t *testing.T) {
	src := numberGrid(t, 4, 4)

	cases := []struct {
		name string
		w, h int
	}{
		{name: "different length", w: 6, h: 4},
		{name: "same length different shape", w: 8, h: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dst, err := sphere.NewRectangleGrid(tc.w, tc.h, func(sphere.RectanglePoint) int { return 9 })
			if err != nil {
				t.Fatalf("NewRectangleGrid: %v", err)
			}
			err = surface.SetFromNeighbours(dst, src, sum)
			if !errors.Is(err, surface.ErrDimensionMismatch) {
				t.Fatalf("error = %v, want ErrDimensionMismatch", err)
			}
			for p, v := range dst.All() {
				if v != 9 {
					t.Fatalf("destination cell %v written to %d despite mismatch", p, v)
				}
			}
		})
	}
}

func TestWithPositionIsDirectional(t *testing.T) {
	g, err := sphere.NewRectangleGrid(6, 4, func(p sphere.RectanglePoint) int { return p.Y })
	if err != nil {
		t.Fatalf("NewRectangleGrid: %v", err)
	}
	out := collect(surface.MapNeighboursWithPosition(g, func(p sphere.RectanglePoint, n surface.Neighbourhood[int]) int {
		return n.Up
	}))

	p, err := g.At(2, 2)
	if err != nil {
		t.Fatalf("At(2, 2): %v", err)
	}
	if out[p] != 1 {
		t.Fatalf("Up value at (2,2) = %d, want 1", out[p])
	}
}

func TestForEachWithPosition(t *testing.T) {
	g := numberGrid(t, 6, 4)
	surface.ForEachWithPosition(g, func(p sphere.RectanglePoint, v int) int { return v + 100*p.Y })
	for p, v := range g.All() {
		if v != p.X+100*p.Y {
			t.Fatalf("cell %v = %d, want %d", p, v, p.X+100*p.Y)
		}
	}
}
