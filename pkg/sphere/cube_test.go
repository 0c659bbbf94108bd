package sphere

import (
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surface-grid/pkg/surface"
)

func cubePoint(t *testing.T, g *CubeGrid[int], f Face, x, y int) CubePoint {
	t.Helper()
	p, err := g.At(f, x, y)
	require.NoError(t, err)
	return p
}

func intCube(t *testing.T, size int) *CubeGrid[int] {
	t.Helper()
	g, err := NewCubeGrid(size, func(CubePoint) int { return 0 })
	require.NoError(t, err)
	return g
}

// opposite returns the face on the far side of the cube.
func opposite(f Face) Face { return f ^ 1 }

func TestSeamTableRoundTrip(t *testing.T) {
	for f := range Face(numFaces) {
		for e := range edge(numEdges) {
			sm := seamTable[f][e]
			back := seamTable[sm.face][sm.edge]
			assert.Equal(t, seam{face: f, edge: e, flip: sm.flip}, back, "seam %v/%d", f, e)
		}
	}
}

func TestSeamTableNeighbourFaces(t *testing.T) {
	for f := range Face(numFaces) {
		seen := map[Face]bool{}
		for e := range edge(numEdges) {
			to := seamTable[f][e].face
			assert.NotEqual(t, f, to, "face %v borders itself", f)
			assert.NotEqual(t, opposite(f), to, "face %v borders its opposite", f)
			assert.False(t, seen[to], "face %v borders %v twice", f, to)
			seen[to] = true
		}
	}
}

func TestCrossSeamIsInjective(t *testing.T) {
	const size = 5
	for f := range Face(numFaces) {
		for e := range edge(numEdges) {
			seen := map[[3]int]bool{}
			for along := 0; along < size; along++ {
				to, x, y := crossSeam(f, e, along, size)
				require.GreaterOrEqual(t, x, 0)
				require.Less(t, x, size)
				require.GreaterOrEqual(t, y, 0)
				require.Less(t, y, size)
				key := [3]int{int(to), x, y}
				require.False(t, seen[key], "seam %v/%d maps two cells onto %v", f, e, key)
				seen[key] = true
			}
		}
	}
}

func TestCrossSeamOutAndBack(t *testing.T) {
	const size = 4

	// boundary returns the cell an outward crossing through e departs
	// from.
	boundary := func(e edge, along int) (int, int) {
		switch e {
		case edgePosU:
			return size - 1, along
		case edgeNegU:
			return 0, along
		case edgePosV:
			return along, size - 1
		default:
			return along, 0
		}
	}

	for f := range Face(numFaces) {
		for e := range edge(numEdges) {
			sm := seamTable[f][e]
			for along := 0; along < size; along++ {
				to, x, y := crossSeam(f, e, along, size)

				arrivalAlong := y
				if sm.edge == edgePosV || sm.edge == edgeNegV {
					arrivalAlong = x
				}
				backFace, bx, by := crossSeam(to, sm.edge, arrivalAlong, size)

				wantX, wantY := boundary(e, along)
				require.Equal(t, f, backFace, "seam %v/%d along %d", f, e, along)
				require.Equal(t, wantX, bx, "seam %v/%d along %d", f, e, along)
				require.Equal(t, wantY, by, "seam %v/%d along %d", f, e, along)
			}
		}
	}
}

func TestCubeDirectionsWithinFace(t *testing.T) {
	g := intCube(t, 4)
	p := cubePoint(t, g, FacePosX, 1, 1)

	assert.Equal(t, cubePoint(t, g, FacePosX, 1, 0), p.Up())
	assert.Equal(t, cubePoint(t, g, FacePosX, 1, 2), p.Down())
	assert.Equal(t, cubePoint(t, g, FacePosX, 0, 1), p.Left())
	assert.Equal(t, cubePoint(t, g, FacePosX, 2, 1), p.Right())
	assert.Equal(t, cubePoint(t, g, FacePosX, 0, 0), p.UpLeft())
	assert.Equal(t, cubePoint(t, g, FacePosX, 2, 0), p.UpRight())
	assert.Equal(t, cubePoint(t, g, FacePosX, 0, 2), p.DownLeft())
	assert.Equal(t, cubePoint(t, g, FacePosX, 2, 2), p.DownRight())
}

func TestCubeSeamCrossings(t *testing.T) {
	g := intCube(t, 2)
	p := cubePoint(t, g, FacePosZ, 0, 0)

	assert.Equal(t, cubePoint(t, g, FaceNegX, 1, 0), p.Left())
	assert.Equal(t, cubePoint(t, g, FaceNegY, 0, 1), p.Up())
	assert.Equal(t, cubePoint(t, g, FacePosZ, 1, 0), p.Right())
	assert.Equal(t, cubePoint(t, g, FacePosZ, 0, 1), p.Down())

	// Every move lands on an addressable cell and never stays put,
	// even on the smallest grid where all cells are corners.
	for q := range g.Points() {
		moves := []CubePoint{
			q.Up(), q.Down(), q.Left(), q.Right(),
			q.UpLeft(), q.UpRight(), q.DownLeft(), q.DownRight(),
		}
		for _, r := range moves {
			_, err := g.Get(r)
			require.NoError(t, err, "move from %v to %v", q, r)
			require.NotEqual(t, q, r, "move from %v stayed put", q)
		}
	}
}

func TestCubeCornerNeighbourhood(t *testing.T) {
	g := intCube(t, 2)
	p := cubePoint(t, g, FacePosZ, 0, 0)

	// Only three faces meet at a cube corner, so the across-corner
	// diagonal collapses onto a cell already present.
	assert.Len(t, surface.Neighbours(p), 4)
	assert.Len(t, surface.NeighboursDiagonals(p), 7)

	big := intCube(t, 4)
	corner := cubePoint(t, big, FacePosY, 3, 3)
	assert.Len(t, surface.Neighbours(corner), 4)
	assert.Len(t, surface.NeighboursDiagonals(corner), 7)

	interior := cubePoint(t, big, FacePosY, 1, 2)
	assert.Len(t, surface.NeighboursDiagonals(interior), 8)
}

func TestCubeNeighbourSymmetry(t *testing.T) {
	g := intCube(t, 4)
	for p := range g.Points() {
		for _, q := range surface.Neighbours(p) {
			require.True(t, slices.Contains(surface.Neighbours(q), p), "%v neighbours %v but not vice versa", p, q)
		}
		for _, q := range surface.NeighboursDiagonals(p) {
			require.True(t, slices.Contains(surface.NeighboursDiagonals(q), p), "%v touches %v but not vice versa", p, q)
		}
	}
}

func TestCubeRoundTrip(t *testing.T) {
	g := intCube(t, 8)

	// Cell centres sit well inside their cells, so the round trip is
	// exact.
	for p := range g.Points() {
		q, err := g.FromGeographic(p.LatLng())
		require.NoError(t, err)
		require.Equal(t, p, q)
	}
}

func TestCubePositionOnSphere(t *testing.T) {
	g := intCube(t, 8)
	for p := range g.Points() {
		assert.InDelta(t, 2, p.Position(2).Norm(), 1e-9, "radius at %v", p)
	}
}

func TestCubeNeighbourContinuity(t *testing.T) {
	const size = 16
	g := intCube(t, size)

	// Adjacent cell centres stay close on the sphere, across seams
	// included.
	const bound = 6.0 / size
	for p := range g.Points() {
		at := p.Position(1)
		for _, q := range surface.NeighboursDiagonals(p) {
			d := at.Sub(q.Position(1)).Norm()
			require.Less(t, d, bound, "gap between %v and %v", p, q)
		}
	}
}

func TestCubeFromGeographicFaces(t *testing.T) {
	g := intCube(t, 4)
	cases := []struct {
		lat, lng float64
		want     Face
	}{
		{lat: 0, lng: 0, want: FacePosX},
		{lat: 0, lng: math.Pi / 2, want: FacePosY},
		{lat: 0, lng: math.Pi, want: FaceNegX},
		{lat: 0, lng: -math.Pi / 2, want: FaceNegY},
		{lat: math.Pi / 2, lng: 0, want: FacePosZ},
		{lat: -math.Pi / 2, lng: 0, want: FaceNegZ},
	}
	for _, tc := range cases {
		p, err := g.FromGeographic(s2.LatLng{Lat: s1.Angle(tc.lat), Lng: s1.Angle(tc.lng)})
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.Face, "lat %v lng %v", tc.lat, tc.lng)
	}
}

func TestCubeDimensionErrors(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewCubeGrid(size, func(CubePoint) int { return 0 })
		require.ErrorIs(t, err, surface.ErrDimensionMismatch, "size %d", size)
	}
}

func TestCubeCoordinateErrors(t *testing.T) {
	g := intCube(t, 4)

	_, err := g.At(Face(6), 0, 0)
	require.ErrorIs(t, err, surface.ErrInvalidCoordinate)
	_, err = g.At(FacePosX, -1, 0)
	require.ErrorIs(t, err, surface.ErrInvalidCoordinate)
	_, err = g.At(FacePosX, 0, 4)
	require.ErrorIs(t, err, surface.ErrInvalidCoordinate)

	foreign := cubePoint(t, intCube(t, 8), FacePosX, 1, 1)
	_, err = g.Get(foreign)
	require.ErrorIs(t, err, surface.ErrInvalidCoordinate)
	require.ErrorIs(t, g.Set(foreign, 1), surface.ErrInvalidCoordinate)
}

func TestCubeConversionErrors(t *testing.T) {
	g := intCube(t, 4)
	_, err := g.FromGeographic(s2.LatLng{Lat: s1.Angle(4), Lng: 0})
	require.ErrorIs(t, err, surface.ErrConversionOutOfRange)
	_, err = g.FromGeographic(s2.LatLng{Lat: s1.Angle(math.NaN()), Lng: 0})
	require.ErrorIs(t, err, surface.ErrConversionOutOfRange)
}

func TestCubeFillMatchesParallelFill(t *testing.T) {
	f := func(p CubePoint) int { return int(p.Face)*100 + p.Y*10 + p.X }
	seq, err := NewCubeGrid(8, f)
	require.NoError(t, err)
	par, err := NewCubeGridPar(8, f)
	require.NoError(t, err)

	for p, v := range seq.All() {
		pv, err := par.Get(p)
		require.NoError(t, err)
		require.Equal(t, v, pv, "cell %v", p)
	}
}

func TestFaceString(t *testing.T) {
	assert.Equal(t, "+X", FacePosX.String())
	assert.Equal(t, "-Z", FaceNegZ.String())
	assert.Equal(t, "Face(9)", Face(9).String())
}
