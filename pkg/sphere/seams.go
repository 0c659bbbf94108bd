package sphere

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Face identifies one of the six cube faces by its outward axis.
type Face uint8

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ

	numFaces = 6
)

func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

// frame fixes a face's local coordinate system: n is the outward
// normal, u the axis of increasing x and v the axis of increasing y.
// Every frame satisfies n = u x v, and all components are exactly 0 or
// +/-1, so the seam derivation below uses exact arithmetic.
type frame struct {
	n, u, v r3.Vector
}

var frames = [numFaces]frame{
	FacePosX: {n: r3.Vector{X: 1}, u: r3.Vector{Y: 1}, v: r3.Vector{Z: 1}},
	FaceNegX: {n: r3.Vector{X: -1}, u: r3.Vector{Z: 1}, v: r3.Vector{Y: 1}},
	FacePosY: {n: r3.Vector{Y: 1}, u: r3.Vector{Z: 1}, v: r3.Vector{X: 1}},
	FaceNegY: {n: r3.Vector{Y: -1}, u: r3.Vector{X: 1}, v: r3.Vector{Z: 1}},
	FacePosZ: {n: r3.Vector{Z: 1}, u: r3.Vector{X: 1}, v: r3.Vector{Y: 1}},
	FaceNegZ: {n: r3.Vector{Z: -1}, u: r3.Vector{Y: 1}, v: r3.Vector{X: 1}},
}

// edge identifies one side of a face in its local frame.
type edge uint8

const (
	edgePosU edge = iota // x = size-1
	edgeNegU             // x = 0
	edgePosV             // y = size-1
	edgeNegV             // y = 0

	numEdges = 4
)

// seam describes what lies across one edge of one face: the neighbour
// face, the edge of that face the crossing arrives on, and whether the
// along-edge index runs in the opposite direction there.
type seam struct {
	face Face
	edge edge
	flip bool
}

// seamTable is the fixed face adjacency lookup. It is derived once
// from the face frames: crossing an edge leads to the face whose
// outward normal is the edge's outward direction; on that face the
// shared edge is the one whose axis carries the original face's
// normal; and the along-edge index flips exactly when the two
// along-edge axes point opposite ways. All dot products involved are
// between exact +/-1-component vectors.
var seamTable [numFaces][numEdges]seam

func init() {
	for f := range Face(numFaces) {
		fr := frames[f]
		for e := range edge(numEdges) {
			var out, along r3.Vector
			switch e {
			case edgePosU:
				out, along = fr.u, fr.v
			case edgeNegU:
				out, along = fr.u.Mul(-1), fr.v
			case edgePosV:
				out, along = fr.v, fr.u
			case edgeNegV:
				out, along = fr.v.Mul(-1), fr.u
			}

			to := faceWithNormal(out)
			tr := frames[to]

			var arrival edge
			var arrivalAlong r3.Vector
			switch {
			case tr.u == fr.n:
				arrival, arrivalAlong = edgePosU, tr.v
			case tr.u == fr.n.Mul(-1):
				arrival, arrivalAlong = edgeNegU, tr.v
			case tr.v == fr.n:
				arrival, arrivalAlong = edgePosV, tr.u
			default:
				arrival, arrivalAlong = edgeNegV, tr.u
			}

			seamTable[f][e] = seam{
				face: to,
				edge: arrival,
				flip: along.Dot(arrivalAlong) < 0,
			}
		}
	}
}

func faceWithNormal(n r3.Vector) Face {
	for f := range Face(numFaces) {
		if frames[f].n == n {
			return f
		}
	}
	panic("sphere: no face with normal " + n.String())
}

// crossSeam translates a coordinate across one seam. along is the
// index measured along the departed edge; it may itself be out of
// range when a diagonal move leaves the face on both axes, in which
// case the returned coordinates are out of range on the arrival face
// by the same amount and a second crossing resolves them.
func crossSeam(f Face, e edge, along, size int) (Face, int, int) {
	sm := seamTable[f][e]
	if sm.flip {
		along = size - 1 - along
	}
	switch sm.edge {
	case edgePosU:
		return sm.face, size - 1, along
	case edgeNegU:
		return sm.face, 0, along
	case edgePosV:
		return sm.face, along, size - 1
	default:
		return sm.face, along, 0
	}
}
