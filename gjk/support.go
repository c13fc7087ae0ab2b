package gjk

import (
	"math"

	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a point of the Minkowski difference A - B together with the shape vertices
// that produced it.
type Vertex struct {
	Point mgl64.Vec2
	IDA   int
	IDB   int
}

// MinkowskiSupport computes a support point in the Minkowski difference (A - B).
//
// Both shapes are queried in their own local frame: direction is expressed in A's frame
// and rotated into B's frame by the inverse of rel's rotation. rel maps B's local frame
// into A's. The result is expressed in A's frame:
//
//	support = A.Vertex(A.Farthest(d)) - rel.Apply(B.Vertex(B.Farthest(-d')))
//
// This is the fundamental query that makes GJK work for any convex shape: shapes only
// answer farthest-vertex queries, they never expose their full geometry.
func MinkowskiSupport(a, b actor.Shape2D, rel actor.Transform2D, direction mgl64.Vec2) Vertex {
	idA := a.FarthestVertex(direction)
	idB := b.FarthestVertex(rel.InverseRotate(direction).Mul(-1))
	if idA < 0 || idB < 0 {
		return Vertex{Point: mgl64.Vec2{math.NaN(), math.NaN()}, IDA: idA, IDB: idB}
	}

	return Vertex{
		Point: a.Vertex(idA).Sub(rel.Apply(b.Vertex(idB))),
		IDA:   idA,
		IDB:   idB,
	}
}

// WitnessPoints returns the shape-A vertex and the shape-B vertex (in A's frame) behind v.
func WitnessPoints(a, b actor.Shape2D, rel actor.Transform2D, v Vertex) (mgl64.Vec2, mgl64.Vec2) {
	return a.Vertex(v.IDA), rel.Apply(b.Vertex(v.IDB))
}
