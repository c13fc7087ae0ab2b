package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a triangle of the 3D polytope.
type Face struct {
	Points   [3]mgl64.Vec3
	Normal   mgl64.Vec3 // outward unit normal
	Distance float64    // distance from the origin to the face plane
}

// newFaceOutward creates the face a, b, c with its normal pointing away from
// oppositePoint, an interior point of the polytope.
func newFaceOutward(a, b, c, oppositePoint mgl64.Vec3) Face {
	face := Face{Points: [3]mgl64.Vec3{a, b, c}}

	normal := b.Sub(a).Cross(c.Sub(a))
	normalLength := normal.Len()
	if normalLength < 1e-8 {
		// Degenerate sliver: keep it, but never let it win the closest-face search
		face.Normal = mgl64.Vec3{0, 1, 0}
		face.Distance = math.Inf(1)
		return face
	}
	normal = normal.Mul(1.0 / normalLength)

	if normal.Dot(oppositePoint.Sub(a)) > 0 {
		normal = normal.Mul(-1)
	}

	distance := a.Dot(normal)

	// The origin may sit on the far side of a face only through rounding
	if distance < 0 {
		normal = normal.Mul(-1)
		distance = -distance
	}

	face.Normal = snapNormalToAxis(normal)
	face.Distance = distance

	return face
}

// snapNormalToAxis clamps nearly-zero components to zero and renormalizes.
func snapNormalToAxis(normal mgl64.Vec3) mgl64.Vec3 {
	clamped := normal
	for i := range clamped {
		if math.Abs(clamped[i]) < NormalSnapThreshold {
			clamped[i] = 0
		}
	}

	length := clamped.Len()
	if length > 1e-8 {
		return clamped.Mul(1.0 / length)
	}
	return mgl64.Vec3{0, 1, 0}
}

// Edge is an undirected polytope edge, stored with A < B in compareVec3 order.
type Edge struct {
	A, B mgl64.Vec3
}

func normalizeEdge(a, b mgl64.Vec3) Edge {
	if compareVec3(a, b) > 0 {
		return Edge{b, a}
	}
	return Edge{a, b}
}

// compareVec3 orders vectors lexicographically.
func compareVec3(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}
