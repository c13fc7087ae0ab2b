package gjk

import (
	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Simplex is the working polygon of the 2D solver: 1 to 3 points of the Minkowski
// difference. A 2-point simplex keeps the origin on the left of Vertices[0] -> Vertices[1];
// a 3-point simplex is wound counter-clockwise.
type Simplex struct {
	Vertices [3]Vertex
	Count    int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Points returns the simplex points in order.
func (s *Simplex) Points() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, s.Count)
	for i := 0; i < s.Count; i++ {
		out[i] = s.Vertices[i].Point
	}
	return out
}

func (s *Simplex) setPoint(v Vertex) {
	s.Vertices[0] = v
	s.Count = 1
}

// setSegment stores a and b so that the origin lies on the left of a -> b.
func (s *Simplex) setSegment(a, b Vertex) {
	if actor.Cross2D(a.Point, b.Point) < 0 {
		a, b = b, a
	}
	s.Vertices[0], s.Vertices[1] = a, b
	s.Count = 2
}

func (s *Simplex) setTriangle(a, b, c Vertex) {
	s.Vertices[0], s.Vertices[1], s.Vertices[2] = a, b, c
	s.Count = 3
}

// feature is the part of the simplex closest to the origin: one vertex (weight 0), or a
// segment where the closest point is (1-weight)*from + weight*to.
type feature struct {
	from, to Vertex
	weight   float64
	segment  bool
}

func pointFeature(v Vertex) feature {
	return feature{from: v, to: v}
}

func segmentFeature(a, b Vertex, t float64) feature {
	return feature{from: a, to: b, weight: t, segment: true}
}

func (f feature) point() mgl64.Vec2 {
	if !f.segment {
		return f.from.Point
	}
	return f.from.Point.Mul(1 - f.weight).Add(f.to.Point.Mul(f.weight))
}
