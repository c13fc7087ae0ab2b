package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Rect is the 2D counterpart of AABB.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// ContainsPoint checks if a point is inside the rectangle
func (r Rect) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= r.Min.X() && point.X() <= r.Max.X() &&
		point.Y() >= r.Min.Y() && point.Y() <= r.Max.Y()
}

// Overlaps checks if two rectangles overlap, touching edges included.
func (r Rect) Overlaps(other Rect) bool {
	return r.Max.X() >= other.Min.X() && r.Min.X() <= other.Max.X() &&
		r.Max.Y() >= other.Min.Y() && r.Min.Y() <= other.Max.Y()
}

// Bounds2D returns the rectangle enclosing every vertex of s placed by transform.
func Bounds2D(s Shape2D, transform Transform2D) Rect {
	n := s.VertexCount()
	if n == 0 {
		return Rect{Min: transform.Position, Max: transform.Position}
	}

	first := transform.Apply(s.Vertex(0))
	min, max := first, first
	for i := 1; i < n; i++ {
		p := transform.Apply(s.Vertex(i))
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}

	return Rect{Min: min, Max: max}
}

// Bounds3D returns the box enclosing every vertex of s placed by transform.
func Bounds3D(s Shape3D, transform Transform) AABB {
	n := s.VertexCount()
	if n == 0 {
		return AABB{Min: transform.Position, Max: transform.Position}
	}

	first := transform.Apply(s.Vertex(0))
	min, max := first, first
	for i := 1; i < n; i++ {
		p := transform.Apply(s.Vertex(i))
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}

	return AABB{Min: min, Max: max}
}
