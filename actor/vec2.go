package actor

import "github.com/go-gl/mathgl/mgl64"

// Cross2D returns the z component of the 3D cross product of a and b.
func Cross2D(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// LeftNormal is the unit normal on the left of direction e, or the zero vector for a
// zero-length e.
func LeftNormal(e mgl64.Vec2) mgl64.Vec2 {
	l := e.Len()
	if l == 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{-e.Y() / l, e.X() / l}
}

// SegmentParameter returns t such that a + t*(b-a) is the projection of the origin on
// the line through a and b; 0 when a and b coincide.
func SegmentParameter(a, b mgl64.Vec2) float64 {
	e := b.Sub(a)
	l := e.LenSqr()
	if l == 0 {
		return 0
	}
	return -a.Dot(e) / l
}
