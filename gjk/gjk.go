// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for convex shapes.
//
// GJK decides whether two convex shapes overlap by testing if their Minkowski difference
// A - B contains the origin, and measures how far apart they are when it does not. The
// algorithm never builds A - B: it grows a small simplex of support points, always
// replacing the point that lies on the wrong side of the origin, until either the origin
// is enclosed or no support point gets closer to it.
//
// Everything is computed in shape A's local frame. Shape B is placed by a relative
// transform mapping B's local frame into A's (see actor.Body2D.RelativeTo).
//
// The 2D solver reports one of three outcomes:
//   - Separated: the origin is outside A - B; the closest simplex feature gives the
//     distance and the witness points on both shapes
//   - Touching: the origin lies on the boundary of A - B (distance 0)
//   - Penetrating: the origin is strictly inside; the terminal triangle feeds EPA
//
// All tie-break comparisons use the fixed tolerance Epsilon. Every loop is bounded by
// MaxIterations and reports ErrMaxIterations instead of spinning on degenerate input.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

const (
	// Epsilon is the tolerance of every progress and boundary comparison.
	Epsilon = 1e-4

	// MaxIterations bounds the simplex refinement loops.
	MaxIterations = 64

	// Overlapping is the distance reported when the origin is strictly inside A - B:
	// the shapes overlap and have no separation distance.
	Overlapping = -1.0

	// collinearEpsilon is the relative threshold under which two support points are
	// treated as collinear with the origin.
	collinearEpsilon = 1e-10

	// degenerateEpsilon is the squared length under which a segment collapses to a point.
	degenerateEpsilon = 1e-20
)

// Errors
var (
	ErrNotConvex     = errors.New("shape is not convex")
	ErrEmptyShape    = errors.New("shape has no vertices")
	ErrMaxIterations = errors.New("no convergence within the iteration limit")
)

// Status is the outcome of the 2D solver.
type Status int

const (
	Unknown Status = iota
	Separated
	Touching
	Penetrating
)

func (s Status) String() string {
	switch s {
	case Separated:
		return "separated"
	case Touching:
		return "touching"
	case Penetrating:
		return "penetrating"
	}
	return "unknown"
}

// Intersects reports whether the two convex shapes overlap or touch. It returns false
// for non-convex or empty shapes and when the solver does not converge.
func Intersects(a, b actor.Shape2D, rel actor.Transform2D) bool {
	hit, _ := Intersect(a, b, rel)
	return hit
}

// Intersect is Intersects returning the terminal simplex, which encloses the origin (or
// holds it on its boundary) when the shapes intersect. EPA starts from it.
func Intersect(a, b actor.Shape2D, rel actor.Transform2D) (bool, Simplex) {
	s, err := newSolver(a, b, rel)
	if err != nil {
		return false, Simplex{}
	}

	status, err := s.run()
	if err != nil {
		klog.Warningf("gjk: intersect: %v", err)
		return false, s.simplex
	}

	return status != Separated, s.simplex
}

type solver struct {
	a, b actor.Shape2D
	rel  actor.Transform2D

	simplex    Simplex
	closest    feature
	iterations int
}

func newSolver(a, b actor.Shape2D, rel actor.Transform2D) (*solver, error) {
	if a.VertexCount() == 0 || b.VertexCount() == 0 {
		return nil, ErrEmptyShape
	}
	if !a.Convex() || !b.Convex() {
		return nil, ErrNotConvex
	}
	return &solver{a: a, b: b, rel: rel}, nil
}

func (s *solver) support(direction mgl64.Vec2) Vertex {
	return MinkowskiSupport(s.a, s.b, s.rel, direction)
}

// run seeds a segment from an arbitrary direction and its negation, then refines it
// until the outcome is known.
func (s *solver) run() (Status, error) {
	d := mgl64.Vec2{1, 0}
	s.simplex.setSegment(s.support(d), s.support(d.Mul(-1)))

	for s.iterations = 1; s.iterations <= MaxIterations; s.iterations++ {
		var status Status
		var done bool
		if s.simplex.Count == 1 {
			status, done = s.stepPoint()
		} else {
			status, done = s.stepSegment()
		}
		if done {
			klog.V(2).Infof("gjk: %v after %d iteration(s)", status, s.iterations)
			return status, nil
		}
	}

	return Unknown, errors.Wrapf(ErrMaxIterations, "%d iterations", MaxIterations)
}

// stepPoint searches past a single point towards the origin.
func (s *solver) stepPoint() (Status, bool) {
	v := s.simplex.Vertices[0]
	l := v.Point.Len()
	if l <= Epsilon {
		s.closest = pointFeature(v)
		return Touching, true
	}

	dir := v.Point.Mul(-1 / l)
	w := s.support(dir)
	if w.Point.Dot(dir)-v.Point.Dot(dir) < Epsilon {
		s.closest = pointFeature(v)
		return Separated, true
	}

	s.simplex.setSegment(v, w)
	return Unknown, false
}

// stepSegment grows the segment a -> b, which has the origin on its left, with the
// support point along the edge's origin-side normal.
func (s *solver) stepSegment() (Status, bool) {
	a, b := s.simplex.Vertices[0], s.simplex.Vertices[1]
	e := b.Point.Sub(a.Point)
	if e.LenSqr() < degenerateEpsilon {
		if b.Point.LenSqr() < a.Point.LenSqr() {
			a = b
		}
		s.simplex.setPoint(a)
		return Unknown, false
	}

	if collinear(a.Point, b.Point) {
		return s.originOnLine(a, b)
	}

	n := actor.LeftNormal(e)
	c := s.support(n)
	if c.Point.Dot(n)-a.Point.Dot(n) < Epsilon {
		// nothing beyond this edge: the closest feature is the edge or one endpoint
		t := actor.SegmentParameter(a.Point, b.Point)
		switch {
		case t <= 0:
			s.simplex.setPoint(a)
			return Unknown, false
		case t >= 1:
			s.simplex.setPoint(b)
			return Unknown, false
		}
		s.closest = segmentFeature(a, b, t)
		return Separated, true
	}

	// a, b, c is counter-clockwise; the origin is already left of a -> b
	s1 := actor.Cross2D(b.Point, c.Point)
	s2 := actor.Cross2D(c.Point, a.Point)
	switch {
	case s1 >= 0 && s2 >= 0:
		s.simplex.setTriangle(a, b, c)
		return Penetrating, true
	case s1 < 0:
		s.simplex.setSegment(c, b)
	default:
		s.simplex.setSegment(a, c)
	}
	return Unknown, false
}

// originOnLine handles a segment whose line passes through the origin.
func (s *solver) originOnLine(a, b Vertex) (Status, bool) {
	t := actor.SegmentParameter(a.Point, b.Point)
	switch {
	case t <= 0:
		s.simplex.setPoint(a)
		return Unknown, false
	case t >= 1:
		s.simplex.setPoint(b)
		return Unknown, false
	}

	for _, v := range [2]Vertex{a, b} {
		if v.Point.Len() <= Epsilon {
			s.closest = pointFeature(v)
			return Touching, true
		}
	}

	// the origin is inside the segment: it is on the boundary of A - B unless the
	// difference extends on both sides of the line
	n := actor.LeftNormal(b.Point.Sub(a.Point))
	base := a.Point.Dot(n)
	left := s.support(n)
	right := s.support(n.Mul(-1))
	if left.Point.Dot(n)-base <= Epsilon || base-right.Point.Dot(n) <= Epsilon {
		s.closest = segmentFeature(a, b, t)
		return Touching, true
	}

	s.simplex.setTriangle(a, b, left)
	return Penetrating, true
}

// touching tells whether a penetrating simplex actually holds the origin on the boundary
// of A - B: at a support point, or on an edge that no support point lies beyond.
func (s *solver) touching() bool {
	n := s.simplex.Count
	for i := 0; i < n; i++ {
		if v := s.simplex.Vertices[i]; v.Point.Len() <= Epsilon {
			s.closest = pointFeature(v)
			return true
		}
	}

	for i := 0; i < n; i++ {
		p, q := s.simplex.Vertices[i], s.simplex.Vertices[(i+1)%n]
		outward := actor.LeftNormal(q.Point.Sub(p.Point)).Mul(-1)
		dist := p.Point.Dot(outward)
		if dist > Epsilon || dist < -Epsilon {
			continue
		}
		t := actor.SegmentParameter(p.Point, q.Point)
		if t < 0 || t > 1 {
			continue
		}
		if s.support(outward).Point.Dot(outward)-dist <= Epsilon {
			s.closest = segmentFeature(p, q, t)
			return true
		}
	}

	return false
}

// collinear reports whether the origin, a and b lie on one line.
func collinear(a, b mgl64.Vec2) bool {
	c := actor.Cross2D(a, b)
	if c < 0 {
		c = -c
	}
	return c <= collinearEpsilon*a.Len()*b.Len()
}
