// Package convex detects collisions between convex 2D bodies: GJK for intersection,
// separation distance and closest points, EPA for penetration depth, and a uniform
// grid broad phase feeding both.
//
// The functions of this package take bodies placed in the world and answer in world
// space. The gjk and epa packages work on bare shapes in the frame of the first shape.
package convex

import (
	"math"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/epa"
	"github.com/akmonengine/convex/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// ErrSeparated is returned by Penetration for bodies that do not overlap.
var ErrSeparated = errors.New("bodies are separated")

// Contact describes the overlap of two bodies in world space.
type Contact struct {
	BodyA *actor.Body2D
	BodyB *actor.Body2D

	// Depth is the penetration depth, 0 for touching bodies.
	Depth float64

	// Normal points from A towards B; moving B by Normal*Depth separates the bodies.
	Normal mgl64.Vec2

	// PointA and PointB are the deepest points of A inside B and of B inside A.
	PointA mgl64.Vec2
	PointB mgl64.Vec2
}

// Intersects reports whether two bodies overlap or touch. Non-convex shapes never
// intersect.
func Intersects(a, b *actor.Body2D) bool {
	return gjk.Intersects(a.Shape, b.Shape, a.RelativeTo(b))
}

// Distance returns the world-space separation of two bodies: 0 when they touch,
// gjk.Overlapping when they penetrate and NaN when the query fails.
func Distance(a, b *actor.Body2D) float64 {
	d := gjk.Distance(a.Shape, b.Shape, a.RelativeTo(b))
	if d <= 0 || math.IsNaN(d) {
		return d
	}
	return d * scaleOf(a.Transform)
}

// ClosestPoints returns the closest points of two bodies in world space with their
// distance. Penetrating bodies give NaN points and gjk.Overlapping.
func ClosestPoints(a, b *actor.Body2D) (mgl64.Vec2, mgl64.Vec2, float64) {
	pa, pb, d := gjk.ClosestPoints(a.Shape, b.Shape, a.RelativeTo(b))
	if d < 0 || math.IsNaN(d) {
		return pa, pb, d
	}
	return a.Transform.Apply(pa), a.Transform.Apply(pb), d * scaleOf(a.Transform)
}

// Penetration resolves the overlap of two bodies. Separated bodies fail with
// ErrSeparated.
func Penetration(a, b *actor.Body2D) (Contact, error) {
	rel := a.RelativeTo(b)

	hit, simplex := gjk.Intersect(a.Shape, b.Shape, rel)
	if !hit {
		if !a.Shape.Convex() || !b.Shape.Convex() {
			return Contact{BodyA: a, BodyB: b}, gjk.ErrNotConvex
		}
		return Contact{BodyA: a, BodyB: b}, ErrSeparated
	}

	local, err := epa.EPA(a.Shape, b.Shape, rel, simplex)
	if err != nil && !errors.Is(err, gjk.ErrMaxIterations) {
		return Contact{BodyA: a, BodyB: b}, errors.Wrap(err, "penetration")
	}

	return toWorld(a, b, local), err
}

// toWorld maps a contact from A's frame to world space.
func toWorld(a, b *actor.Body2D, local epa.Contact) Contact {
	return Contact{
		BodyA:  a,
		BodyB:  b,
		Depth:  local.Depth * scaleOf(a.Transform),
		Normal: a.Transform.Rotate(local.Normal),
		PointA: a.Transform.Apply(local.PointA),
		PointB: a.Transform.Apply(local.PointB),
	}
}

func scaleOf(t actor.Transform2D) float64 {
	if t.Scale == 0 {
		return 1
	}
	return math.Abs(t.Scale)
}

// BroadPhase fills the grid with the bodies and returns the pairs whose bounds overlap.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body2D) []Pair {
	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body)
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairs(bodies)
}

// NarrowPhase runs GJK on every pair and EPA on the intersecting ones.
// Pairs that fail are logged and skipped.
func NarrowPhase(pairs []Pair) []Contact {
	contacts := make([]Contact, 0, len(pairs))

	for _, pair := range pairs {
		contact, err := Penetration(pair.BodyA, pair.BodyB)
		switch {
		case err == nil:
			contacts = append(contacts, contact)
		case errors.Is(err, ErrSeparated):
		case errors.Is(err, gjk.ErrMaxIterations):
			// best estimate is still usable
			contacts = append(contacts, contact)
		default:
			klog.Warningf("narrow phase: %v", err)
		}
	}

	return contacts
}
