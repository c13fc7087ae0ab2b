package gjk

import (
	"math"

	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Result is the detailed outcome of Closest.
type Result struct {
	Status Status

	// Distance is the separation distance, 0 when touching, Overlapping when penetrating
	// and NaN on failure.
	Distance float64

	// PointA and PointB are the closest points of A and B in A's frame. They are NaN
	// when the shapes penetrate.
	PointA mgl64.Vec2
	PointB mgl64.Vec2

	// Simplex is the terminal simplex.
	Simplex    Simplex
	Iterations int
}

func failedResult() Result {
	nan := math.NaN()
	return Result{
		Status:   Unknown,
		Distance: nan,
		PointA:   mgl64.Vec2{nan, nan},
		PointB:   mgl64.Vec2{nan, nan},
	}
}

// Closest runs the 2D solver and reports the separation distance and the closest point
// pair. It fails with ErrNotConvex, ErrEmptyShape or ErrMaxIterations; the returned
// Result then carries NaN values.
func Closest(a, b actor.Shape2D, rel actor.Transform2D) (Result, error) {
	s, err := newSolver(a, b, rel)
	if err != nil {
		return failedResult(), err
	}

	status, err := s.run()
	if err != nil {
		res := failedResult()
		res.Simplex = s.simplex
		res.Iterations = MaxIterations
		return res, err
	}
	if status == Penetrating && s.touching() {
		status = Touching
	}

	res := Result{Status: status, Simplex: s.simplex, Iterations: s.iterations}
	switch status {
	case Penetrating:
		nan := math.NaN()
		res.Distance = Overlapping
		res.PointA = mgl64.Vec2{nan, nan}
		res.PointB = mgl64.Vec2{nan, nan}
	case Touching:
		res.PointA, res.PointB = s.witness()
	default:
		res.Distance = s.closest.point().Len()
		res.PointA, res.PointB = s.witness()
	}

	return res, nil
}

// witness interpolates the shape vertices behind the closest feature with the weight
// that places the origin's projection on it.
func (s *solver) witness() (mgl64.Vec2, mgl64.Vec2) {
	fromA, fromB := WitnessPoints(s.a, s.b, s.rel, s.closest.from)
	if !s.closest.segment {
		return fromA, fromB
	}

	toA, toB := WitnessPoints(s.a, s.b, s.rel, s.closest.to)
	w := s.closest.weight
	return fromA.Mul(1 - w).Add(toA.Mul(w)), fromB.Mul(1 - w).Add(toB.Mul(w))
}

// Distance returns the separation distance between the two shapes, 0 when they touch,
// Overlapping (-1) when they penetrate, and NaN when a shape is not convex or the solver
// does not converge.
func Distance(a, b actor.Shape2D, rel actor.Transform2D) float64 {
	res, err := Closest(a, b, rel)
	if err != nil {
		logFailure("distance", err)
	}
	return res.Distance
}

// ClosestPoints returns the closest point of each shape, both in A's frame, and their
// distance. Penetrating shapes yield NaN points and Overlapping; failures yield NaN.
func ClosestPoints(a, b actor.Shape2D, rel actor.Transform2D) (mgl64.Vec2, mgl64.Vec2, float64) {
	res, err := Closest(a, b, rel)
	if err != nil {
		logFailure("closest points", err)
	}
	return res.PointA, res.PointB, res.Distance
}

// logFailure reports non-convergence; precondition violations are silent.
func logFailure(op string, err error) {
	if errors.Is(err, ErrMaxIterations) {
		klog.Warningf("gjk: %s: %v", op, err)
	}
}
