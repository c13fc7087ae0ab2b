package epa

import (
	"math"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Contact3D is the result of EPA3D.
type Contact3D struct {
	// Depth is the penetration depth; NaN when the query failed.
	Depth float64

	// Normal is the unit contact normal in A's frame, pointing from A towards B.
	Normal mgl64.Vec3

	// Face is the closest polytope face in Minkowski space.
	Face [3]mgl64.Vec3

	Iterations int
}

func failedContact3D() Contact3D {
	nan := math.NaN()
	return Contact3D{Depth: nan, Normal: mgl64.Vec3{nan, nan, nan}}
}

var searchAxes = [6]mgl64.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// EPA3D computes the penetration of two intersecting convex 3D shapes from the terminal
// simplex of gjk.Intersect3D. Simplices with fewer than 4 points are completed with
// support points; a Minkowski difference without volume yields a zero-depth contact.
func EPA3D(a, b actor.Shape3D, rel actor.Transform, simplex gjk.Simplex3D) (Contact3D, error) {
	if !a.Convex() || !b.Convex() {
		return failedContact3D(), gjk.ErrNotConvex
	}
	if simplex.Count <= 0 {
		return failedContact3D(), ErrEmptySimplex
	}

	support := func(direction mgl64.Vec3) mgl64.Vec3 {
		return gjk.MinkowskiSupport3D(a, b, rel, direction)
	}

	points, flatNormal, ok := completeSimplex3D(support, simplex)
	if !ok {
		klog.V(2).Infof("epa: flat Minkowski difference, zero depth")
		return Contact3D{Depth: 0, Normal: snapNormalToAxis(flatNormal)}, nil
	}

	builder := polytopeBuilderPool.Get().(*PolytopeBuilder)
	defer polytopeBuilderPool.Put(builder)
	builder.Reset()
	builder.BuildInitialFaces(points)

	var closest Face
	for i := 0; i < EPAMaxIterations; i++ {
		idx := builder.FindClosestFaceIndex()
		if idx < 0 || math.IsInf(builder.faces[idx].Distance, 1) {
			return failedContact3D(), ErrNotEnclosed
		}
		closest = builder.faces[idx]

		w := support(closest.Normal)
		if w.Dot(closest.Normal)-closest.Distance <= EPAConvergenceTolerance {
			klog.V(2).Infof("epa: 3D converged after %d iteration(s), depth %g", i+1, closest.Distance)
			return Contact3D{
				Depth:      closest.Distance,
				Normal:     closest.Normal,
				Face:       closest.Points,
				Iterations: i + 1,
			}, nil
		}

		builder.AddPointAndRebuildFaces(w, idx)
	}

	klog.Warningf("epa: 3D no convergence after %d iterations, depth %g", EPAMaxIterations, closest.Distance)
	return Contact3D{
			Depth:      closest.Distance,
			Normal:     closest.Normal,
			Face:       closest.Points,
			Iterations: EPAMaxIterations,
		},
		errors.Wrapf(gjk.ErrMaxIterations, "epa: 3D %d iterations", EPAMaxIterations)
}

// completeSimplex3D grows the simplex to a tetrahedron with non-zero volume. When A - B
// turns out to be flat it returns false along with the flat direction found.
func completeSimplex3D(support func(mgl64.Vec3) mgl64.Vec3, simplex gjk.Simplex3D) ([4]mgl64.Vec3, mgl64.Vec3, bool) {
	const tolerance = 1e-9

	var result [4]mgl64.Vec3
	points := append(make([]mgl64.Vec3, 0, 4), simplex.Points[:simplex.Count]...)

	if len(points) < 2 {
		for _, axis := range searchAxes {
			if p := support(axis); p.Sub(points[0]).Len() > tolerance {
				points = append(points, p)
				break
			}
		}
		if len(points) < 2 {
			return result, mgl64.Vec3{0, 1, 0}, false
		}
	}

	if len(points) < 3 || lineArea(points[0], points[1], points[2]) <= tolerance {
		points = points[:2]
		edge := points[1].Sub(points[0])
		for _, axis := range searchAxes {
			dir := edge.Cross(axis)
			if dir.LenSqr() < tolerance {
				continue
			}
			if p := support(dir); lineArea(points[0], points[1], p) > tolerance {
				points = append(points, p)
				break
			}
		}
		if len(points) < 3 {
			return result, anyPerpendicular(edge), false
		}
	}

	normal := points[1].Sub(points[0]).Cross(points[2].Sub(points[0])).Normalize()
	if len(points) < 4 || math.Abs(points[3].Sub(points[0]).Dot(normal)) <= tolerance {
		points = points[:3]
		for _, dir := range [2]mgl64.Vec3{normal, normal.Mul(-1)} {
			if p := support(dir); math.Abs(p.Sub(points[0]).Dot(normal)) > tolerance {
				points = append(points, p)
				break
			}
		}
		if len(points) < 4 {
			return result, normal, false
		}
	}

	copy(result[:], points)
	return result, mgl64.Vec3{}, true
}

func lineArea(a, b, c mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len()
}

func anyPerpendicular(v mgl64.Vec3) mgl64.Vec3 {
	for _, axis := range [3]mgl64.Vec3{searchAxes[0], searchAxes[2], searchAxes[4]} {
		if p := v.Cross(axis); p.LenSqr() > 1e-12 {
			return p.Normalize()
		}
	}
	return mgl64.Vec3{0, 1, 0}
}
