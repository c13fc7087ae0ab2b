package gjk

import (
	"math"
	"sync"

	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plan-systems/klog"
)

// Simplex3D represents a set of 1-4 points in the Minkowski difference space.
// The simplex evolves during GJK iterations, always containing the most recent support points.
// Size progression: 1 point → 2 points (line) → 3 points (triangle) → 4 points (tetrahedron)
type Simplex3D struct {
	Points [4]mgl64.Vec3
	Count  int
}

func (s *Simplex3D) Reset() {
	s.Count = 0
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex3D{}
	},
}

// MinkowskiSupport3D is the 3D counterpart of MinkowskiSupport: the farthest point of
// A - B along direction, in A's frame.
func MinkowskiSupport3D(a, b actor.Shape3D, rel actor.Transform, direction mgl64.Vec3) mgl64.Vec3 {
	supportA := a.Vertex(a.FarthestVertex(direction))
	supportB := rel.Apply(b.Vertex(b.FarthestVertex(rel.InverseRotate(direction).Mul(-1))))
	return supportA.Sub(supportB)
}

// Intersects3D reports whether two convex 3D shapes overlap or touch.
func Intersects3D(a, b actor.Shape3D, rel actor.Transform) bool {
	simplex := SimplexPool.Get().(*Simplex3D)
	defer SimplexPool.Put(simplex)
	simplex.Reset()

	return intersect3D(a, b, rel, simplex)
}

// Intersect3D is Intersects3D returning the terminal simplex. For penetrating shapes it
// is a tetrahedron containing the origin, which EPA3D uses as its initial polytope.
func Intersect3D(a, b actor.Shape3D, rel actor.Transform) (bool, Simplex3D) {
	var simplex Simplex3D
	hit := intersect3D(a, b, rel, &simplex)
	return hit, simplex
}

// intersect3D grows a simplex towards the origin, the same way the 2D solver does: it
// stops when the origin is enclosed, when a support plane separates it by more than
// Epsilon, or when a new support point no longer makes Epsilon progress. In the last
// case the shapes touch if the current feature is within Epsilon of the origin.
func intersect3D(a, b actor.Shape3D, rel actor.Transform, simplex *Simplex3D) bool {
	if a.VertexCount() == 0 || b.VertexCount() == 0 || !a.Convex() || !b.Convex() {
		return false
	}

	// Starting toward the other shape typically reduces iterations
	direction := rel.Position
	if direction.LenSqr() < degenerate3D {
		direction = mgl64.Vec3{1, 0, 0}
	}

	simplex.Points[0] = MinkowskiSupport3D(a, b, rel, direction)
	simplex.Count = 1
	direction = simplex.Points[0].Mul(-1)

	for i := 0; i < MaxIterations; i++ {
		if direction.LenSqr() <= degenerate3D {
			// the origin lies on the current feature
			return true
		}
		unit := direction.Normalize()

		newPoint := MinkowskiSupport3D(a, b, rel, unit)
		lead := newPoint.Dot(unit)
		if lead < -Epsilon {
			return false
		}

		gap := -simplex.Points[0].Dot(unit)
		if lead+gap < Epsilon {
			klog.V(2).Infof("gjk: 3D no progress after %d iteration(s), gap %g", i+1, gap)
			return gap <= Epsilon
		}

		simplex.Points[simplex.Count] = newPoint
		simplex.Count++

		if containsOrigin(simplex, &direction) {
			klog.V(2).Infof("gjk: 3D enclosure after %d iteration(s)", i+1)
			return true
		}
	}

	klog.Warningf("gjk: 3D intersect: no convergence after %d iterations", MaxIterations)
	return false
}

// degenerate3D is the squared length under which a 3D vector counts as zero.
const degenerate3D = Epsilon * Epsilon

// containsOrigin reduces the simplex to its feature closest to the origin, points the
// direction from that feature to the origin and reports enclosure or contact. The newest
// point is always the last one.
func containsOrigin(simplex *Simplex3D, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	case 4:
		return tetrahedron(simplex, direction)
	}
	return false
}

func (s *Simplex3D) setPoint(a mgl64.Vec3) {
	s.Points[0] = a
	s.Count = 1
}

// setSegment keeps a as the newest point.
func (s *Simplex3D) setSegment(b, a mgl64.Vec3) {
	s.Points[0], s.Points[1] = b, a
	s.Count = 2
}

// setTriangle keeps a as the newest point.
func (s *Simplex3D) setTriangle(c, b, a mgl64.Vec3) {
	s.Points[0], s.Points[1], s.Points[2] = c, b, a
	s.Count = 3
}

func line(simplex *Simplex3D, direction *mgl64.Vec3) bool {
	a, b := simplex.Points[1], simplex.Points[0]
	ab, ao := b.Sub(a), a.Mul(-1)

	if ab.LenSqr() < degenerate3D || ab.Dot(ao) <= 0 {
		simplex.setPoint(a)
		*direction = ao
		return ao.LenSqr() <= degenerate3D
	}

	// |perp| = |ab|^2 * distance of the origin to the line
	perp := ab.Cross(ao).Cross(ab)
	if l := ab.LenSqr(); perp.LenSqr() <= degenerate3D*l*l {
		return true
	}

	*direction = perp
	return false
}

func triangle(simplex *Simplex3D, direction *mgl64.Vec3) bool {
	a, b, c := simplex.Points[2], simplex.Points[1], simplex.Points[0]
	ab, ac, ao := b.Sub(a), c.Sub(a), a.Mul(-1)

	normal := ab.Cross(ac)
	if normal.LenSqr() < degenerate3D {
		simplex.setSegment(b, a)
		return line(simplex, direction)
	}

	// outside edge ab or edge ac: the closest feature is on that edge's side
	if ab.Cross(normal).Dot(ao) > 0 {
		simplex.setSegment(b, a)
		return line(simplex, direction)
	}
	if normal.Cross(ac).Dot(ao) > 0 {
		simplex.setSegment(c, a)
		return line(simplex, direction)
	}

	side := normal.Dot(ao)
	if math.Abs(side) <= Epsilon*normal.Len() {
		// the origin is on the face
		return true
	}
	if side > 0 {
		*direction = normal
	} else {
		// below: swap b and c so the normal faces the origin
		simplex.setTriangle(b, c, a)
		*direction = normal.Mul(-1)
	}
	return false
}

func tetrahedron(simplex *Simplex3D, direction *mgl64.Vec3) bool {
	a, b, c, d := simplex.Points[3], simplex.Points[2], simplex.Points[1], simplex.Points[0]
	ao := a.Mul(-1)

	// the three faces through the newest point, each with its opposite vertex
	faces := [3][3]mgl64.Vec3{{b, c, d}, {c, d, b}, {d, b, c}}
	var normals [3]mgl64.Vec3
	for i, f := range faces {
		n := f[0].Sub(a).Cross(f[1].Sub(a))
		if n.LenSqr() < degenerate3D {
			// flat tetrahedron: drop the oldest point
			simplex.setTriangle(c, b, a)
			return triangle(simplex, direction)
		}
		if n.Dot(f[2].Sub(a)) > 0 {
			n = n.Mul(-1)
		}
		normals[i] = n
	}

	for i, f := range faces {
		if normals[i].Dot(ao) > 0 {
			simplex.setTriangle(f[1], f[0], a)
			return triangle(simplex, direction)
		}
	}

	return true
}
