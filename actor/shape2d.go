package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point2D is a single vertex.
type Point2D struct {
	Position mgl64.Vec2
}

func (p *Point2D) VertexCount() int { return 1 }
func (p *Point2D) Convex() bool     { return true }

func (p *Point2D) Vertex(id int) mgl64.Vec2 {
	if id != 0 {
		return invalidVertex2D("Point2D", id)
	}
	return p.Position
}

func (p *Point2D) FarthestVertex(direction mgl64.Vec2) int { return 0 }

// Segment2D is a line segment between A and B.
type Segment2D struct {
	A, B mgl64.Vec2
}

func (s *Segment2D) VertexCount() int { return 2 }
func (s *Segment2D) Convex() bool     { return true }

func (s *Segment2D) Vertex(id int) mgl64.Vec2 {
	switch id {
	case 0:
		return s.A
	case 1:
		return s.B
	}
	return invalidVertex2D("Segment2D", id)
}

func (s *Segment2D) FarthestVertex(direction mgl64.Vec2) int {
	if s.B.Dot(direction) > s.A.Dot(direction) {
		return 1
	}
	return 0
}

// DefaultCircleSegments is the vertex count of a Circle created without one.
const DefaultCircleSegments = 64

// Circle is approximated by a regular polygon whose vertex 0 lies on +X.
type Circle struct {
	Radius   float64
	Segments int
}

// NewCircle creates a circle with the given number of segments (DefaultCircleSegments when < 3).
func NewCircle(radius float64, segments int) *Circle {
	if segments < 3 {
		segments = DefaultCircleSegments
	}
	return &Circle{Radius: radius, Segments: segments}
}

func (c *Circle) segments() int {
	if c.Segments < 3 {
		return DefaultCircleSegments
	}
	return c.Segments
}

func (c *Circle) VertexCount() int { return c.segments() }
func (c *Circle) Convex() bool     { return true }

func (c *Circle) Vertex(id int) mgl64.Vec2 {
	n := c.segments()
	if id < 0 || id >= n {
		return invalidVertex2D("Circle", id)
	}
	angle := 2 * math.Pi * float64(id) / float64(n)
	return mgl64.Vec2{c.Radius * math.Cos(angle), c.Radius * math.Sin(angle)}
}

// FarthestVertex picks the vertex whose angle is nearest to the direction's, which is the
// one with the largest projection on a regular polygon.
func (c *Circle) FarthestVertex(direction mgl64.Vec2) int {
	if direction.X() == 0 && direction.Y() == 0 {
		return 0
	}
	n := c.segments()
	step := 2 * math.Pi / float64(n)
	id := int(math.Round(math.Atan2(direction.Y(), direction.X()) / step))
	return ((id % n) + n) % n
}

// Rectangle is an axis-aligned box centered on the origin.
// Vertices run counter-clockwise from (-hx, -hy).
type Rectangle struct {
	HalfExtents mgl64.Vec2
}

func (r *Rectangle) VertexCount() int { return 4 }
func (r *Rectangle) Convex() bool     { return true }

func (r *Rectangle) Vertex(id int) mgl64.Vec2 {
	hx, hy := r.HalfExtents.X(), r.HalfExtents.Y()
	switch id {
	case 0:
		return mgl64.Vec2{-hx, -hy}
	case 1:
		return mgl64.Vec2{hx, -hy}
	case 2:
		return mgl64.Vec2{hx, hy}
	case 3:
		return mgl64.Vec2{-hx, hy}
	}
	return invalidVertex2D("Rectangle", id)
}

func (r *Rectangle) FarthestVertex(direction mgl64.Vec2) int {
	return ScanFarthest2D(r, direction)
}

// Triangle is defined by three points in any winding.
type Triangle struct {
	Points [3]mgl64.Vec2
}

func (t *Triangle) VertexCount() int { return 3 }
func (t *Triangle) Convex() bool     { return true }

func (t *Triangle) Vertex(id int) mgl64.Vec2 {
	if id < 0 || id > 2 {
		return invalidVertex2D("Triangle", id)
	}
	return t.Points[id]
}

func (t *Triangle) FarthestVertex(direction mgl64.Vec2) int {
	return ScanFarthest2D(t, direction)
}

// convexityEpsilon is the tolerance for cross product comparisons.
// Values below this threshold are treated as zero (collinear edges).
const convexityEpsilon = 1e-10

// turningEpsilon bounds the deviation of a convex polygon's total turning from 2*pi.
const turningEpsilon = 1e-6

// Polygon is an arbitrary closed polygon. Convexity is analysed once at construction;
// non-convex polygons are rejected by the collision engines.
type Polygon struct {
	vertices []mgl64.Vec2
	convex   bool
	winding  int
}

// NewPolygon copies points into a new polygon.
func NewPolygon(points []mgl64.Vec2) *Polygon {
	p := &Polygon{vertices: append([]mgl64.Vec2(nil), points...)}
	p.convex, p.winding = analyzeConvexity(p.vertices)
	return p
}

func (p *Polygon) VertexCount() int { return len(p.vertices) }
func (p *Polygon) Convex() bool     { return p.convex }

// Winding is +1 for counter-clockwise, -1 for clockwise and 0 for degenerate polygons.
func (p *Polygon) Winding() int { return p.winding }

func (p *Polygon) Vertex(id int) mgl64.Vec2 {
	if id < 0 || id >= len(p.vertices) {
		return invalidVertex2D("Polygon", id)
	}
	return p.vertices[id]
}

func (p *Polygon) FarthestVertex(direction mgl64.Vec2) int {
	return ScanFarthest2D(p, direction)
}

// analyzeConvexity checks that all cross products of consecutive edge vectors share a
// sign and that the edges turn exactly once around. Collinear edges are allowed; fully
// collinear, short or self-intersecting polygons (stars) are not convex.
func analyzeConvexity(points []mgl64.Vec2) (bool, int) {
	n := len(points)
	if n < 3 {
		return false, 0
	}

	var positive, negative int
	var turning float64
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		p2 := points[(i+2)%n]

		e0, e1 := p1.Sub(p0), p2.Sub(p1)
		cross := Cross2D(e0, e1)
		turning += math.Atan2(cross, e0.Dot(e1))
		if cross > convexityEpsilon {
			positive++
		} else if cross < -convexityEpsilon {
			negative++
		}
	}

	switch {
	case positive == 0 && negative == 0:
		return false, 0
	case positive > 0 && negative > 0:
		return false, 0
	case math.Abs(math.Abs(turning)-2*math.Pi) > turningEpsilon:
		return false, 0
	case positive > 0:
		return true, 1
	default:
		return true, -1
	}
}
