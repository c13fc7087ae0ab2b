package actor

import (
	"math"

	"github.com/akmonengine/convex/topology"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Shape2D is what the collision engines need from a 2D shape. All queries are pure and
// expressed in the shape's local frame.
type Shape2D interface {
	VertexCount() int
	// Vertex returns the position of vertex id. Out-of-range ids yield a NaN vector.
	Vertex(id int) mgl64.Vec2
	// FarthestVertex returns the id of the vertex with the largest projection on direction.
	FarthestVertex(direction mgl64.Vec2) int
	Convex() bool
}

// Shape3D is the 3D counterpart of Shape2D.
type Shape3D interface {
	VertexCount() int
	Vertex(id int) mgl64.Vec3
	FarthestVertex(direction mgl64.Vec3) int
	Convex() bool
}

// Polyhedral shapes are backed by a vertex/edge/face topology.
type Polyhedral interface {
	Shape3D
	EdgeCount() int
	FaceCount() int
	Topology() *topology.Topology
}

// VertexSource2D is the subset of Shape2D the default farthest-vertex scan needs.
type VertexSource2D interface {
	VertexCount() int
	Vertex(id int) mgl64.Vec2
}

// VertexSource3D is the subset of Shape3D the default farthest-vertex scan needs.
type VertexSource3D interface {
	VertexCount() int
	Vertex(id int) mgl64.Vec3
}

// ScanFarthest2D is the default FarthestVertex: a linear scan keeping the first vertex
// with the largest dot product. It returns -1 for a shape without vertices.
func ScanFarthest2D(s VertexSource2D, direction mgl64.Vec2) int {
	n := s.VertexCount()
	if n == 0 {
		return -1
	}

	best := 0
	bestDot := s.Vertex(0).Dot(direction)
	for i := 1; i < n; i++ {
		if d := s.Vertex(i).Dot(direction); d > bestDot {
			best = i
			bestDot = d
		}
	}
	return best
}

// ScanFarthest3D is the 3D default FarthestVertex.
func ScanFarthest3D(s VertexSource3D, direction mgl64.Vec3) int {
	n := s.VertexCount()
	if n == 0 {
		return -1
	}

	best := 0
	bestDot := s.Vertex(0).Dot(direction)
	for i := 1; i < n; i++ {
		if d := s.Vertex(i).Dot(direction); d > bestDot {
			best = i
			bestDot = d
		}
	}
	return best
}

// VertexAt2D is the checked form of Shape2D.Vertex.
func VertexAt2D(s Shape2D, id int) (mgl64.Vec2, error) {
	if id < 0 || id >= s.VertexCount() {
		return nanVec2(), errors.Wrapf(topology.ErrInvalidID, "vertex %d (count %d)", id, s.VertexCount())
	}
	return s.Vertex(id), nil
}

// VertexAt3D is the checked form of Shape3D.Vertex.
func VertexAt3D(s Shape3D, id int) (mgl64.Vec3, error) {
	if id < 0 || id >= s.VertexCount() {
		return nanVec3(), errors.Wrapf(topology.ErrInvalidID, "vertex %d (count %d)", id, s.VertexCount())
	}
	return s.Vertex(id), nil
}

func nanVec2() mgl64.Vec2 {
	return mgl64.Vec2{math.NaN(), math.NaN()}
}

func nanVec3() mgl64.Vec3 {
	return mgl64.Vec3{math.NaN(), math.NaN(), math.NaN()}
}

func invalidVertex2D(shape string, id int) mgl64.Vec2 {
	klog.Warningf("actor: %s has no vertex %d", shape, id)
	return nanVec2()
}

func invalidVertex3D(shape string, id int) mgl64.Vec3 {
	klog.Warningf("actor: %s has no vertex %d", shape, id)
	return nanVec3()
}
