package epa

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// PolytopeBuilder holds the triangle faces of the 3D polytope and the scratch buffers
// used to rebuild it around a new support point.
type PolytopeBuilder struct {
	faces []Face

	// Boundary edges of the visible region, with their occurrence count
	// (1 = horizon edge, 2 = interior edge of the visible region)
	edges []EdgeEntry

	visibleIndices []int
	points         []mgl64.Vec3
}

// EdgeEntry counts the visible faces sharing an edge.
type EdgeEntry struct {
	Edge
	Count int
}

// polytopeInitialCapacity is small; buffers grow as needed.
const polytopeInitialCapacity = 8

var polytopeBuilderPool = sync.Pool{
	New: func() interface{} {
		return &PolytopeBuilder{
			faces:          make([]Face, 0, polytopeInitialCapacity),
			edges:          make([]EdgeEntry, 0, polytopeInitialCapacity),
			visibleIndices: make([]int, 0, polytopeInitialCapacity),
			points:         make([]mgl64.Vec3, 0, polytopeInitialCapacity),
		}
	},
}

func (b *PolytopeBuilder) Reset() {
	b.faces = b.faces[:0]
	b.edges = b.edges[:0]
	b.visibleIndices = b.visibleIndices[:0]
	b.points = b.points[:0]
}

// BuildInitialFaces creates the four outward faces of a tetrahedron.
func (b *PolytopeBuilder) BuildInitialFaces(p [4]mgl64.Vec3) {
	b.faces = append(b.faces,
		newFaceOutward(p[0], p[1], p[2], p[3]),
		newFaceOutward(p[0], p[2], p[3], p[1]),
		newFaceOutward(p[0], p[3], p[1], p[2]),
		newFaceOutward(p[1], p[3], p[2], p[0]),
	)
	b.points = append(b.points, p[:]...)
}

// FindClosestFaceIndex returns the face nearest to the origin, or -1 without faces.
func (b *PolytopeBuilder) FindClosestFaceIndex() int {
	if len(b.faces) == 0 {
		return -1
	}

	closestIndex := 0
	for i := 1; i < len(b.faces); i++ {
		if b.faces[i].Distance < b.faces[closestIndex].Distance {
			closestIndex = i
		}
	}
	return closestIndex
}

// AddPointAndRebuildFaces removes every face the support point can see and closes the
// hole with faces joining the horizon edges to the support point.
func (b *PolytopeBuilder) AddPointAndRebuildFaces(support mgl64.Vec3, closestIndex int) {
	centroid := b.centroid()

	b.findVisibleFaces(support)
	if len(b.visibleIndices) == 0 || len(b.visibleIndices) >= len(b.faces) {
		b.visibleIndices = append(b.visibleIndices[:0], closestIndex)
	}

	b.findBoundaryEdges()
	b.removeVisibleFaces()

	for _, edge := range b.edges {
		if edge.Count != 1 {
			continue
		}
		b.faces = append(b.faces, newFaceOutward(edge.A, edge.B, support, centroid))
	}
	b.points = append(b.points, support)
}

// centroid averages the polytope points; it stays strictly inside the convex polytope.
func (b *PolytopeBuilder) centroid() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, p := range b.points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(b.points)))
}

func (b *PolytopeBuilder) findVisibleFaces(support mgl64.Vec3) {
	b.visibleIndices = b.visibleIndices[:0]
	for i := range b.faces {
		face := &b.faces[i]
		if support.Sub(face.Points[0]).Dot(face.Normal) > 0 {
			b.visibleIndices = append(b.visibleIndices, i)
		}
	}
}

func (b *PolytopeBuilder) findBoundaryEdges() {
	b.edges = b.edges[:0]

	for _, idx := range b.visibleIndices {
		face := &b.faces[idx]
		for j := 0; j < 3; j++ {
			edge := normalizeEdge(face.Points[j], face.Points[(j+1)%3])
			if k := b.findEdgeIndex(edge); k >= 0 {
				b.edges[k].Count++
			} else {
				b.edges = append(b.edges, EdgeEntry{Edge: edge, Count: 1})
			}
		}
	}
}

func (b *PolytopeBuilder) findEdgeIndex(edge Edge) int {
	for i := range b.edges {
		if b.edges[i].Edge == edge {
			return i
		}
	}
	return -1
}

// removeVisibleFaces drops the visible faces, highest index first so swap-removal
// never moves a face that is still to be removed.
func (b *PolytopeBuilder) removeVisibleFaces() {
	sort.Sort(sort.Reverse(sort.IntSlice(b.visibleIndices)))

	for _, idx := range b.visibleIndices {
		last := len(b.faces) - 1
		b.faces[idx] = b.faces[last]
		b.faces = b.faces[:last]
	}
}
