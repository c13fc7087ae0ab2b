package actor

import (
	"math"

	"github.com/akmonengine/convex/topology"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Errors
var (
	ErrIsolatedVertex = errors.New("polyhedron vertex belongs to no face")
	ErrNoFaces        = errors.New("polyhedron needs at least one face")
)

// planarityEpsilon is the relative tolerance for the face-plane side test of the
// convexity check.
const planarityEpsilon = 1e-9

// Polyhedron is a vertex cloud with its own topology.
type Polyhedron struct {
	vertices []mgl64.Vec3
	topo     *topology.Topology
	convex   bool

	// closed is set when every edge joins exactly two faces; only then does the edge
	// graph lead a hill climb to the global maximum.
	closed bool
}

// NewPolyhedron builds a polyhedron from vertex positions and face loops. Every vertex
// must belong to a face. Convexity is analysed once; a non-convex result is not an error,
// the collision engines reject it.
func NewPolyhedron(vertices []mgl64.Vec3, faces [][]int) (*Polyhedron, error) {
	topo, err := buildTopology(len(vertices), faces)
	if err != nil {
		return nil, err
	}

	p := &Polyhedron{
		vertices: append([]mgl64.Vec3(nil), vertices...),
		topo:     topo,
	}
	p.convex = analyzePolyhedron(p.vertices, topo)
	p.closed = closedSurface(topo)

	return p, nil
}

func buildTopology(vertexCount int, faces [][]int) (*topology.Topology, error) {
	if len(faces) == 0 {
		return nil, ErrNoFaces
	}

	topo := topology.New(vertexCount)
	for i, face := range faces {
		if _, err := topo.AddFaceByVertices(face); err != nil {
			return nil, errors.Wrapf(err, "face %d", i)
		}
	}
	if err := topo.CheckValid(); err != nil {
		return nil, err
	}
	for v := 0; v < vertexCount; v++ {
		f, err := topo.VertexFaces(v)
		if err != nil {
			return nil, err
		}
		if len(f) == 0 {
			return nil, errors.Wrapf(ErrIsolatedVertex, "vertex %d", v)
		}
	}

	return topo, nil
}

// closedSurface reports whether every edge is shared by exactly two faces.
func closedSurface(topo *topology.Topology) bool {
	for e := 0; e < topo.EdgeCount(); e++ {
		faces, err := topo.EdgeFaces(e)
		if err != nil || len(faces) != 2 {
			return false
		}
	}
	return topo.EdgeCount() > 0
}

func (p *Polyhedron) VertexCount() int { return len(p.vertices) }
func (p *Polyhedron) EdgeCount() int   { return p.topo.EdgeCount() }
func (p *Polyhedron) FaceCount() int   { return p.topo.FaceCount() }
func (p *Polyhedron) Convex() bool     { return p.convex }

func (p *Polyhedron) Topology() *topology.Topology { return p.topo }

func (p *Polyhedron) Vertex(id int) mgl64.Vec3 {
	if id < 0 || id >= len(p.vertices) {
		return invalidVertex3D("Polyhedron", id)
	}
	return p.vertices[id]
}

func (p *Polyhedron) FarthestVertex(direction mgl64.Vec3) int {
	if !p.convex || !p.closed {
		return ScanFarthest3D(p, direction)
	}
	return climbFarthest(p.topo, p, direction)
}

// climbFarthest walks the edge graph towards increasing projections. On a convex polytope
// a vertex without a strictly better neighbour is a global maximum.
func climbFarthest(topo *topology.Topology, s VertexSource3D, direction mgl64.Vec3) int {
	n := s.VertexCount()
	if n == 0 {
		return -1
	}
	if topo.EdgeCount() == 0 {
		return ScanFarthest3D(s, direction)
	}

	current := 0
	best := s.Vertex(0).Dot(direction)
	for steps := 0; steps < n; steps++ {
		next := current
		err := topo.EachNeighbor(current, func(v int) bool {
			if d := s.Vertex(v).Dot(direction); d > best {
				best = d
				next = v
			}
			return true
		})
		if err != nil {
			klog.Warningf("actor: farthest vertex climb: %v", err)
			return ScanFarthest3D(s, direction)
		}
		if next == current {
			return current
		}
		current = next
	}

	return current
}

// analyzePolyhedron reports whether every vertex lies on one side of every face plane.
func analyzePolyhedron(vertices []mgl64.Vec3, topo *topology.Topology) bool {
	var extent float64
	for _, v := range vertices {
		extent = math.Max(extent, v.Len())
	}
	eps := planarityEpsilon * math.Max(extent, 1)

	for f := 0; f < topo.FaceCount(); f++ {
		loop, err := topo.FaceVertices(f)
		if err != nil {
			return false
		}
		normal := newellNormal(vertices, loop)
		if normal.Len() <= eps*eps {
			return false
		}
		normal = normal.Normalize()
		origin := vertices[loop[0]]

		var above, below bool
		for _, v := range vertices {
			d := v.Sub(origin).Dot(normal)
			if d > eps {
				above = true
			} else if d < -eps {
				below = true
			}
		}
		if above && below {
			return false
		}
	}

	return true
}

// newellNormal is the area-weighted normal of a possibly non-planar loop.
func newellNormal(vertices []mgl64.Vec3, loop []int) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range loop {
		cur := vertices[loop[i]]
		next := vertices[loop[(i+1)%len(loop)]]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	return n
}

// PolyhedronTemplate holds the geometry and topology shared by many instances.
type PolyhedronTemplate struct {
	Polyhedron
}

// NewPolyhedronTemplate builds a template the same way NewPolyhedron builds a polyhedron.
func NewPolyhedronTemplate(vertices []mgl64.Vec3, faces [][]int) (*PolyhedronTemplate, error) {
	p, err := NewPolyhedron(vertices, faces)
	if err != nil {
		return nil, err
	}
	return &PolyhedronTemplate{Polyhedron: *p}, nil
}

// NewInstance returns a per-axis scaled instance sharing the template's topology.
// A zero scale component is read as 1.
func (t *PolyhedronTemplate) NewInstance(scale mgl64.Vec3) *TemplatedPolyhedron {
	for i := range scale {
		if scale[i] == 0 {
			scale[i] = 1
		}
	}
	return &TemplatedPolyhedron{
		template: t,
		topo:     t.topo.Acquire(),
		Scale:    scale,
	}
}

// TemplatedPolyhedron is an instance of a PolyhedronTemplate. Non-uniform scale keeps a
// convex template convex and preserves its topology.
type TemplatedPolyhedron struct {
	template *PolyhedronTemplate
	topo     *topology.Topology
	released bool
	Scale    mgl64.Vec3
}

func (p *TemplatedPolyhedron) VertexCount() int { return len(p.template.vertices) }
func (p *TemplatedPolyhedron) EdgeCount() int   { return p.topo.EdgeCount() }
func (p *TemplatedPolyhedron) FaceCount() int   { return p.topo.FaceCount() }
func (p *TemplatedPolyhedron) Convex() bool     { return p.template.convex }

func (p *TemplatedPolyhedron) Topology() *topology.Topology { return p.topo }

func (p *TemplatedPolyhedron) Vertex(id int) mgl64.Vec3 {
	if id < 0 || id >= len(p.template.vertices) {
		return invalidVertex3D("TemplatedPolyhedron", id)
	}
	v := p.template.vertices[id]
	return mgl64.Vec3{v[0] * p.Scale[0], v[1] * p.Scale[1], v[2] * p.Scale[2]}
}

// FarthestVertex maps the direction into the template frame: the farthest vertex of a
// scaled shape along d is the template's farthest vertex along d scaled by the same factors.
func (p *TemplatedPolyhedron) FarthestVertex(direction mgl64.Vec3) int {
	d := mgl64.Vec3{direction[0] * p.Scale[0], direction[1] * p.Scale[1], direction[2] * p.Scale[2]}
	return p.template.FarthestVertex(d)
}

// Release drops the instance's reference on the shared topology.
func (p *TemplatedPolyhedron) Release() {
	if p.released {
		return
	}
	p.released = true
	p.topo.Release()
}
