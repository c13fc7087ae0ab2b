package actor

import (
	"math"
	"sync"

	"github.com/akmonengine/convex/topology"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plan-systems/klog"
)

// Point3D is a single vertex.
type Point3D struct {
	Position mgl64.Vec3
}

func (p *Point3D) VertexCount() int { return 1 }
func (p *Point3D) Convex() bool     { return true }

func (p *Point3D) Vertex(id int) mgl64.Vec3 {
	if id != 0 {
		return invalidVertex3D("Point3D", id)
	}
	return p.Position
}

func (p *Point3D) FarthestVertex(direction mgl64.Vec3) int { return 0 }

// Segment3D is a line segment between A and B.
type Segment3D struct {
	A, B mgl64.Vec3
}

func (s *Segment3D) VertexCount() int { return 2 }
func (s *Segment3D) Convex() bool     { return true }

func (s *Segment3D) Vertex(id int) mgl64.Vec3 {
	switch id {
	case 0:
		return s.A
	case 1:
		return s.B
	}
	return invalidVertex3D("Segment3D", id)
}

func (s *Segment3D) FarthestVertex(direction mgl64.Vec3) int {
	if s.B.Dot(direction) > s.A.Dot(direction) {
		return 1
	}
	return 0
}

// Default tessellation of a Sphere created without one.
const (
	DefaultSphereStacks = 8
	DefaultSphereSlices = 16
)

// Sphere is approximated by a UV tessellation: vertex 0 is the +Z pole, vertex 1 the -Z pole,
// followed by Stacks-1 rings of Slices vertices each, from the +Z side down.
type Sphere struct {
	Radius float64
	Stacks int
	Slices int
}

// NewSphere creates a sphere with the default tessellation.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius, Stacks: DefaultSphereStacks, Slices: DefaultSphereSlices}
}

func (s *Sphere) tessellation() (stacks, slices int) {
	stacks, slices = s.Stacks, s.Slices
	if stacks < 2 {
		stacks = DefaultSphereStacks
	}
	if slices < 3 {
		slices = DefaultSphereSlices
	}
	return stacks, slices
}

func (s *Sphere) VertexCount() int {
	stacks, slices := s.tessellation()
	return 2 + (stacks-1)*slices
}

func (s *Sphere) Convex() bool { return true }

func (s *Sphere) Vertex(id int) mgl64.Vec3 {
	stacks, slices := s.tessellation()
	switch {
	case id == 0:
		return mgl64.Vec3{0, 0, s.Radius}
	case id == 1:
		return mgl64.Vec3{0, 0, -s.Radius}
	case id < 0 || id >= 2+(stacks-1)*slices:
		return invalidVertex3D("Sphere", id)
	}

	ring := (id-2)/slices + 1
	slice := (id - 2) % slices
	polar := math.Pi * float64(ring) / float64(stacks)
	azimuth := 2 * math.Pi * float64(slice) / float64(slices)
	sinPolar := math.Sin(polar)
	return mgl64.Vec3{
		s.Radius * sinPolar * math.Cos(azimuth),
		s.Radius * sinPolar * math.Sin(azimuth),
		s.Radius * math.Cos(polar),
	}
}

func (s *Sphere) FarthestVertex(direction mgl64.Vec3) int {
	return ScanFarthest3D(s, direction)
}

// boxFaces are wound counter-clockwise seen from outside, for the corner order of boxCorner.
var boxFaces = [][]int{
	{0, 3, 2, 1},
	{4, 5, 6, 7},
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

// tetrahedronFaces are wound outward when vertex 3 lies above the
// counter-clockwise triangle 0-1-2.
var tetrahedronFaces = [][]int{
	{0, 2, 1},
	{0, 1, 3},
	{1, 2, 3},
	{2, 0, 3},
}

var (
	boxTopologyOnce sync.Once
	boxTopology     *topology.Topology

	tetrahedronTopologyOnce sync.Once
	tetrahedronTopology     *topology.Topology
)

// sharedTopology builds a structure that lives for the whole process. The package keeps
// one reference and every shape hands it out read-only.
func sharedTopology(vertexCount int, faces [][]int) *topology.Topology {
	topo := topology.New(vertexCount)
	for _, face := range faces {
		if _, err := topo.AddFaceByVertices(face); err != nil {
			klog.Warningf("actor: built-in topology: %v", err)
		}
	}
	// second owner for the package itself: mutation through a shape is then rejected
	return topo.Acquire()
}

// BoxTopology returns the structure shared by every Cuboid.
func BoxTopology() *topology.Topology {
	boxTopologyOnce.Do(func() {
		boxTopology = sharedTopology(8, boxFaces)
	})
	return boxTopology
}

// TetrahedronTopology returns the structure shared by every Tetrahedron.
func TetrahedronTopology() *topology.Topology {
	tetrahedronTopologyOnce.Do(func() {
		tetrahedronTopology = sharedTopology(4, tetrahedronFaces)
	})
	return tetrahedronTopology
}

// Cuboid is an axis-aligned box centered on the origin. Vertices 0-3 lie on the -Z face
// counter-clockwise from (-x, -y), vertices 4-7 are the same corners on the +Z face.
type Cuboid struct {
	HalfExtents mgl64.Vec3
}

func (c *Cuboid) VertexCount() int { return 8 }
func (c *Cuboid) EdgeCount() int   { return 12 }
func (c *Cuboid) FaceCount() int   { return 6 }
func (c *Cuboid) Convex() bool     { return true }

func (c *Cuboid) Topology() *topology.Topology { return BoxTopology() }

func (c *Cuboid) Vertex(id int) mgl64.Vec3 {
	if id < 0 || id > 7 {
		return invalidVertex3D("Cuboid", id)
	}
	return boxCorner(id, c.HalfExtents)
}

func boxCorner(id int, half mgl64.Vec3) mgl64.Vec3 {
	x, y, z := -half.X(), -half.Y(), -half.Z()
	switch id % 4 {
	case 1:
		x = half.X()
	case 2:
		x, y = half.X(), half.Y()
	case 3:
		y = half.Y()
	}
	if id >= 4 {
		z = half.Z()
	}
	return mgl64.Vec3{x, y, z}
}

// FarthestVertex picks the corner by the signs of direction.
func (c *Cuboid) FarthestVertex(direction mgl64.Vec3) int {
	px, py := direction.X() > 0, direction.Y() > 0
	var id int
	switch {
	case px && !py:
		id = 1
	case px && py:
		id = 2
	case !px && py:
		id = 3
	}
	if direction.Z() > 0 {
		id += 4
	}
	return id
}

// Tetrahedron is defined by four points.
type Tetrahedron struct {
	Points [4]mgl64.Vec3
}

func (t *Tetrahedron) VertexCount() int { return 4 }
func (t *Tetrahedron) EdgeCount() int   { return 6 }
func (t *Tetrahedron) FaceCount() int   { return 4 }
func (t *Tetrahedron) Convex() bool     { return true }

func (t *Tetrahedron) Topology() *topology.Topology { return TetrahedronTopology() }

func (t *Tetrahedron) Vertex(id int) mgl64.Vec3 {
	if id < 0 || id > 3 {
		return invalidVertex3D("Tetrahedron", id)
	}
	return t.Points[id]
}

func (t *Tetrahedron) FarthestVertex(direction mgl64.Vec3) int {
	return ScanFarthest3D(t, direction)
}
