// Package topology implements the vertex/edge/face incidence graph shared by polyhedron shapes.
//
// A Topology holds no geometry: vertices are plain ids 0..n-1, edges join two distinct
// vertices (unordered, deduplicated) and faces are cyclic vertex loops whose winding is
// preserved as supplied. Three index spaces are kept mutually consistent:
//
//   - every vertex lists the edges and faces it belongs to
//   - every edge lists its two endpoints and the faces it borders
//   - every face lists its vertices and a parallel edge sequence, edge i joining
//     vertex i and vertex i+1 (mod face size)
//
// Structures are built once (per shape template or per unique instance) and then shared
// read-only through Acquire/Release. Mutating a shared structure is rejected with ErrShared.
// A Topology is not safe for concurrent mutation.
package topology

import (
	"sync/atomic"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

type vertexData struct {
	edges *treeset.Set
	faces *treeset.Set
}

type edgeData struct {
	vertices [2]int
	faces    *treeset.Set
}

type faceData struct {
	vertices []int
	edges    []int
}

// Topology is a vertex/edge/face incidence graph.
type Topology struct {
	vertices []vertexData
	edges    []edgeData
	faces    []faceData

	refs atomic.Int32
}

// New creates a topology with vertexCount isolated vertices and a reference count of 1.
func New(vertexCount int) *Topology {
	t := &Topology{}
	t.refs.Store(1)
	if vertexCount > 0 {
		t.grow(vertexCount)
	}
	return t
}

func newVertexData() vertexData {
	return vertexData{
		edges: treeset.NewWithIntComparator(),
		faces: treeset.NewWithIntComparator(),
	}
}

func (t *Topology) grow(n int) {
	for len(t.vertices) < n {
		t.vertices = append(t.vertices, newVertexData())
	}
}

func (t *Topology) VertexCount() int { return len(t.vertices) }
func (t *Topology) EdgeCount() int   { return len(t.edges) }
func (t *Topology) FaceCount() int   { return len(t.faces) }

// SetVertexCount declares the number of vertices. New vertices start without adjacency.
// Shrinking is only allowed when every dropped vertex is isolated.
func (t *Topology) SetVertexCount(n int) error {
	if err := t.writable(); err != nil {
		return warn("SetVertexCount", err)
	}
	if n < 0 {
		return warn("SetVertexCount", errors.Wrapf(ErrInvalidID, "negative vertex count %d", n))
	}
	for v := n; v < len(t.vertices); v++ {
		if !t.vertices[v].edges.Empty() || !t.vertices[v].faces.Empty() {
			return warn("SetVertexCount", errors.Wrapf(ErrInUse, "vertex %d", v))
		}
	}
	if n < len(t.vertices) {
		t.vertices = t.vertices[:n]
		return nil
	}
	t.grow(n)
	return nil
}

// AddEdge returns the id of the edge joining a and b, creating it when missing.
// AddEdge(a, b) and AddEdge(b, a) return the same id.
func (t *Topology) AddEdge(a, b int) (int, error) {
	if err := t.writable(); err != nil {
		return -1, warn("AddEdge", err)
	}
	if err := t.checkEdgeEndpoints(a, b); err != nil {
		return -1, warn("AddEdge", err)
	}
	return t.addEdge(a, b), nil
}

func (t *Topology) checkEdgeEndpoints(a, b int) error {
	if err := t.checkVertex(a); err != nil {
		return err
	}
	if err := t.checkVertex(b); err != nil {
		return err
	}
	if a == b {
		return errors.Wrapf(ErrDegenerate, "vertex %d", a)
	}
	return nil
}

func (t *Topology) addEdge(a, b int) int {
	if id := t.findEdge(a, b); id >= 0 {
		return id
	}

	id := len(t.edges)
	t.edges = append(t.edges, edgeData{
		vertices: [2]int{a, b},
		faces:    treeset.NewWithIntComparator(),
	})
	t.vertices[a].edges.Add(id)
	t.vertices[b].edges.Add(id)
	return id
}

// findEdge scans the edges of a, which is far shorter than the edge list.
func (t *Topology) findEdge(a, b int) int {
	it := t.vertices[a].edges.Iterator()
	for it.Next() {
		e := it.Value().(int)
		ev := t.edges[e].vertices
		if (ev[0] == a && ev[1] == b) || (ev[0] == b && ev[1] == a) {
			return e
		}
	}
	return -1
}

// AddFaceByVertices stores the face described by loop, a cyclic vertex sequence whose
// winding is preserved. The id of an existing face is returned when loop matches it up to
// rotation or reversal. Missing edges are created for every consecutive (wrapping) pair.
// On failure the topology is left untouched.
func (t *Topology) AddFaceByVertices(loop []int) (int, error) {
	if err := t.writable(); err != nil {
		return -1, warn("AddFaceByVertices", err)
	}
	if err := t.checkVertexLoop(loop); err != nil {
		return -1, warn("AddFaceByVertices", err)
	}
	if id := t.findFace(loop); id >= 0 {
		return id, nil
	}
	return t.insertFace(loop), nil
}

// AddFaceByEdges stores the face bounded by the given edges. The edges may be listed in
// any order; the vertex cycle is rebuilt from their endpoints, following the caller's order
// where it is a valid walk. It fails with ErrBrokenCycle when the edges do not form exactly
// one closed loop.
func (t *Topology) AddFaceByEdges(loop []int) (int, error) {
	if err := t.writable(); err != nil {
		return -1, warn("AddFaceByEdges", err)
	}
	vertices, err := t.walkEdges(loop)
	if err != nil {
		return -1, warn("AddFaceByEdges", err)
	}
	if id := t.findFace(vertices); id >= 0 {
		return id, nil
	}
	return t.insertFace(vertices), nil
}

func (t *Topology) insertFace(loop []int) int {
	n := len(loop)
	id := len(t.faces)
	face := faceData{
		vertices: append([]int(nil), loop...),
		edges:    make([]int, n),
	}

	for i, a := range loop {
		b := loop[(i+1)%n]
		e := t.addEdge(a, b)
		face.edges[i] = e
		t.edges[e].faces.Add(id)
		t.vertices[a].faces.Add(id)
	}
	t.faces = append(t.faces, face)

	return id
}

// findFace returns the face matching loop, looking only at faces of loop[0].
func (t *Topology) findFace(loop []int) int {
	it := t.vertices[loop[0]].faces.Iterator()
	for it.Next() {
		f := it.Value().(int)
		if MatchCyclic(t.faces[f].vertices, loop).Matches() {
			return f
		}
	}
	return -1
}

func (t *Topology) checkVertexLoop(loop []int) error {
	if len(loop) < 3 {
		return errors.Wrapf(ErrShortLoop, "%d vertices", len(loop))
	}
	seen := make(map[int]struct{}, len(loop))
	for _, v := range loop {
		if err := t.checkVertex(v); err != nil {
			return err
		}
		if _, ok := seen[v]; ok {
			return errors.Wrapf(ErrRepeatedID, "vertex %d", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// walkEdges rebuilds the vertex cycle bounded by loop.
// Vertex i of the result is the start of the i-th walked edge.
func (t *Topology) walkEdges(loop []int) ([]int, error) {
	n := len(loop)
	if n < 3 {
		return nil, errors.Wrapf(ErrShortLoop, "%d edges", n)
	}

	degree := make(map[int]int, n)
	seen := make(map[int]struct{}, n)
	for _, e := range loop {
		if err := t.checkEdge(e); err != nil {
			return nil, err
		}
		if _, ok := seen[e]; ok {
			return nil, errors.Wrapf(ErrRepeatedID, "edge %d", e)
		}
		seen[e] = struct{}{}
		for _, v := range t.edges[e].vertices {
			degree[v]++
		}
	}
	for v, d := range degree {
		if d != 2 {
			return nil, errors.Wrapf(ErrBrokenCycle, "vertex %d has degree %d", v, d)
		}
	}

	first := t.edges[loop[0]].vertices
	start, cur := first[0], first[1]
	// Follow the caller's order when the second edge leaves from first[0].
	next := t.edges[loop[1]].vertices
	if (next[0] == first[0] || next[1] == first[0]) && next[0] != first[1] && next[1] != first[1] {
		start, cur = first[1], first[0]
	}

	used := make([]bool, n)
	used[0] = true
	vertices := make([]int, 0, n)
	vertices = append(vertices, start)

	for step := 1; step < n; step++ {
		found := -1
		for j := 0; j < n; j++ {
			k := (step + j) % n
			if used[k] {
				continue
			}
			ev := t.edges[loop[k]].vertices
			if ev[0] == cur || ev[1] == cur {
				found = k
				break
			}
		}
		if found < 0 {
			return nil, errors.Wrapf(ErrBrokenCycle, "walk stuck at vertex %d", cur)
		}

		used[found] = true
		vertices = append(vertices, cur)
		ev := t.edges[loop[found]].vertices
		if ev[0] == cur {
			cur = ev[1]
		} else {
			cur = ev[0]
		}
	}
	if cur != start {
		return nil, errors.Wrapf(ErrBrokenCycle, "walk ends at %d instead of %d", cur, start)
	}

	return vertices, nil
}

// VertexEdges returns the edges incident to vertex v.
func (t *Topology) VertexEdges(v int) ([]int, error) {
	if err := t.checkVertex(v); err != nil {
		return nil, err
	}
	return setInts(t.vertices[v].edges), nil
}

// VertexFaces returns the faces incident to vertex v.
func (t *Topology) VertexFaces(v int) ([]int, error) {
	if err := t.checkVertex(v); err != nil {
		return nil, err
	}
	return setInts(t.vertices[v].faces), nil
}

// VertexNeighbors returns the vertices sharing an edge with v.
func (t *Topology) VertexNeighbors(v int) ([]int, error) {
	if err := t.checkVertex(v); err != nil {
		return nil, err
	}
	out := make([]int, 0, t.vertices[v].edges.Size())
	t.eachNeighbor(v, func(n int) bool {
		out = append(out, n)
		return true
	})
	return out, nil
}

// EachNeighbor calls fn for every vertex sharing an edge with v, in edge id order,
// until fn returns false. Unlike VertexNeighbors it does not allocate.
func (t *Topology) EachNeighbor(v int, fn func(n int) bool) error {
	if err := t.checkVertex(v); err != nil {
		return err
	}
	t.eachNeighbor(v, fn)
	return nil
}

func (t *Topology) eachNeighbor(v int, fn func(n int) bool) {
	it := t.vertices[v].edges.Iterator()
	for it.Next() {
		ev := t.edges[it.Value().(int)].vertices
		n := ev[0]
		if n == v {
			n = ev[1]
		}
		if !fn(n) {
			return
		}
	}
}

// EdgeVertices returns the two endpoints of edge e, in insertion order.
func (t *Topology) EdgeVertices(e int) ([2]int, error) {
	if err := t.checkEdge(e); err != nil {
		return [2]int{-1, -1}, err
	}
	return t.edges[e].vertices, nil
}

// EdgeFaces returns the faces bordered by edge e.
func (t *Topology) EdgeFaces(e int) ([]int, error) {
	if err := t.checkEdge(e); err != nil {
		return nil, err
	}
	return setInts(t.edges[e].faces), nil
}

// FaceVertices returns the vertex loop of face f with its stored winding.
func (t *Topology) FaceVertices(f int) ([]int, error) {
	if err := t.checkFace(f); err != nil {
		return nil, err
	}
	return append([]int(nil), t.faces[f].vertices...), nil
}

// FaceEdges returns the edge loop of face f; edge i joins vertex i and i+1.
func (t *Topology) FaceEdges(f int) ([]int, error) {
	if err := t.checkFace(f); err != nil {
		return nil, err
	}
	return append([]int(nil), t.faces[f].edges...), nil
}

// EdgeByVertices returns the edge joining a and b.
func (t *Topology) EdgeByVertices(a, b int) (int, error) {
	if err := t.checkEdgeEndpoints(a, b); err != nil {
		return -1, err
	}
	if id := t.findEdge(a, b); id >= 0 {
		return id, nil
	}
	return -1, errors.Wrapf(ErrNotFound, "edge %d-%d", a, b)
}

// FaceByVertices returns the face whose loop matches loop up to rotation or reversal.
func (t *Topology) FaceByVertices(loop []int) (int, error) {
	if err := t.checkVertexLoop(loop); err != nil {
		return -1, err
	}
	if id := t.findFace(loop); id >= 0 {
		return id, nil
	}
	return -1, errors.Wrapf(ErrNotFound, "face %v", loop)
}

// FaceByEdges returns the face bounded by the given edges, listed in any order.
func (t *Topology) FaceByEdges(loop []int) (int, error) {
	vertices, err := t.walkEdges(loop)
	if err != nil {
		return -1, err
	}
	if id := t.findFace(vertices); id >= 0 {
		return id, nil
	}
	return -1, errors.Wrapf(ErrNotFound, "face with edges %v", loop)
}

// FaceWinding tells whether loop runs in the stored winding of face f or against it.
func (t *Topology) FaceWinding(f int, loop []int) (Winding, error) {
	if err := t.checkFace(f); err != nil {
		return NoMatch, err
	}
	return MatchCyclic(t.faces[f].vertices, loop), nil
}

// Clone returns a deep copy with its own reference count of 1.
func (t *Topology) Clone() *Topology {
	c := &Topology{
		vertices: make([]vertexData, len(t.vertices)),
		edges:    make([]edgeData, len(t.edges)),
		faces:    make([]faceData, len(t.faces)),
	}
	c.refs.Store(1)

	for i, v := range t.vertices {
		c.vertices[i] = vertexData{
			edges: treeset.NewWithIntComparator(v.edges.Values()...),
			faces: treeset.NewWithIntComparator(v.faces.Values()...),
		}
	}
	for i, e := range t.edges {
		c.edges[i] = edgeData{
			vertices: e.vertices,
			faces:    treeset.NewWithIntComparator(e.faces.Values()...),
		}
	}
	for i, f := range t.faces {
		c.faces[i] = faceData{
			vertices: append([]int(nil), f.vertices...),
			edges:    append([]int(nil), f.edges...),
		}
	}

	return c
}

func (t *Topology) checkVertex(v int) error {
	if v < 0 || v >= len(t.vertices) {
		return errors.Wrapf(ErrInvalidID, "vertex %d (count %d)", v, len(t.vertices))
	}
	return nil
}

func (t *Topology) checkEdge(e int) error {
	if e < 0 || e >= len(t.edges) {
		return errors.Wrapf(ErrInvalidID, "edge %d (count %d)", e, len(t.edges))
	}
	return nil
}

func (t *Topology) checkFace(f int) error {
	if f < 0 || f >= len(t.faces) {
		return errors.Wrapf(ErrInvalidID, "face %d (count %d)", f, len(t.faces))
	}
	return nil
}

func setInts(s *treeset.Set) []int {
	out := make([]int, 0, s.Size())
	it := s.Iterator()
	for it.Next() {
		out = append(out, it.Value().(int))
	}
	return out
}

func warn(op string, err error) error {
	klog.Warningf("topology: %s: %v", op, err)
	return err
}
