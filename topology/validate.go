package topology

import (
	"slices"

	"github.com/pkg/errors"
)

// CheckValid cross-validates every vertex, edge and face reference and returns the first
// inconsistency found, wrapped in ErrInconsistent. It walks the whole structure and is
// meant as a post-construction assertion, not a hot-path call.
func (t *Topology) CheckValid() error {
	if err := t.checkVertices(); err != nil {
		return err
	}
	if err := t.checkEdges(); err != nil {
		return err
	}
	return t.checkFaces()
}

// Valid is CheckValid as a boolean.
func (t *Topology) Valid() bool {
	return t.CheckValid() == nil
}

func inconsistent(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInconsistent, format, args...)
}

func (t *Topology) checkVertices() error {
	for v, data := range t.vertices {
		it := data.edges.Iterator()
		for it.Next() {
			e := it.Value().(int)
			if e < 0 || e >= len(t.edges) {
				return inconsistent("vertex %d lists unknown edge %d", v, e)
			}
			if ev := t.edges[e].vertices; ev[0] != v && ev[1] != v {
				return inconsistent("vertex %d lists edge %d which joins %v", v, e, ev)
			}
		}

		it = data.faces.Iterator()
		for it.Next() {
			f := it.Value().(int)
			if f < 0 || f >= len(t.faces) {
				return inconsistent("vertex %d lists unknown face %d", v, f)
			}
			if !slices.Contains(t.faces[f].vertices, v) {
				return inconsistent("vertex %d lists face %d which does not use it", v, f)
			}
		}
	}
	return nil
}

func (t *Topology) checkEdges() error {
	pairs := make(map[[2]int]int, len(t.edges))

	for e, data := range t.edges {
		a, b := data.vertices[0], data.vertices[1]
		if a < 0 || a >= len(t.vertices) || b < 0 || b >= len(t.vertices) {
			return inconsistent("edge %d joins unknown vertices %v", e, data.vertices)
		}
		if a == b {
			return inconsistent("edge %d is a loop on vertex %d", e, a)
		}
		if !t.vertices[a].edges.Contains(e) || !t.vertices[b].edges.Contains(e) {
			return inconsistent("edge %d missing from the adjacency of %v", e, data.vertices)
		}

		key := [2]int{min(a, b), max(a, b)}
		if other, ok := pairs[key]; ok {
			return inconsistent("edges %d and %d both join %v", other, e, key)
		}
		pairs[key] = e

		it := data.faces.Iterator()
		for it.Next() {
			f := it.Value().(int)
			if f < 0 || f >= len(t.faces) {
				return inconsistent("edge %d lists unknown face %d", e, f)
			}
			if !slices.Contains(t.faces[f].edges, e) {
				return inconsistent("edge %d lists face %d which does not use it", e, f)
			}
		}
	}
	return nil
}

func (t *Topology) checkFaces() error {
	for f, data := range t.faces {
		n := len(data.vertices)
		if n < 3 {
			return inconsistent("face %d has %d vertices", f, n)
		}
		if len(data.edges) != n {
			return inconsistent("face %d has %d vertices but %d edges", f, n, len(data.edges))
		}

		for i, v := range data.vertices {
			if v < 0 || v >= len(t.vertices) {
				return inconsistent("face %d uses unknown vertex %d", f, v)
			}
			if !t.vertices[v].faces.Contains(f) {
				return inconsistent("face %d missing from the adjacency of vertex %d", f, v)
			}

			e := data.edges[i]
			if e < 0 || e >= len(t.edges) {
				return inconsistent("face %d uses unknown edge %d", f, e)
			}
			next := data.vertices[(i+1)%n]
			ev := t.edges[e].vertices
			if !(ev[0] == v && ev[1] == next) && !(ev[0] == next && ev[1] == v) {
				return inconsistent("face %d edge %d joins %v, expected %d-%d", f, e, ev, v, next)
			}
			if !t.edges[e].faces.Contains(f) {
				return inconsistent("face %d missing from the adjacency of edge %d", f, e)
			}
		}

		it := t.vertices[data.vertices[0]].faces.Iterator()
		for it.Next() {
			other := it.Value().(int)
			if other < f && MatchCyclic(t.faces[other].vertices, data.vertices).Matches() {
				return inconsistent("faces %d and %d share the same loop", other, f)
			}
		}
	}
	return nil
}
