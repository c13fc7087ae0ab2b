// Package epa implements the Expanding Polytope Algorithm for computing penetration depth.
//
// EPA is run after GJK detects an intersection to determine:
//   - Penetration depth (how far the shapes overlap)
//   - Contact normal (direction that separates them, from A towards B)
//   - Contact edge and witness points (where the deepest overlap happens)
//
// The algorithm expands a polytope, starting from GJK's terminal simplex, inside the
// Minkowski difference A - B. Each round finds the polytope boundary element closest to
// the origin and pushes it outwards with a support point. Once no support point lies
// beyond that element, its distance is the penetration depth: the minimum translation
// that separates the shapes.
//
// Like GJK, everything is computed in shape A's local frame.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"math"
	"slices"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

const (
	// EPAMaxIterations limits polytope expansion to prevent infinite loops.
	// Each iteration adds one support point, so it also bounds the polytope size.
	EPAMaxIterations = 64

	// EPAConvergenceTolerance defines when EPA has converged: a support point improving
	// the closest element's distance by no more than this ends the expansion.
	EPAConvergenceTolerance = gjk.Epsilon

	// NormalSnapThreshold is used to clamp nearly-zero normal components to exactly zero.
	// This helps with numerical stability and axis-aligned collisions.
	NormalSnapThreshold = 1e-8

	// degenerateEdge is the squared length under which a polygon edge is ignored.
	degenerateEdge = 1e-20
)

// Errors
var (
	ErrEmptySimplex = errors.New("simplex has no points")
	ErrNotEnclosed  = errors.New("simplex does not enclose the origin")
)

// Contact is the result of the 2D EPA.
type Contact struct {
	// Depth is the penetration depth; NaN when the query failed.
	Depth float64

	// Normal is the unit contact normal in A's frame, pointing from A towards B.
	// Moving B by Normal*Depth separates the shapes.
	Normal mgl64.Vec2

	// Edge is the closest polytope edge in Minkowski space.
	Edge [2]mgl64.Vec2

	// PointA and PointB are the witness points of the deepest overlap in A's frame;
	// PointA - PointB = Normal*Depth.
	PointA mgl64.Vec2
	PointB mgl64.Vec2

	Iterations int
}

func failedContact() Contact {
	nan := math.NaN()
	return Contact{
		Depth:  nan,
		Normal: mgl64.Vec2{nan, nan},
		PointA: mgl64.Vec2{nan, nan},
		PointB: mgl64.Vec2{nan, nan},
	}
}

// polygon is the growable convex polytope of the 2D EPA, wound counter-clockwise.
type polygon struct {
	a, b     actor.Shape2D
	rel      actor.Transform2D
	vertices []gjk.Vertex
}

func (p *polygon) support(direction mgl64.Vec2) gjk.Vertex {
	return gjk.MinkowskiSupport(p.a, p.b, p.rel, direction)
}

// EPA computes the penetration of two intersecting convex shapes from the terminal
// simplex of gjk.Intersect. Simplices with fewer than 3 points (shapes touching at a
// point or along a segment) are completed with support points. It fails with
// gjk.ErrNotConvex (NaN depth) for non-convex shapes and with gjk.ErrMaxIterations,
// returning the best contact found so far, when the expansion does not converge.
func EPA(a, b actor.Shape2D, rel actor.Transform2D, simplex gjk.Simplex) (Contact, error) {
	if !a.Convex() || !b.Convex() {
		return failedContact(), gjk.ErrNotConvex
	}

	p := &polygon{a: a, b: b, rel: rel}
	flat, err := p.seed(simplex)
	if err != nil {
		return failedContact(), err
	}
	if flat != nil {
		// A - B has no area: the shapes touch without overlapping
		return *flat, nil
	}
	if !p.enclosesOrigin() {
		return failedContact(), ErrNotEnclosed
	}

	var idx int
	var normal mgl64.Vec2
	var distance float64

	for i := 0; i < EPAMaxIterations; i++ {
		idx, normal, distance = p.closestEdge()
		if idx < 0 {
			return failedContact(), ErrNotEnclosed
		}

		support := p.support(normal)
		if support.Point.Dot(normal)-distance <= EPAConvergenceTolerance {
			klog.V(2).Infof("epa: converged after %d iteration(s), depth %g", i+1, distance)
			return p.contact(idx, normal, distance, i+1), nil
		}

		p.vertices = slices.Insert(p.vertices, idx+1, support)
	}

	idx, normal, distance = p.closestEdge()
	klog.Warningf("epa: no convergence after %d iterations, depth %g", EPAMaxIterations, distance)
	return p.contact(idx, normal, distance, EPAMaxIterations),
		errors.Wrapf(gjk.ErrMaxIterations, "epa: %d iterations", EPAMaxIterations)
}

// seed builds the initial counter-clockwise triangle. It returns a ready contact when
// the Minkowski difference turns out to be flat.
func (p *polygon) seed(simplex gjk.Simplex) (*Contact, error) {
	if simplex.Count <= 0 {
		return nil, ErrEmptySimplex
	}

	pts := append([]gjk.Vertex(nil), simplex.Vertices[:simplex.Count]...)
	if len(pts) == 3 {
		area := actor.Cross2D(pts[1].Point.Sub(pts[0].Point), pts[2].Point.Sub(pts[0].Point))
		switch {
		case area > 0:
			p.vertices = pts
			return nil, nil
		case area < 0:
			p.vertices = []gjk.Vertex{pts[0], pts[2], pts[1]}
			return nil, nil
		}
		pts = longestPair(pts)
	}

	if len(pts) == 1 || pts[1].Point.Sub(pts[0].Point).LenSqr() < degenerateEdge {
		dir := pts[0].Point
		if dir.LenSqr() < degenerateEdge {
			dir = mgl64.Vec2{1, 0}
		}
		other := p.support(dir.Mul(-1))
		if other.Point.Sub(pts[0].Point).LenSqr() < degenerateEdge {
			other = p.support(dir)
		}
		pts = []gjk.Vertex{pts[0], other}
	}

	p0, p1 := pts[0], pts[1]
	n := actor.LeftNormal(p1.Point.Sub(p0.Point))
	if n == (mgl64.Vec2{}) {
		// both shapes are single points
		c := p.flatContact(p0, p1, mgl64.Vec2{0, 1})
		return &c, nil
	}

	base := p0.Point.Dot(n)
	if c := p.support(n); c.Point.Dot(n)-base > EPAConvergenceTolerance {
		p.vertices = []gjk.Vertex{p0, p1, c}
		return nil, nil
	}
	if c := p.support(n.Mul(-1)); base-c.Point.Dot(n) > EPAConvergenceTolerance {
		p.vertices = []gjk.Vertex{p1, p0, c}
		return nil, nil
	}

	c := p.flatContact(p0, p1, n)
	return &c, nil
}

// flatContact reports a zero-depth contact for a Minkowski difference without area.
func (p *polygon) flatContact(p0, p1 gjk.Vertex, normal mgl64.Vec2) Contact {
	t := actor.SegmentParameter(p0.Point, p1.Point)
	t = math.Max(0, math.Min(1, t))
	pa, pb := p.witness(p0, p1, t)
	return Contact{
		Depth:  0,
		Normal: snapNormal2D(normal),
		Edge:   [2]mgl64.Vec2{p0.Point, p1.Point},
		PointA: pa,
		PointB: pb,
	}
}

// enclosesOrigin checks that no edge has the origin outside of it.
func (p *polygon) enclosesOrigin() bool {
	n := len(p.vertices)
	for i := 0; i < n; i++ {
		pi, pj := p.vertices[i].Point, p.vertices[(i+1)%n].Point
		if actor.Cross2D(pj.Sub(pi), pi.Mul(-1)) < -EPAConvergenceTolerance*pj.Sub(pi).Len() {
			return false
		}
	}
	return true
}

// closestEdge returns the edge index, outward unit normal and origin distance of the
// polygon edge closest to the origin. Zero-length edges are skipped.
func (p *polygon) closestEdge() (int, mgl64.Vec2, float64) {
	n := len(p.vertices)
	best := -1
	var bestNormal mgl64.Vec2
	bestDistance := math.Inf(1)

	for i := 0; i < n; i++ {
		pi, pj := p.vertices[i].Point, p.vertices[(i+1)%n].Point
		e := pj.Sub(pi)
		if e.LenSqr() < degenerateEdge {
			continue
		}
		normal := actor.LeftNormal(e).Mul(-1)
		if d := pi.Dot(normal); d < bestDistance {
			best, bestNormal, bestDistance = i, normal, d
		}
	}

	return best, bestNormal, bestDistance
}

func (p *polygon) contact(idx int, normal mgl64.Vec2, distance float64, iterations int) Contact {
	from := p.vertices[idx]
	to := p.vertices[(idx+1)%len(p.vertices)]
	pa, pb := p.witness(from, to, actor.SegmentParameter(from.Point, to.Point))

	return Contact{
		Depth:      distance,
		Normal:     snapNormal2D(normal),
		Edge:       [2]mgl64.Vec2{from.Point, to.Point},
		PointA:     pa,
		PointB:     pb,
		Iterations: iterations,
	}
}

// witness interpolates the shape vertices behind an edge at parameter t.
func (p *polygon) witness(from, to gjk.Vertex, t float64) (mgl64.Vec2, mgl64.Vec2) {
	fromA, fromB := gjk.WitnessPoints(p.a, p.b, p.rel, from)
	toA, toB := gjk.WitnessPoints(p.a, p.b, p.rel, to)
	return fromA.Mul(1 - t).Add(toA.Mul(t)), fromB.Mul(1 - t).Add(toB.Mul(t))
}

// longestPair keeps the two points of a collinear triangle that span it.
func longestPair(pts []gjk.Vertex) []gjk.Vertex {
	best := []gjk.Vertex{pts[0], pts[1]}
	bestLen := pts[1].Point.Sub(pts[0].Point).LenSqr()
	for _, pair := range [][2]int{{1, 2}, {2, 0}} {
		if l := pts[pair[1]].Point.Sub(pts[pair[0]].Point).LenSqr(); l > bestLen {
			best = []gjk.Vertex{pts[pair[0]], pts[pair[1]]}
			bestLen = l
		}
	}
	return best
}

// snapNormal2D clamps nearly-zero components to zero and renormalizes.
func snapNormal2D(normal mgl64.Vec2) mgl64.Vec2 {
	x, y := normal[0], normal[1]
	if math.Abs(x) < NormalSnapThreshold {
		x = 0
	}
	if math.Abs(y) < NormalSnapThreshold {
		y = 0
	}

	clamped := mgl64.Vec2{x, y}
	if l := clamped.Len(); l > 1e-8 {
		return clamped.Mul(1 / l)
	}
	return mgl64.Vec2{0, 1}
}
