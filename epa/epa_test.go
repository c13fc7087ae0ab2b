package epa

import (
	"math"
	"testing"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() *actor.Rectangle {
	return &actor.Rectangle{HalfExtents: mgl64.Vec2{0.5, 0.5}}
}

func offset(x, y float64) actor.Transform2D {
	return actor.NewTransform2D(mgl64.Vec2{x, y}, 0)
}

func cube(h float64) *actor.Cuboid {
	return &actor.Cuboid{HalfExtents: mgl64.Vec3{h, h, h}}
}

func at(x, y, z float64) actor.Transform {
	tr := actor.NewTransform()
	tr.Position = mgl64.Vec3{x, y, z}
	return tr
}

func penetration(t *testing.T, a, b actor.Shape2D, rel actor.Transform2D) Contact {
	t.Helper()

	hit, simplex := gjk.Intersect(a, b, rel)
	require.True(t, hit, "shapes must intersect")

	contact, err := EPA(a, b, rel, simplex)
	require.NoError(t, err)
	return contact
}

func TestSnapNormal2D(t *testing.T) {
	tests := []struct {
		name     string
		input    mgl64.Vec2
		expected mgl64.Vec2
	}{
		{"small x component", mgl64.Vec2{1e-9, 1}, mgl64.Vec2{0, 1}},
		{"small y component", mgl64.Vec2{-1, 1e-9}, mgl64.Vec2{-1, 0}},
		{"diagonal", mgl64.Vec2{1, 1}.Normalize(), mgl64.Vec2{1, 1}.Normalize()},
		{"near zero vector", mgl64.Vec2{1e-9, -1e-9}, mgl64.Vec2{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := snapNormal2D(tt.input)
			assert.InDelta(t, tt.expected.X(), result.X(), 1e-9)
			assert.InDelta(t, tt.expected.Y(), result.Y(), 1e-9)
			assert.InDelta(t, 1.0, result.Len(), 1e-9)
		})
	}
}

func TestEPACoincidentSquares(t *testing.T) {
	contact := penetration(t, unitSquare(), unitSquare(), offset(0, 0))

	// A - B is the square [-1, 1]^2: every edge lies at distance 1
	assert.InDelta(t, 1.0, contact.Depth, gjk.Epsilon)
	assert.InDelta(t, 1.0, math.Abs(contact.Normal.X())+math.Abs(contact.Normal.Y()), 1e-9,
		"normal %v must be an axis", contact.Normal)
}

func TestEPAShiftedSquares(t *testing.T) {
	contact := penetration(t, unitSquare(), unitSquare(), offset(0.3, 0))

	assert.InDelta(t, 0.7, contact.Depth, gjk.Epsilon)
	assert.InDelta(t, 1.0, contact.Normal.X(), 1e-9)
	assert.InDelta(t, 0.0, contact.Normal.Y(), 1e-9)

	// The deepest points: A's right side and B's left side
	assert.InDelta(t, 0.5, contact.PointA.X(), gjk.Epsilon)
	assert.InDelta(t, -0.2, contact.PointB.X(), gjk.Epsilon)

	separation := contact.PointA.Sub(contact.PointB)
	assert.InDelta(t, contact.Depth, separation.Dot(contact.Normal), gjk.Epsilon)
}

func TestEPAOverlapSymmetry(t *testing.T) {
	triangle := &actor.Triangle{Points: [3]mgl64.Vec2{{0, 0}, {2, 0}, {0, 2}}}
	circle := actor.NewCircle(1, 32)
	rel := actor.NewTransform2D(mgl64.Vec2{1.2, 0.9}, 0.4)

	ab := penetration(t, triangle, circle, rel)
	ba := penetration(t, circle, triangle, rel.Inverse())

	assert.InDelta(t, ab.Depth, ba.Depth, 2*gjk.Epsilon)
	assert.Greater(t, ab.Depth, 0.0)
}

func TestEPATouching(t *testing.T) {
	contact := penetration(t, unitSquare(), unitSquare(), offset(1, 0))

	assert.InDelta(t, 0.0, contact.Depth, gjk.Epsilon)
	assert.InDelta(t, 1.0, contact.Normal.X(), 1e-9)
}

func TestEPAFlatDifference(t *testing.T) {
	a := &actor.Segment2D{A: mgl64.Vec2{-1, 0}, B: mgl64.Vec2{1, 0}}
	b := &actor.Point2D{}
	simplex := gjk.Simplex{Count: 1}
	simplex.Vertices[0] = gjk.MinkowskiSupport(a, b, offset(0, 0), mgl64.Vec2{1, 0})

	contact, err := EPA(a, b, offset(0, 0), simplex)
	require.NoError(t, err)
	assert.Equal(t, 0.0, contact.Depth)
	assert.InDelta(t, 1.0, contact.Normal.Len(), 1e-9)
}

func TestEPAErrors(t *testing.T) {
	t.Run("not convex", func(t *testing.T) {
		chevron := actor.NewPolygon([]mgl64.Vec2{{0, 0}, {2, 1}, {0, 2}, {1, 1}})
		contact, err := EPA(chevron, unitSquare(), offset(0, 0), gjk.Simplex{Count: 1})

		assert.True(t, errors.Is(err, gjk.ErrNotConvex))
		assert.True(t, math.IsNaN(contact.Depth))
	})

	t.Run("empty simplex", func(t *testing.T) {
		contact, err := EPA(unitSquare(), unitSquare(), offset(0, 0), gjk.Simplex{})

		assert.True(t, errors.Is(err, ErrEmptySimplex))
		assert.True(t, math.IsNaN(contact.Depth))
	})

	t.Run("origin outside", func(t *testing.T) {
		rel := offset(3, 0)
		simplex := gjk.Simplex{Count: 3}
		for i, d := range []mgl64.Vec2{{1, 0}, {0, 1}, {0, -1}} {
			simplex.Vertices[i] = gjk.MinkowskiSupport(unitSquare(), unitSquare(), rel, d)
		}

		_, err := EPA(unitSquare(), unitSquare(), rel, simplex)
		assert.True(t, errors.Is(err, ErrNotEnclosed))
	})
}

func TestEPA3DCubes(t *testing.T) {
	tests := []struct {
		name   string
		rel    actor.Transform
		depth  float64
		normal mgl64.Vec3
	}{
		{"overlap along x", at(1.5, 0, 0), 0.5, mgl64.Vec3{1, 0, 0}},
		{"overlap along -y", at(0.2, -1.8, 0.1), 0.2, mgl64.Vec3{0, -1, 0}},
		{"overlap along z", at(0, 0.3, 1.2), 0.8, mgl64.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, simplex := gjk.Intersect3D(cube(1), cube(1), tt.rel)
			require.True(t, hit)

			contact, err := EPA3D(cube(1), cube(1), tt.rel, simplex)
			require.NoError(t, err)

			assert.InDelta(t, tt.depth, contact.Depth, 1e-3)
			assert.InDelta(t, 1.0, contact.Normal.Dot(tt.normal), 1e-3)
			assert.Greater(t, contact.Iterations, 0)
		})
	}
}

func TestEPA3DFlatDifference(t *testing.T) {
	a := &actor.Point3D{}
	b := &actor.Segment3D{A: mgl64.Vec3{-1, 0, 0}, B: mgl64.Vec3{1, 0, 0}}
	simplex := gjk.Simplex3D{Count: 1}
	simplex.Points[0] = gjk.MinkowskiSupport3D(a, b, at(0, 0, 0), mgl64.Vec3{1, 0, 0})

	contact, err := EPA3D(a, b, at(0, 0, 0), simplex)
	require.NoError(t, err)
	assert.Equal(t, 0.0, contact.Depth)
	assert.InDelta(t, 1.0, contact.Normal.Len(), 1e-9)
}

func TestEPA3DErrors(t *testing.T) {
	_, err := EPA3D(cube(1), cube(1), at(0, 0, 0), gjk.Simplex3D{})
	assert.True(t, errors.Is(err, ErrEmptySimplex))
}
