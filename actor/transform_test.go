package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransform2D(t *testing.T) {
	tr := Transform2D{Position: mgl64.Vec2{3, -1}, Angle: math.Pi / 2, Scale: 2}

	t.Run("apply", func(t *testing.T) {
		// scale, rotate a quarter turn, translate
		got := tr.Apply(mgl64.Vec2{1, 0})
		if !vec2Equal(got, mgl64.Vec2{3, 1}, 1e-12) {
			t.Errorf("Apply = %v", got)
		}
	})

	t.Run("zero value is identity", func(t *testing.T) {
		var id Transform2D
		p := mgl64.Vec2{1.5, -2}
		if got := id.Apply(p); !vec2Equal(got, p, 1e-15) {
			t.Errorf("Apply = %v", got)
		}
	})

	t.Run("inverse round trip", func(t *testing.T) {
		p := mgl64.Vec2{0.3, 7}
		if got := tr.Inverse().Apply(tr.Apply(p)); !vec2Equal(got, p, 1e-12) {
			t.Errorf("round trip = %v", got)
		}
	})

	t.Run("compose applies other first", func(t *testing.T) {
		other := NewTransform2D(mgl64.Vec2{1, 1}, 0.3)
		p := mgl64.Vec2{-2, 0.5}
		want := tr.Apply(other.Apply(p))
		if got := tr.Compose(other).Apply(p); !vec2Equal(got, want, 1e-12) {
			t.Errorf("Compose = %v, want %v", got, want)
		}
	})

	t.Run("rotate ignores translation", func(t *testing.T) {
		v := mgl64.Vec2{1, 0}
		if got := tr.InverseRotate(tr.Rotate(v)); !vec2Equal(got, v, 1e-12) {
			t.Errorf("InverseRotate(Rotate) = %v", got)
		}
	})
}

func TestTransform3D(t *testing.T) {
	tr := Transform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.QuatRotate(0.7, mgl64.Vec3{1, 1, 0}.Normalize()),
		Scale:    0.5,
	}
	other := Transform{
		Position: mgl64.Vec3{-1, 0, 4},
		Rotation: mgl64.QuatRotate(-1.2, mgl64.Vec3{0, 0, 1}),
	}
	p := mgl64.Vec3{0.2, -3, 1}

	if got := tr.Inverse().Apply(tr.Apply(p)); !vec3Equal(got, p, 1e-12) {
		t.Errorf("inverse round trip = %v", got)
	}

	want := tr.Apply(other.Apply(p))
	if got := tr.Compose(other).Apply(p); !vec3Equal(got, want, 1e-12) {
		t.Errorf("Compose = %v, want %v", got, want)
	}

	var id Transform
	if got := id.Apply(p); !vec3Equal(got, p, 1e-15) {
		t.Errorf("zero transform Apply = %v", got)
	}
}

func TestBodyRelativeTo(t *testing.T) {
	a := NewBody2D(NewTransform2D(mgl64.Vec2{1, 1}, math.Pi/3), &Point2D{})
	b := NewBody2D(NewTransform2D(mgl64.Vec2{4, -2}, -0.4), &Point2D{Position: mgl64.Vec2{0.5, 0.5}})

	rel := a.RelativeTo(b)
	local := b.Shape.Vertex(0)

	// b's vertex placed by the relative transform lands where a's frame sees it
	want := a.Transform.Inverse().Apply(b.Transform.Apply(local))
	if got := rel.Apply(local); !vec2Equal(got, want, 1e-12) {
		t.Errorf("RelativeTo().Apply = %v, want %v", got, want)
	}

	if got := b.SupportWorld(mgl64.Vec2{1, 0}); !vec2Equal(got, b.Transform.Apply(local), 1e-12) {
		t.Errorf("SupportWorld = %v", got)
	}

	box := NewBody(NewTransform(), &Cuboid{HalfExtents: mgl64.Vec3{1, 1, 1}})
	box.Transform.Position = mgl64.Vec3{0, 0, 5}
	if got := box.SupportWorld(mgl64.Vec3{1, 1, 1}); !vec3Equal(got, mgl64.Vec3{1, 1, 6}, 1e-12) {
		t.Errorf("3D SupportWorld = %v", got)
	}
}

func TestVec2Helpers(t *testing.T) {
	if got := Cross2D(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}); got != 1 {
		t.Errorf("Cross2D(x, y) = %v, want 1", got)
	}

	n := LeftNormal(mgl64.Vec2{2, 0})
	if !n.ApproxEqual(mgl64.Vec2{0, 1}) {
		t.Errorf("LeftNormal(+x) = %v, want +y", n)
	}
	if n := LeftNormal(mgl64.Vec2{}); n != (mgl64.Vec2{}) {
		t.Errorf("LeftNormal(0) = %v, want zero", n)
	}

	// origin projects on the middle of the segment
	if got := SegmentParameter(mgl64.Vec2{-1, 1}, mgl64.Vec2{1, 1}); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("SegmentParameter = %v, want 0.5", got)
	}
	if got := SegmentParameter(mgl64.Vec2{1, 1}, mgl64.Vec2{1, 1}); got != 0 {
		t.Errorf("SegmentParameter of a point = %v, want 0", got)
	}
}
