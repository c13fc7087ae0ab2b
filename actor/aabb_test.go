package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name  string
		other AABB
		want  bool
	}{
		{"separated on X", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"separated on Y (negative)", AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}}, false},
		{"separated on Z", AABB{Min: mgl64.Vec3{0, 0, 1.5}, Max: mgl64.Vec3{1, 1, 2}}, false},
		{"separated on one axis only", AABB{Min: mgl64.Vec3{0.5, 0.5, 3}, Max: mgl64.Vec3{2, 2, 4}}, false},
		{"partial overlap", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{1.5, 1.5, 1.5}}, true},
		{"contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
		{"face touching", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"corner touching", AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 2, 2}}, true},
		{"flat box crossing", AABB{Min: mgl64.Vec3{-1, -1, 0.5}, Max: mgl64.Vec3{2, 2, 0.5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(unit); got != tt.want {
				t.Errorf("Overlaps() is not symmetric")
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name  string
		point mgl64.Vec3
		want  bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"face center", mgl64.Vec3{0, 0, -1}, true},
		{"just outside", mgl64.Vec3{1.0001, 0, 0}, false},
		{"far away", mgl64.Vec3{-10, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	r := Rect{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{1, 1}}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"separated", Rect{Min: mgl64.Vec2{2, 0}, Max: mgl64.Vec2{3, 1}}, false},
		{"edge touching", Rect{Min: mgl64.Vec2{1, 0}, Max: mgl64.Vec2{2, 1}}, true},
		{"overlapping", Rect{Min: mgl64.Vec2{0.5, -0.5}, Max: mgl64.Vec2{1.5, 0.5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}

	if !r.ContainsPoint(mgl64.Vec2{0.5, 1}) {
		t.Error("rectangle should contain a point on its edge")
	}
}

func TestBounds2D(t *testing.T) {
	square := &Rectangle{HalfExtents: mgl64.Vec2{1, 1}}

	t.Run("translated", func(t *testing.T) {
		got := Bounds2D(square, NewTransform2D(mgl64.Vec2{5, -2}, 0))
		if !vec2Equal(got.Min, mgl64.Vec2{4, -3}, 1e-12) || !vec2Equal(got.Max, mgl64.Vec2{6, -1}, 1e-12) {
			t.Errorf("Bounds2D = %v", got)
		}
	})

	t.Run("rotated 45 degrees", func(t *testing.T) {
		got := Bounds2D(square, NewTransform2D(mgl64.Vec2{}, math.Pi/4))
		s := math.Sqrt2
		if !vec2Equal(got.Min, mgl64.Vec2{-s, -s}, 1e-9) || !vec2Equal(got.Max, mgl64.Vec2{s, s}, 1e-9) {
			t.Errorf("Bounds2D = %v", got)
		}
	})

	t.Run("scaled", func(t *testing.T) {
		got := Bounds2D(square, Transform2D{Scale: 3})
		if !vec2Equal(got.Max, mgl64.Vec2{3, 3}, 1e-12) {
			t.Errorf("Bounds2D = %v", got)
		}
	})
}

func TestBounds3D(t *testing.T) {
	box := &Cuboid{HalfExtents: mgl64.Vec3{1, 2, 3}}
	tr := NewTransform()
	tr.Position = mgl64.Vec3{1, 1, 1}

	got := Bounds3D(box, tr)
	if !vec3Equal(got.Min, mgl64.Vec3{0, -1, -2}, 1e-12) || !vec3Equal(got.Max, mgl64.Vec3{2, 3, 4}, 1e-12) {
		t.Errorf("Bounds3D = %v", got)
	}

	tr.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	got = Bounds3D(box, tr)
	if !vec3Equal(got.Min, mgl64.Vec3{-1, 0, -2}, 1e-9) || !vec3Equal(got.Max, mgl64.Vec3{3, 2, 4}, 1e-9) {
		t.Errorf("rotated Bounds3D = %v", got)
	}
}
