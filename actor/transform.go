package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform2D places a 2D shape: uniform scale, then rotation by Angle (radians), then
// translation by Position. A zero Scale is read as 1 so the zero value is the identity.
type Transform2D struct {
	Position mgl64.Vec2
	Angle    float64
	Scale    float64
}

// NewTransform2D creates a rigid (unscaled) transform.
func NewTransform2D(position mgl64.Vec2, angle float64) Transform2D {
	return Transform2D{Position: position, Angle: angle, Scale: 1}
}

func (t Transform2D) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Apply maps a point from the local frame to the parent frame.
func (t Transform2D) Apply(p mgl64.Vec2) mgl64.Vec2 {
	return t.Position.Add(t.Rotate(p.Mul(t.scale())))
}

// Rotate turns a direction by the transform's angle. Scale and translation are ignored.
func (t Transform2D) Rotate(v mgl64.Vec2) mgl64.Vec2 {
	if t.Angle == 0 {
		return v
	}
	return mgl64.Rotate2D(t.Angle).Mul2x1(v)
}

// InverseRotate turns a direction by the opposite angle.
func (t Transform2D) InverseRotate(v mgl64.Vec2) mgl64.Vec2 {
	if t.Angle == 0 {
		return v
	}
	return mgl64.Rotate2D(-t.Angle).Mul2x1(v)
}

// Inverse returns the transform mapping parent-frame points back to the local frame.
func (t Transform2D) Inverse() Transform2D {
	s := 1 / t.scale()
	return Transform2D{
		Position: t.InverseRotate(t.Position).Mul(-s),
		Angle:    -t.Angle,
		Scale:    s,
	}
}

// Compose returns t∘other: other is applied first.
func (t Transform2D) Compose(other Transform2D) Transform2D {
	return Transform2D{
		Position: t.Apply(other.Position),
		Angle:    t.Angle + other.Angle,
		Scale:    t.scale() * other.scale(),
	}
}

// Transform places a 3D shape: uniform scale, rotation, then translation.
// A zero Rotation quaternion and a zero Scale are read as identity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    1,
	}
}

func (t Transform) rotation() mgl64.Quat {
	if t.Rotation == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Apply maps a point from the local frame to the parent frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.rotation().Rotate(p.Mul(t.scale())))
}

// Rotate turns a direction by the transform's rotation.
func (t Transform) Rotate(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(v)
}

// InverseRotate turns a direction by the inverse rotation.
func (t Transform) InverseRotate(v mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(v)
}

// Inverse returns the transform mapping parent-frame points back to the local frame.
func (t Transform) Inverse() Transform {
	s := 1 / t.scale()
	inv := t.rotation().Conjugate()
	return Transform{
		Position: inv.Rotate(t.Position).Mul(-s),
		Rotation: inv,
		Scale:    s,
	}
}

// Compose returns t∘other: other is applied first.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Position: t.Apply(other.Position),
		Rotation: t.rotation().Mul(other.rotation()).Normalize(),
		Scale:    t.scale() * other.scale(),
	}
}
