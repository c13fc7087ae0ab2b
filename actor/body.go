package actor

import "github.com/go-gl/mathgl/mgl64"

// BodyType tells the broad phase which pairs are worth testing
type BodyType int

const (
	// BodyTypeDynamic bodies move and are tested against every other body
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move; two static bodies are never paired
	BodyTypeStatic
)

// Body2D places a 2D shape in the world.
type Body2D struct {
	Transform Transform2D
	Shape     Shape2D
	BodyType  BodyType
}

// NewBody2D creates a dynamic body.
func NewBody2D(transform Transform2D, shape Shape2D) *Body2D {
	return &Body2D{Transform: transform, Shape: shape, BodyType: BodyTypeDynamic}
}

// RelativeTo returns the transform mapping other's local frame into b's local frame,
// which is what the collision engines take as the relative transform of B.
func (b *Body2D) RelativeTo(other *Body2D) Transform2D {
	return b.Transform.Inverse().Compose(other.Transform)
}

// Bounds returns the world-space rectangle enclosing the body.
func (b *Body2D) Bounds() Rect {
	return Bounds2D(b.Shape, b.Transform)
}

// SupportWorld returns the world position of the shape's farthest vertex along a
// world-space direction.
func (b *Body2D) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	// 1. direction into the local frame
	localDirection := b.Transform.InverseRotate(direction)

	// 2. local support
	id := b.Shape.FarthestVertex(localDirection)
	if id < 0 {
		return b.Transform.Position
	}

	// 3. back to world space
	return b.Transform.Apply(b.Shape.Vertex(id))
}

// Body places a 3D shape in the world.
type Body struct {
	Transform Transform
	Shape     Shape3D
	BodyType  BodyType
}

// NewBody creates a dynamic body.
func NewBody(transform Transform, shape Shape3D) *Body {
	return &Body{Transform: transform, Shape: shape, BodyType: BodyTypeDynamic}
}

// RelativeTo returns the transform mapping other's local frame into b's local frame.
func (b *Body) RelativeTo(other *Body) Transform {
	return b.Transform.Inverse().Compose(other.Transform)
}

// Bounds returns the world-space box enclosing the body.
func (b *Body) Bounds() AABB {
	return Bounds3D(b.Shape, b.Transform)
}

// SupportWorld returns the world position of the shape's farthest vertex along a
// world-space direction.
func (b *Body) SupportWorld(direction mgl64.Vec3) mgl64.Vec3 {
	id := b.Shape.FarthestVertex(b.Transform.InverseRotate(direction))
	if id < 0 {
		return b.Transform.Position
	}
	return b.Transform.Apply(b.Shape.Vertex(id))
}
