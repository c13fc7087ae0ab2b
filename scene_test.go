package convex

import (
	"testing"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene(t *testing.T) {
	scene := NewScene(0, 0)
	require.NotNil(t, scene.SpatialGrid)

	a := square(0, 0)
	b := square(0.6, 0)
	far := square(20, 20)
	circle := actor.NewBody2D(actor.NewTransform2D(mgl64.Vec2{-1.2, 0}, 0), actor.NewCircle(0.75, 32))

	for _, body := range []*actor.Body2D{a, b, far, circle} {
		scene.AddBody(body)
	}

	// a-b and a-circle overlap; b-circle bounds do not
	assert.Len(t, scene.Pairs(), 2)

	contacts := scene.Contacts()
	require.Len(t, contacts, 2)
	for _, contact := range contacts {
		assert.Same(t, a, contact.BodyA)
		assert.Greater(t, contact.Depth, 0.0)
	}

	assert.True(t, scene.RemoveBody(a))
	assert.False(t, scene.RemoveBody(a))
	assert.Len(t, scene.Bodies, 3)
	assert.Empty(t, scene.Contacts())
}

func TestSceneTouchingBodies(t *testing.T) {
	scene := NewScene(1, 64)
	scene.AddBody(square(0, 0))
	scene.AddBody(square(1, 0))

	contacts := scene.Contacts()
	require.Len(t, contacts, 1)
	assert.InDelta(t, 0.0, contacts[0].Depth, gjk.Epsilon)
}
