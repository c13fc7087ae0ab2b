package convex

import (
	"github.com/akmonengine/convex/actor"
	"github.com/plan-systems/klog"
)

// Default grid parameters of NewScene.
const (
	DefaultCellSize = 4.0
	DefaultNumCells = 1024
)

// Scene holds bodies and answers which of them collide.
type Scene struct {
	// List of all bodies in the scene
	Bodies      []*actor.Body2D
	SpatialGrid *SpatialGrid
}

// NewScene creates an empty scene. Non-positive parameters select the defaults.
func NewScene(cellSize float64, numCells int) *Scene {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if numCells <= 0 {
		numCells = DefaultNumCells
	}
	return &Scene{SpatialGrid: NewSpatialGrid(cellSize, numCells)}
}

// AddBody adds a body to the scene
func (s *Scene) AddBody(body *actor.Body2D) {
	s.Bodies = append(s.Bodies, body)
}

// RemoveBody removes a body from the scene, reporting whether it was found.
func (s *Scene) RemoveBody(body *actor.Body2D) bool {
	k := -1
	for i, b := range s.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k == -1 {
		return false
	}
	s.Bodies = append(s.Bodies[:k], s.Bodies[k+1:]...)
	return true
}

// Pairs returns the body pairs whose bounds overlap.
func (s *Scene) Pairs() []Pair {
	if s.SpatialGrid == nil {
		s.SpatialGrid = NewSpatialGrid(DefaultCellSize, DefaultNumCells)
	}
	return BroadPhase(s.SpatialGrid, s.Bodies)
}

// Contacts returns a contact for every pair of overlapping or touching bodies.
func (s *Scene) Contacts() []Contact {
	pairs := s.Pairs()
	contacts := NarrowPhase(pairs)
	klog.V(2).Infof("scene: %d bodies, %d pairs, %d contacts", len(s.Bodies), len(pairs), len(contacts))
	return contacts
}
