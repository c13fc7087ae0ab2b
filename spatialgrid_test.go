package convex

import (
	"testing"

	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func createTestBox(position mgl64.Vec2, half float64) *actor.Body2D {
	return actor.NewBody2D(
		actor.NewTransform2D(position, 0),
		&actor.Rectangle{HalfExtents: mgl64.Vec2{half, half}},
	)
}

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	tests := []struct {
		name     string
		position mgl64.Vec2
		expected CellKey
	}{
		{"origin", mgl64.Vec2{0, 0}, CellKey{0, 0}},
		{"positive", mgl64.Vec2{1.5, 2.3}, CellKey{1, 2}},
		{"negative", mgl64.Vec2{-1.5, -2.3}, CellKey{-2, -3}},
		{"fractional", mgl64.Vec2{0.5, 0.5}, CellKey{0, 0}},
		{"large", mgl64.Vec2{100.7, -200.3}, CellKey{100, -201}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := grid.worldToCell(tt.position); result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCellInRange(t *testing.T) {
	grid := NewSpatialGrid(1.0, 10) // rounded up to 16

	if len(grid.cells) != 16 {
		t.Fatalf("Expected 16 cells, got %d", len(grid.cells))
	}

	for x := -50; x <= 50; x++ {
		for y := -50; y <= 50; y++ {
			if h := grid.hashCell(CellKey{x, y}); h < 0 || h >= len(grid.cells) {
				t.Fatalf("hashCell(%d, %d) = %d, out of range", x, y, h)
			}
		}
	}
}

func TestInsertSpanningCells(t *testing.T) {
	grid := NewSpatialGrid(1.0, 1024)
	body := createTestBox(mgl64.Vec2{1, 1}, 0.5) // covers cells 0..1 on both axes

	grid.Insert(0, body)

	for x := 0; x <= 1; x++ {
		for y := 0; y <= 1; y++ {
			cell := grid.cells[grid.hashCell(CellKey{x, y})]
			if len(cell.bodyIndices) == 0 || cell.bodyIndices[len(cell.bodyIndices)-1] != 0 {
				t.Errorf("Body missing from cell (%d, %d)", x, y)
			}
		}
	}

	grid.Clear()
	for i, cell := range grid.cells {
		if len(cell.bodyIndices) != 0 {
			t.Errorf("Cell %d not cleared", i)
		}
	}
}

func TestFindPairs(t *testing.T) {
	static := createTestBox(mgl64.Vec2{0.2, 0}, 0.4)
	static.BodyType = actor.BodyTypeStatic
	otherStatic := createTestBox(mgl64.Vec2{0.4, 0}, 0.4)
	otherStatic.BodyType = actor.BodyTypeStatic

	tests := []struct {
		name     string
		bodies   []*actor.Body2D
		expected int
	}{
		{"no collision", []*actor.Body2D{
			createTestBox(mgl64.Vec2{0, 0}, 0.4),
			createTestBox(mgl64.Vec2{10, 10}, 0.4),
		}, 0},
		{"overlap", []*actor.Body2D{
			createTestBox(mgl64.Vec2{0, 0}, 0.4),
			createTestBox(mgl64.Vec2{0.5, 0.5}, 0.4),
		}, 1},
		{"large body spanning many cells", []*actor.Body2D{
			createTestBox(mgl64.Vec2{0, 0}, 5),
			createTestBox(mgl64.Vec2{3, 3}, 0.4),
			createTestBox(mgl64.Vec2{-3, 2}, 0.4),
			createTestBox(mgl64.Vec2{20, 0}, 0.4),
		}, 2},
		{"static pair skipped", []*actor.Body2D{static, otherStatic}, 0},
		{"static and dynamic", []*actor.Body2D{static, createTestBox(mgl64.Vec2{0, 0}, 0.4)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewSpatialGrid(1.0, 64)
			pairs := BroadPhase(grid, tt.bodies)

			if len(pairs) != tt.expected {
				t.Fatalf("Expected %d pairs, got %d", tt.expected, len(pairs))
			}
			for _, pair := range pairs {
				if pair.BodyA == pair.BodyB {
					t.Error("Body paired with itself")
				}
			}
		})
	}
}
