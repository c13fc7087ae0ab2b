package convex

import (
	"math"
	"sort"

	"github.com/akmonengine/convex/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a grid cell.
type CellKey struct {
	X, Y int
}

// Cell holds the indices of the bodies overlapping it.
type Cell struct {
	bodyIndices []int
}

// Pair is two bodies whose bounds overlap.
type Pair struct {
	BodyA *actor.Body2D
	BodyB *actor.Body2D
}

// SpatialGrid is a uniform grid hashed into a fixed number of cells, used as broad phase.
// Cells far apart may share a bucket; FindPairs filters those out with a bounds test.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of square cells. numCells is rounded up to a power of two.
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the body to every cell its bounds cover.
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.Body2D) {
	bounds := body.Bounds()
	minCell := sg.worldToCell(bounds.Min)
	maxCell := sg.worldToCell(bounds.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			cell := &sg.cells[cellIdx]

			// A body covering two cells of the same bucket is stored once
			if n := len(cell.bodyIndices); n > 0 && cell.bodyIndices[n-1] == bodyIndex {
				continue
			}
			cell.bodyIndices = append(cell.bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs returns each pair of overlapping bodies once, ordered by the index of the first
// body. Two static bodies are never paired. bodies must be the slice the grid was filled
// from.
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body2D) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)
	seen := make([]int, len(bodies))
	for i := range seen {
		seen[i] = -1
	}

	for bodyIdx, bodyA := range bodies {
		boundsA := bodyA.Bounds()
		minCell := sg.worldToCell(boundsA.Min)
		maxCell := sg.worldToCell(boundsA.Max)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					// (A, B) only, never (B, A) or twice from different cells
					if otherIdx <= bodyIdx || seen[otherIdx] == bodyIdx {
						continue
					}
					seen[otherIdx] = bodyIdx

					bodyB := bodies[otherIdx]
					if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
						continue
					}
					if boundsA.Overlaps(bodyB.Bounds()) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
