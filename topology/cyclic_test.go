package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchCyclic(t *testing.T) {
	tests := []struct {
		name      string
		candidate []int
		query     []int
		expected  Winding
	}{
		{"empty", []int{}, []int{}, SameWinding},
		{"single equal", []int{4}, []int{4}, SameWinding},
		{"single different", []int{4}, []int{5}, NoMatch},
		{"length mismatch", []int{1, 2, 3}, []int{1, 2}, NoMatch},
		{"identity", []int{1, 2, 3}, []int{1, 2, 3}, SameWinding},
		{"rotation", []int{1, 2, 3, 4}, []int{3, 4, 1, 2}, SameWinding},
		{"reversed", []int{1, 2, 3, 4}, []int{4, 3, 2, 1}, ReversedWinding},
		{"reversed rotation", []int{1, 2, 3, 4}, []int{2, 1, 4, 3}, ReversedWinding},
		{"same start other order", []int{1, 2, 3, 4}, []int{1, 3, 2, 4}, NoMatch},
		{"missing element", []int{1, 2, 3}, []int{1, 2, 4}, NoMatch},
		{"pair", []int{7, 8}, []int{8, 7}, SameWinding},
		{"repeated elements", []int{1, 2, 1, 3}, []int{1, 3, 1, 2}, SameWinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchCyclic(tt.candidate, tt.query))
		})
	}
}

func TestMatchCyclicAllRotations(t *testing.T) {
	for n := 3; n <= 9; n++ {
		loop := make([]int, n)
		for i := range loop {
			loop[i] = i * 10
		}
		for r := 0; r < n; r++ {
			assert.Equal(t, SameWinding, MatchCyclic(loop, Rotate(loop, r)), "n=%d r=%d", n, r)
			assert.Equal(t, ReversedWinding, MatchCyclic(loop, Rotate(Reverse(loop), r)), "n=%d r=%d", n, r)
		}
	}
}

func TestRotateReverse(t *testing.T) {
	assert.Equal(t, []int{3, 4, 1, 2}, Rotate([]int{1, 2, 3, 4}, 2))
	assert.Equal(t, []int{4, 1, 2, 3}, Rotate([]int{1, 2, 3, 4}, -1))
	assert.Equal(t, []int{}, Rotate([]int{}, 3))
	assert.Equal(t, []int{3, 2, 1}, Reverse([]int{1, 2, 3}))
	assert.Equal(t, "reversed", ReversedWinding.String())
	assert.False(t, NoMatch.Matches())
}
