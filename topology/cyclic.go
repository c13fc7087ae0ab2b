package topology

// Winding tells how two cyclic sequences matched.
type Winding int

const (
	// NoMatch means the sequences describe different loops.
	NoMatch Winding = iota
	// SameWinding means the query is a rotation of the candidate.
	SameWinding
	// ReversedWinding means the query is a rotation of the reversed candidate.
	ReversedWinding
)

func (w Winding) String() string {
	switch w {
	case SameWinding:
		return "same"
	case ReversedWinding:
		return "reversed"
	default:
		return "none"
	}
}

// Matches reports whether the loops are equal, whatever their winding.
func (w Winding) Matches() bool {
	return w != NoMatch
}

// MatchCyclic compares two cyclic sequences.
//
// For every index s where candidate[s] == query[0], the continuation direction is
// chosen by comparing candidate[s±1] with query[1], then the remainder is walked in
// that direction with wraparound. Both directions are tried when they are ambiguous
// (loops of length 2, or repeated elements), so the comparison never reports a
// false negative. Empty sequences are equal; length 1 compares the single element.
//
// A reversed loop is reported as ReversedWinding rather than NoMatch: it names the
// same face seen from the other side, and callers decide whether winding matters.
func MatchCyclic(candidate, query []int) Winding {
	n := len(candidate)
	if n != len(query) {
		return NoMatch
	}
	switch n {
	case 0:
		return SameWinding
	case 1:
		if candidate[0] == query[0] {
			return SameWinding
		}
		return NoMatch
	}

	// Same winding wins over reversed when both fit.
	for s := 0; s < n; s++ {
		if candidate[s] == query[0] && candidate[(s+1)%n] == query[1] && walkCyclic(candidate, query, s, 1) {
			return SameWinding
		}
	}
	for s := 0; s < n; s++ {
		if candidate[s] == query[0] && candidate[(s+n-1)%n] == query[1] && walkCyclic(candidate, query, s, -1) {
			return ReversedWinding
		}
	}

	return NoMatch
}

// walkCyclic compares query against candidate starting at candidate[start] and
// stepping by step (+1 or -1) with wraparound.
func walkCyclic(candidate, query []int, start, step int) bool {
	n := len(candidate)
	idx := start
	for i := 0; i < n; i++ {
		if candidate[idx] != query[i] {
			return false
		}
		idx = (idx + step + n) % n
	}
	return true
}

// Rotate returns a copy of loop rotated left by k positions.
func Rotate(loop []int, k int) []int {
	n := len(loop)
	out := make([]int, n)
	if n == 0 {
		return out
	}
	k = ((k % n) + n) % n
	for i := range loop {
		out[i] = loop[(i+k)%n]
	}
	return out
}

// Reverse returns a copy of loop in the opposite order.
func Reverse(loop []int) []int {
	n := len(loop)
	out := make([]int, n)
	for i, v := range loop {
		out[n-1-i] = v
	}
	return out
}
