package topology

import "github.com/pkg/errors"

// Errors
var (
	ErrInvalidID    = errors.New("invalid vertex, edge or face ID")
	ErrDegenerate   = errors.New("edge endpoints must differ")
	ErrShortLoop    = errors.New("face loop needs at least 3 elements")
	ErrRepeatedID   = errors.New("face loop repeats an element")
	ErrBrokenCycle  = errors.New("edges do not form a single vertex cycle")
	ErrNotFound     = errors.New("no matching element")
	ErrInUse        = errors.New("vertex still referenced by edges or faces")
	ErrShared       = errors.New("topology is shared and can no longer be modified")
	ErrReleased     = errors.New("topology was released")
	ErrInconsistent = errors.New("inconsistent topology")
)
