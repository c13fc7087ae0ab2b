package topology

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Acquire registers one more owner and returns t, so a template can hand out
// its structure with `inst.topo = tmpl.topo.Acquire()`.
func (t *Topology) Acquire() *Topology {
	t.refs.Add(1)
	return t
}

// Release drops one owner and returns the remaining count. The last release frees the
// incidence data; every id becomes invalid afterwards.
func (t *Topology) Release() int32 {
	n := t.refs.Add(-1)
	switch {
	case n == 0:
		t.vertices, t.edges, t.faces = nil, nil, nil
	case n < 0:
		klog.Warningf("topology: Release called %d time(s) too often", -n)
		t.refs.Store(0)
		n = 0
	}
	return n
}

// Refs returns the current number of owners.
func (t *Topology) Refs() int32 {
	return t.refs.Load()
}

// Shared reports whether more than one owner holds t.
func (t *Topology) Shared() bool {
	return t.refs.Load() > 1
}

// writable rejects structural edits once the topology is shared or released.
func (t *Topology) writable() error {
	switch n := t.refs.Load(); {
	case n <= 0:
		return ErrReleased
	case n > 1:
		return errors.Wrapf(ErrShared, "%d owners", n)
	}
	return nil
}
