// Package state owns the process-wide snapshot: it rebuilds the roster index
// and day tables from the remote store on a timer and swaps them in
// atomically. Readers always see either the fully-old or fully-new snapshot,
// never a mix, so no locking is needed on the request path.
package state

import (
	"sync/atomic"

	"checkin/internal/checkin"
)

// Container holds the current snapshot behind an atomic pointer. The nil
// state means the first successful build has not happened yet.
type Container struct {
	snap atomic.Pointer[checkin.Snapshot]
}

// NewContainer starts empty (not ready).
func NewContainer() *Container {
	return &Container{}
}

// Current returns the latest snapshot, or nil before the first successful
// build.
func (c *Container) Current() *checkin.Snapshot {
	return c.snap.Load()
}

// Ready reports whether a first successful build has completed.
func (c *Container) Ready() bool {
	return c.snap.Load() != nil
}

func (c *Container) swap(s *checkin.Snapshot) {
	c.snap.Store(s)
}
