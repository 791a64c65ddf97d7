// Package guard provides the mutual-exclusion gate that keeps backup and
// restore from overlapping.
package guard

import "sync/atomic"

// Guard is a non-blocking exclusion gate. At most one operation holds it
// at a time; a failed acquisition is rejected, never queued.
//
// The zero value is an idle guard ready for use.
type Guard struct {
	held atomic.Bool
}

// New returns an idle Guard.
func New() *Guard {
	return &Guard{}
}

// TryAcquire attempts to take the guard without blocking.
// It returns false if another operation already holds it.
func (g *Guard) TryAcquire() bool {
	return g.held.CompareAndSwap(false, true)
}

// Release returns the guard to idle. Calling Release on an idle guard is
// a no-op.
func (g *Guard) Release() {
	g.held.Store(false)
}

// Held reports whether an operation currently holds the guard.
func (g *Guard) Held() bool {
	return g.held.Load()
}
