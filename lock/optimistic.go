// Package lock implements the optimistic read-write lock that B-tree nodes
// and the sparse array's root/first pointers use to coordinate concurrent
// readers against a single writer at a time.
//
// A version counter sits next to the data it protects. Even values mean
// stable; odd values mean a writer currently holds the lock. A reader
// samples the counter, reads the protected fields, then samples the counter
// again: if either sample was odd, or the two differ, the read raced a
// writer and must be retried by the caller. This is the same
// sample-act-resample shape as a lock-free CAS retry loop, just applied to a
// read instead of a write.
package lock

import "sync/atomic"

// RW is an optimistic read-write lock. The zero value is a valid, unlocked
// lock at version 0.
type RW struct {
	version atomic.Uint64
}

// Lease is a version snapshot taken by StartRead. It is meaningless outside
// the RW it was taken from.
type Lease uint64

// StartRead returns a lease without blocking any writer. The caller must
// later call Validate or EndRead before trusting anything it read under the
// lease.
func (l *RW) StartRead() Lease {
	return Lease(l.version.Load())
}

// Validate reports whether no write has committed since lease was taken.
// An odd current version (writer in progress) always fails validation.
func (l *RW) Validate(lease Lease) bool {
	cur := l.version.Load()
	return cur == uint64(lease) && cur&1 == 0
}

// EndRead is Validate named for the end of a read-critical section; kept as
// a distinct method so call sites read as "I'm done, was I right".
func (l *RW) EndRead(lease Lease) bool {
	return l.Validate(lease)
}

// TryStartWrite attempts to move the version from an even value v to v+1 via
// a single compare-and-swap. It does not spin; callers that must eventually
// succeed use StartWrite.
func (l *RW) TryStartWrite() bool {
	v := l.version.Load()
	if v&1 != 0 {
		return false
	}
	return l.version.CompareAndSwap(v, v+1)
}

// StartWrite spins until it acquires the write lock.
func (l *RW) StartWrite() {
	for !l.TryStartWrite() {
		// Busy-wait: backoff under contention is left to the caller; this
		// lock only promises the CAS will eventually succeed.
	}
}

// TryUpgrade attempts to atomically promote a still-valid read lease to a
// write lock. It fails (without side effects) if any writer has touched the
// version since the lease was taken.
func (l *RW) TryUpgrade(lease Lease) bool {
	v := uint64(lease)
	if v&1 != 0 {
		return false
	}
	return l.version.CompareAndSwap(v, v+1)
}

// EndWrite releases the write lock and publishes the writer's changes by
// advancing the version to the next even number.
func (l *RW) EndWrite() {
	v := l.version.Load()
	l.version.Store(v + 1)
}

// AbortWrite releases the write lock without publishing any change,
// restoring the version that was current before the write started.
func (l *RW) AbortWrite() {
	v := l.version.Load()
	l.version.Store(v - 1)
}

// IsWriteLocked reports whether a writer currently holds the lock. Intended
// for assertions, not for synchronization decisions.
func (l *RW) IsWriteLocked() bool {
	return l.version.Load()&1 != 0
}
