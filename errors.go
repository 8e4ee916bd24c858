package bufcache

import "errors"

// ErrNoBuffers is the fatal condition raised when the pool is exhausted
// by live (pinned) references — every slot in every bucket has refcnt >
// 0, so phase 3's steal scan found no victim anywhere. Per spec §5/§7
// this is a kernel bug elsewhere, not a condition callers recover from.
var ErrNoBuffers = errors.New("bufcache: no buffers")

// ErrNotLocked is the fatal condition raised when Write or Release is
// called on a slot whose content lock the caller does not hold.
var ErrNotLocked = errors.New("bufcache: content lock not held")

// ErrDiskCorruption is raised by MemDisk when a stored block's xxhash
// fingerprint no longer matches its bytes on read-back — the in-memory
// stand-in's own representation was corrupted. It is a fatal condition
// for the same reason the other two are: it should never happen, and
// papering over it would mask a real bug instead of surfacing it.
var ErrDiskCorruption = errors.New("bufcache: disk block corruption detected")

// PanicError wraps a fatal invariant violation. It is what the cache
// panics with, so a test (or an embedding caller that chooses to recover,
// against the spec's advice) can recover() and inspect the cause via
// errors.As/errors.Is.
type PanicError struct {
	Err error
}

func (e *PanicError) Error() string { return e.Err.Error() }
func (e *PanicError) Unwrap() error { return e.Err }

// kpanic raises a fatal kernel invariant violation. It logs a structured
// breadcrumb (if a logger is configured) and then panics — logging never
// substitutes for the panic the spec requires.
func (c *Cache) kpanic(cause error, fields ...any) {
	c.log.fatal(cause, fields...)
	panic(&PanicError{Err: cause})
}
