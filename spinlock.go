package bufcache

import (
	"runtime"
	"sync/atomic"
)

// spinLock is the metadata lock flavor: non-blocking acquisition, meant to
// be held only for short, sleep-free critical sections (no disk I/O, no
// content-lock acquisition while held). It never parks the calling
// goroutine on a channel or condvar — it spins, briefly, the way a kernel
// spinlock disables preemption instead of yielding the executor.
//
// The type system can't forbid acquiring a contentLock while a spinLock
// is held (Go has no notion of "this goroutine currently holds a spin
// lock"), so that rule is enforced by convention only:
// never call contentLock.Lock while a spinLock is held.
type spinLock struct {
	state atomic.Bool
}

const spinActiveIters = 30

// lock spins, briefly busy-waiting before yielding the goroutine, mirroring
// the active-spin-then-passive-spin shape of a futex-backed mutex.
func (s *spinLock) lock() {
	for {
		for i := 0; i < spinActiveIters; i++ {
			if s.state.CompareAndSwap(false, true) {
				return
			}
		}
		runtime.Gosched()
	}
}

func (s *spinLock) unlock() {
	s.state.Store(false)
}
