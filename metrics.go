package bufcache

import "sync/atomic"

// metrics are plain atomic counters, cheap enough to bump on every hot
// path call. Grounded on arena-cache's statsSnapshot — atomic counters
// "useful for prometheus scraping" without actually depending on a
// prometheus client; Stats() is this module's equivalent snapshot call.
type metrics struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	steals    atomic.Uint64
	evictions atomic.Uint64
	// pinned is a gauge, not a monotonic counter: Pin increments it,
	// Unpin decrements it, so it reads the current count of outstanding
	// Pin calls not yet matched by Unpin.
	pinned atomic.Int64
}

// Stats is a point-in-time snapshot of cache activity counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Steals    uint64
	Evictions uint64
	Pinned    int64
}

func (m *metrics) snapshot() Stats {
	return Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		Steals:    m.steals.Load(),
		Evictions: m.evictions.Load(),
		Pinned:    m.pinned.Load(),
	}
}
