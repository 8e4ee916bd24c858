package bufcache

// pool owns the N buffer slots and the B buckets they are distributed
// across, plus the global lock used only for cross-bucket stealing and
// the racing-cache re-scan. Mirrors xv6's package-level bcache struct.
type pool struct {
	cfg     Config
	lock    spinLock
	slots   []slot
	buckets []bucket
}

// newPool builds the pool and its buckets: each bucket's list starts
// empty, each slot's content lock is fresh, and slot i is inserted at the
// head of bucket i mod B — round-robin, exactly as xv6's binit does
// inserting bcache.buf[i] into bcache.buckets[i % NBUCKET].
func newPool(cfg Config) (*pool, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &pool{
		cfg:     cfg,
		slots:   make([]slot, cfg.N),
		buckets: make([]bucket, cfg.B),
	}
	for i := range p.buckets {
		p.buckets[i] = newBucket()
	}
	for i := range p.slots {
		p.slots[i].data = make([]byte, cfg.BlockSize)
		p.slots[i].prev = slotNone
		p.slots[i].next = slotNone

		b := &p.buckets[i%cfg.B]
		b.insertHead(p.slots, int32(i))
	}
	return p, nil
}

func (p *pool) bucketIndex(blockno uint32) int {
	return int(blockno) % p.cfg.B
}
