package bufcache

import "go.uber.org/zap"

// Cache is the public handle onto the block buffer cache. One Cache wraps
// one pool and one disk collaborator; clients obtain it once at boot
// (spec §4.1/§6's Init) and call Read/Write/Release/Pin/Unpin on it for
// the process lifetime.
type Cache struct {
	p    *pool
	disk Disk
	m    metrics
	log  kernelLog
}

// Open builds the pool and its buckets and returns a ready-to-use Cache.
// This is spec's init(): no client may call any other operation before it
// returns, and there is no dynamic resizing or re-init afterward.
//
// logger may be nil, in which case the cache logs nothing (zap.NewNop()).
func Open(cfg Config, disk Disk, logger *zap.Logger) (*Cache, error) {
	p, err := newPool(cfg)
	if err != nil {
		return nil, err
	}
	log := newKernelLog(logger)
	log.init(cfg)
	return &Cache{p: p, disk: disk, log: log}, nil
}

// Read returns a locked slot with valid contents for (dev, blockno).
// On a cache miss it issues a synchronous disk read before returning;
// the content lock, held across the read, serializes concurrent readers
// of the same cold block so exactly one disk_rw is issued (S4).
func (c *Cache) Read(dev, blockno uint32) Slot {
	h := c.get(dev, blockno)
	if !h.s.valid {
		c.log.diskRW(dev, blockno, false)
		c.disk.ReadWrite(dev, blockno, h.s.data, false)
		h.s.valid = true
	}
	return h
}

// Write issues a synchronous disk write of the slot's contents. The
// caller must hold the slot's content lock (i.e. h must be the Slot
// returned by the matching Read and not yet Released) — violating this
// is a fatal kernel bug, not a recoverable error.
func (c *Cache) Write(h Slot) {
	if !h.s.lock.isHeld() {
		c.kpanic(ErrNotLocked, "op", "write", "dev", h.s.dev, "blockno", h.s.blockno)
	}
	c.log.diskRW(h.s.dev, h.s.blockno, true)
	c.disk.ReadWrite(h.s.dev, h.s.blockno, h.s.data, true)
	c.log.write(h.s.dev, h.s.blockno, fingerprint(h.s.data))
}

// Release releases the slot's content lock and drops one reference. If
// the refcount reaches zero, the slot is reinserted at its bucket's MRU
// head (spec §4.5) — LRU position changes only here, never on a get hit
// (spec §4.2/§9, intentionally bug-compatible with xv6).
func (c *Cache) Release(h Slot) {
	if !h.s.lock.isHeld() {
		c.kpanic(ErrNotLocked, "op", "release", "dev", h.s.dev, "blockno", h.s.blockno)
	}
	h.s.lock.Unlock()

	b := &c.p.buckets[c.p.bucketIndex(h.s.blockno)]
	b.lock.lock()
	h.s.refcnt--
	if h.s.refcnt == 0 {
		b.detach(c.p.slots, h.idx)
		b.insertHead(c.p.slots, h.idx)
	}
	b.lock.unlock()
}

// Pin raises the slot's reference count without taking its content lock,
// letting a caller keep it resident across other blocking operations
// (e.g. a filesystem transaction) without having to hold the slot's
// content lock for that whole duration.
func (c *Cache) Pin(h Slot) {
	b := &c.p.buckets[c.p.bucketIndex(h.s.blockno)]
	b.lock.lock()
	h.s.refcnt++
	b.lock.unlock()
	c.m.pinned.Add(1)
}

// Unpin is Pin's inverse.
func (c *Cache) Unpin(h Slot) {
	b := &c.p.buckets[c.p.bucketIndex(h.s.blockno)]
	b.lock.lock()
	h.s.refcnt--
	b.lock.unlock()
	c.m.pinned.Add(-1)
}

// Stats returns a point-in-time snapshot of cache activity counters.
func (c *Cache) Stats() Stats {
	return c.m.snapshot()
}
