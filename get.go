package bufcache

// get is the heart of the cache: returns a slot whose identity is
// (dev, blockno) with its content lock held by the caller. Three phases,
// mirroring xv6 bget line for line.
func (c *Cache) get(dev, blockno uint32) Slot {
	p := c.p
	idx := p.bucketIndex(blockno)
	home := &p.buckets[idx]

	// Phase 1 — home-bucket hit or local eviction.
	home.lock.lock()
	if i := home.findMatch(p.slots, dev, blockno); i != slotNone {
		p.slots[i].refcnt++
		home.lock.unlock()
		c.m.hits.Add(1)
		return c.lockAndReturn(i)
	}
	if i := home.findFree(p.slots); i != slotNone {
		p.slots[i].dev, p.slots[i].blockno, p.slots[i].valid, p.slots[i].refcnt = dev, blockno, false, 1
		home.lock.unlock()
		c.m.misses.Add(1)
		c.m.evictions.Add(1)
		return c.lockAndReturn(i)
	}
	home.lock.unlock()

	// Phase 2 — cross-bucket steal initiation: re-scan the whole pool
	// under the pool lock first, since another thread may have cached
	// this block in any bucket while we were locked out of our own.
	// The scan walks the flat slot array, not bucket by bucket, matching
	// xv6's bget re-scanning bcache.buf[0..NBUF) under bcache.lock.
	p.lock.lock()
	for i := range p.slots {
		if p.slots[i].dev == dev && p.slots[i].blockno == blockno {
			p.slots[i].refcnt++
			p.lock.unlock()
			c.m.hits.Add(1)
			return c.lockAndReturn(int32(i))
		}
	}

	// Phase 3 — steal. Still holding the pool lock.
	return c.steal(dev, blockno, idx, home)
}

// steal implements phase 3. Called with c.p.lock held; always returns
// with the pool lock released and the result slot's content lock held.
func (c *Cache) steal(dev, blockno uint32, homeIdx int, home *bucket) Slot {
	p := c.p

	for bi := range p.buckets {
		vb := &p.buckets[bi]
		vb.lock.lock()
		victim := vb.findFree(p.slots)
		if victim == slotNone {
			vb.lock.unlock()
			continue
		}

		// Found a victim. Keep the victim bucket locked while we drop the
		// pool lock — the pool lock's job (excluding other stealers) is
		// done once a victim is claimed; the victim-bucket lock now
		// protects the detach.
		p.lock.unlock()

		vb.detach(p.slots, victim)
		vb.lock.unlock()

		c.log.steal(bi, homeIdx, dev, blockno)
		return c.finishSteal(victim, dev, blockno, home)
	}

	p.lock.unlock()
	c.kpanic(ErrNoBuffers, "dev", dev, "blockno", blockno)
	panic("unreachable") // kpanic never returns; satisfies the compiler.
}

// finishSteal re-checks the home bucket before inserting the stolen slot
// (spec §9 "P2-strict" tightening of the narrow phase-3 duplicate race):
// if another thread has, in the interim, completed phase 1 on the home
// bucket and cached (dev, blockno) itself, the stolen slot is reverted to
// free in the home bucket instead of creating a duplicate entry, and the
// pre-existing slot is returned.
func (c *Cache) finishSteal(victim int32, dev, blockno uint32, home *bucket) Slot {
	p := c.p

	home.lock.lock()
	if j := home.findMatch(p.slots, dev, blockno); j != slotNone {
		p.slots[victim].refcnt = 0
		home.insertHead(p.slots, victim)
		p.slots[j].refcnt++
		home.lock.unlock()
		c.m.hits.Add(1)
		return c.lockAndReturn(j)
	}

	p.slots[victim].dev, p.slots[victim].blockno, p.slots[victim].valid, p.slots[victim].refcnt = dev, blockno, false, 1
	home.insertHead(p.slots, victim)
	home.lock.unlock()

	c.m.steals.Add(1)
	c.m.misses.Add(1)
	c.m.evictions.Add(1)
	return c.lockAndReturn(victim)
}

// lockAndReturn acquires slot i's content lock (may block) and returns
// the client-facing handle. Called with no spin lock held — acquiring a
// sleep lock while holding a spin lock is the one ordering this package
// never permits.
func (c *Cache) lockAndReturn(i int32) Slot {
	s := &c.p.slots[i]
	s.lock.Lock()
	return Slot{idx: i, s: s}
}
