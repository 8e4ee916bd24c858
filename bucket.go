package bufcache

// bucket is a hashed partition of the slot pool: a metadata spin lock
// guarding a doubly-linked list of slot indices, in strict LRU order
// (head = most recently used, tail = least recently used / next eviction
// candidate). Where xv6's struct bbucket uses a sentinel struct buf as a
// circular list head, this list is not circular: headIdx/tailIdx name its
// two ends, and the end slots' prev/next are slotNone.
//
// headIdx/tailIdx are slotNone when the bucket is empty. All list surgery
// below assumes the caller already holds lock.
type bucket struct {
	lock    spinLock
	headIdx int32
	tailIdx int32
}

func newBucket() bucket {
	return bucket{headIdx: slotNone, tailIdx: slotNone}
}

// insertHead links slot i at the head (MRU end) of the bucket's list.
// Caller holds b.lock.
func (b *bucket) insertHead(slots []slot, i int32) {
	slots[i].prev = slotNone
	slots[i].next = b.headIdx
	if b.headIdx != slotNone {
		slots[b.headIdx].prev = i
	}
	b.headIdx = i
	if b.tailIdx == slotNone {
		b.tailIdx = i
	}
}

// detach unlinks slot i from wherever it sits in the bucket's list.
// Caller holds b.lock. i must currently belong to this bucket.
func (b *bucket) detach(slots []slot, i int32) {
	p, n := slots[i].prev, slots[i].next
	if p != slotNone {
		slots[p].next = n
	} else {
		b.headIdx = n
	}
	if n != slotNone {
		slots[n].prev = p
	} else {
		b.tailIdx = p
	}
	slots[i].prev, slots[i].next = slotNone, slotNone
}

// findMatch scans head -> tail for a slot already caching (dev, blockno).
// Caller holds b.lock.
func (b *bucket) findMatch(slots []slot, dev, blockno uint32) int32 {
	for i := b.headIdx; i != slotNone; i = slots[i].next {
		// Identity match is a hit regardless of valid: a slot can be
		// mid-fill (valid=false, refcnt>0) for a racing reader, and a
		// second concurrent reader of the same cold block must join
		// rather than duplicate the entry (S4).
		if slots[i].dev == dev && slots[i].blockno == blockno {
			return i
		}
	}
	return slotNone
}

// findFree scans tail -> head (oldest first) for a slot with refcnt 0 —
// the LRU eviction scan.
func (b *bucket) findFree(slots []slot) int32 {
	for i := b.tailIdx; i != slotNone; i = slots[i].prev {
		if slots[i].refcnt == 0 {
			return i
		}
	}
	return slotNone
}
