package bufcache

// slotNone marks an absent list neighbor: either end of a bucket's list
// (and headIdx/tailIdx of an empty bucket), or (transiently, during init)
// a slot not yet linked.
const slotNone = -1

// slot is one buffer slot: per-block metadata, the content buffer, and
// this slot's place in its bucket's intrusive doubly-linked list. prev
// and next are arena indices rather than pointers (spec §9: "an
// arena-of-slots plus a bucket-keyed index ... avoids self-referential
// ownership and cycles"), the same trick ecache2's cache[K].dlnk uses for
// its LRU list.
type slot struct {
	dev     uint32
	blockno uint32
	valid   bool
	refcnt  uint32

	data []byte

	prev int32
	next int32

	lock contentLock
}

// Slot is the client-facing handle returned by Read and passed to
// Write/Release/Pin/Unpin. It wraps the internal arena slot plus its pool
// index, so Release can relink the slot in its bucket's list by index;
// the bucket itself is still located from the slot's blockno.
type Slot struct {
	idx int32
	s   *slot
}

// Data returns the slot's content buffer. Valid to read/write only while
// the caller holds the slot (between Read/Write and the matching
// Release).
func (h Slot) Data() []byte {
	return h.s.data
}

// Dev returns the device id this slot is currently caching a block for.
func (h Slot) Dev() uint32 { return h.s.dev }

// Blockno returns the block number this slot is currently caching.
func (h Slot) Blockno() uint32 { return h.s.blockno }

// Valid reports whether the slot's content has been filled from disk.
func (h Slot) Valid() bool { return h.s.valid }
