package bufcache

import "sync"

// Disk is the cache's single collaborator toward the block device:
// synchronously transfer BLOCKSIZE bytes between buf and block
// (dev, blockno), returning only on completion. Per spec §6/§7, the
// cache assumes this always succeeds — driver-level errors are out of
// scope, so there is no error return.
type Disk interface {
	ReadWrite(dev, blockno uint32, buf []byte, write bool)
}

// diskBlock is a stored block plus the xxhash fingerprint it was written
// with, so a read back can validate the stored representation wasn't
// corrupted in place (MemDisk's internal map is the only thing standing
// in for a real block device's bytes, so this is the one place that can
// catch it silently drifting).
type diskBlock struct {
	data []byte
	fp   uint64
}

// MemDisk is an in-memory Disk used by tests: a synchronous, lock-guarded
// map of block contents. There is no teacher equivalent (ecache2 has no
// I/O layer); it exists only because this module needs a pluggable
// stand-in for the real block device spec.md delegates to.
type MemDisk struct {
	mu     sync.Mutex
	blocks map[uint64]diskBlock

	// ReadCount records how many times ReadWrite was called with write=false,
	// keyed by (dev, blockno) — used by S1/S4 to assert a cold read issues
	// exactly one disk_rw and a warm hit issues none.
	ReadCount map[uint64]int
}

func NewMemDisk() *MemDisk {
	return &MemDisk{
		blocks:    make(map[uint64]diskBlock),
		ReadCount: make(map[uint64]int),
	}
}

func diskKey(dev, blockno uint32) uint64 {
	return uint64(dev)<<32 | uint64(blockno)
}

func (d *MemDisk) ReadWrite(dev, blockno uint32, buf []byte, write bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := diskKey(dev, blockno)
	if write {
		stored := make([]byte, len(buf))
		copy(stored, buf)
		d.blocks[key] = diskBlock{data: stored, fp: fingerprint(stored)}
		return
	}

	d.ReadCount[key]++
	if block, ok := d.blocks[key]; ok {
		if fingerprint(block.data) != block.fp {
			panic(&PanicError{Err: ErrDiskCorruption})
		}
		copy(buf, block.data)
		for i := len(block.data); i < len(buf); i++ {
			buf[i] = 0
		}
		return
	}
	for i := range buf {
		buf[i] = 0
	}
}

// Reads returns how many times block (dev, blockno) was read from disk.
func (d *MemDisk) Reads(dev, blockno uint32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ReadCount[diskKey(dev, blockno)]
}
