package bufcache

import "github.com/cespare/xxhash/v2"

// fingerprint computes a cheap content hash. It plays no role in bucket
// placement (invariant 2 pins that to blockno mod B). Write's debug log
// line uses it to identify "which bytes" without dumping BLOCKSIZE bytes
// into the log, and MemDisk stores it with each written block and checks
// it again on read-back (ErrDiskCorruption on mismatch) — the same shape
// as wut's fastHash64 keying a cache by content identity.
func fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
