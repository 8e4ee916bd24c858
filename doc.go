// Package bufcache implements an in-memory block buffer cache: a fixed
// pool of disk-block-sized slots distributed across hashed LRU buckets,
// used both to cache recently used disk blocks and as a synchronization
// point for concurrent callers operating on the same block.
//
// Callers read a block to get a locked slot, mutate or inspect its
// contents, optionally write it back to disk, and release it:
//
//	s := c.Read(dev, blockno)
//	// ... touch s.Data() ...
//	c.Write(s)
//	c.Release(s)
//
// Pin/Unpin adjust a slot's reference count without taking its content
// lock, letting a caller keep a block resident across other blocking
// operations (e.g. a filesystem transaction).
package bufcache
