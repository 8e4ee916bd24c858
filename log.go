package bufcache

import "go.uber.org/zap"

// kernelLog is a nil-safe wrapper around *zap.Logger: callers can pass a
// nil Cache.log.z (default zap.NewNop()) without branching at every call
// site, matching how the neru accessibility cache threads an optional
// *zap.Logger through its cache package.
type kernelLog struct {
	z *zap.Logger
}

func newKernelLog(z *zap.Logger) kernelLog {
	if z == nil {
		z = zap.NewNop()
	}
	return kernelLog{z: z}
}

func (l kernelLog) init(cfg Config) {
	l.z.Debug("bufcache: init",
		zap.Int("n", cfg.N),
		zap.Int("b", cfg.B),
		zap.Int("block_size", cfg.BlockSize),
	)
}

func (l kernelLog) steal(victimBucket, homeBucket int, dev, blockno uint32) {
	l.z.Debug("bufcache: cross-bucket steal",
		zap.Int("victim_bucket", victimBucket),
		zap.Int("home_bucket", homeBucket),
		zap.Uint32("dev", dev),
		zap.Uint32("blockno", blockno),
	)
}

func (l kernelLog) diskRW(dev, blockno uint32, write bool) {
	l.z.Debug("bufcache: disk_rw",
		zap.Uint32("dev", dev),
		zap.Uint32("blockno", blockno),
		zap.Bool("write", write),
	)
}

func (l kernelLog) write(dev, blockno uint32, fp uint64) {
	l.z.Debug("bufcache: write",
		zap.Uint32("dev", dev),
		zap.Uint32("blockno", blockno),
		zap.Uint64("fingerprint", fp),
	)
}

func (l kernelLog) fatal(cause error, fields ...any) {
	l.z.Error("bufcache: fatal invariant violation", zap.Error(cause), zap.Any("context", fields))
	_ = l.z.Sync()
}
