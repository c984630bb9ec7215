package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Failover prefers the primary cache and drops to the fallback when the
// primary errors. It probes the primary again after a recovery window.
type Failover struct {
	primary   Cache
	fallback  Cache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

const recoveryWindow = time.Minute

func NewFailover(primary, fallback Cache, logger *zerolog.Logger) *Failover {
	return &Failover{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (f *Failover) Get(ctx context.Context, key string) ([]byte, error) {
	if !f.isDown.Load() {
		val, err := f.primary.Get(ctx, key)
		if err == nil {
			return val, nil
		}
		f.markDown(err)
	} else if f.shouldProbe() {
		val, err := f.primary.Get(ctx, key)
		if err == nil {
			f.isDown.Store(false)
			return val, nil
		}
		f.lastCheck.Store(time.Now().UnixNano())
	}

	return f.fallback.Get(ctx, key)
}

func (f *Failover) Set(ctx context.Context, key string, value []byte) error {
	if !f.isDown.Load() {
		err := f.primary.Set(ctx, key, value)
		if err == nil {
			return nil
		}
		f.markDown(err)
	}

	return f.fallback.Set(ctx, key, value)
}

func (f *Failover) markDown(err error) {
	f.logger.Error().Err(err).Msg("primary cache failed, falling back to memory")
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().UnixNano())
}

func (f *Failover) shouldProbe() bool {
	return time.Since(time.Unix(0, f.lastCheck.Load())) > recoveryWindow
}
