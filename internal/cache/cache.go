package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a byte-payload read cache with a per-instance TTL. A miss is
// (nil, nil); errors mean the backend itself failed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache. It backs the gateway when redis is not
// configured and serves as the failover fallback when it is.
type Memory struct {
	entries sync.Map
	ttl     time.Duration
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := m.entries.Load(key)
	if !ok {
		return nil, nil
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		m.entries.Delete(key)
		return nil, nil
	}
	return entry.data, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.entries.Store(key, memoryEntry{data: value, expiresAt: time.Now().Add(m.ttl)})
	return nil
}
