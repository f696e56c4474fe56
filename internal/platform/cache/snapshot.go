package cache

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/platform/redis"
)

const snapshotCacheSize = 512

// Snapshot is a two-level cache: an in-process LRU in front of optional shared redis.
type Snapshot[V any] struct {
	local  *Local[V]
	shared *redis.Client
	ttl    time.Duration
}

// NewSnapshot creates a snapshot cache. shared may be nil.
func NewSnapshot[V any](name string, ttl time.Duration, shared *redis.Client, recorder Recorder) *Snapshot[V] {
	return &Snapshot[V]{
		local:  NewLocal[V](name, snapshotCacheSize, ttl, recorder),
		shared: shared,
		ttl:    ttl,
	}
}

// Get looks key up locally, then in redis, refilling the local level on a shared hit.
func (s *Snapshot[V]) Get(ctx context.Context, key string) (V, bool, error) {
	if v, ok := s.local.Get(key); ok {
		return v, true, nil
	}
	var v V
	found, err := s.shared.GetObject(ctx, "snapshot:"+key, &v)
	if err != nil || !found {
		return v, false, err
	}
	s.local.Add(key, v)
	return v, true, nil
}

// Set stores v in both levels. A redis failure is returned after the local level is filled.
func (s *Snapshot[V]) Set(ctx context.Context, key string, v V) error {
	s.local.Add(key, v)
	return s.shared.SetObject(ctx, "snapshot:"+key, v, s.ttl)
}

// Invalidate drops key from both levels.
func (s *Snapshot[V]) Invalidate(ctx context.Context, key string) error {
	s.local.Remove(key)
	return s.shared.Delete(ctx, "snapshot:"+key)
}
