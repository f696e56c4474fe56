// Package cache holds the read-mostly TTL caches. Entries are performance hints only and are never
// consulted for authorization.
package cache

import (
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Recorder receives hit and miss events per named cache.
type Recorder interface {
	CacheHit(name string)
	CacheMiss(name string)
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(string)  {}
func (nopRecorder) CacheMiss(string) {}

// Local is a size-bounded in-process cache whose entries expire after a fixed TTL.
type Local[V any] struct {
	name     string
	lru      *expirable.LRU[string, V]
	recorder Recorder
}

// NewLocal creates a cache holding at most size entries for ttl each.
func NewLocal[V any](name string, size int, ttl time.Duration, recorder Recorder) *Local[V] {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Local[V]{
		name:     name,
		lru:      expirable.NewLRU[string, V](size, nil, ttl),
		recorder: recorder,
	}
}

// Get returns the live entry for key.
func (c *Local[V]) Get(key string) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.recorder.CacheHit(c.name)
	} else {
		c.recorder.CacheMiss(c.name)
	}
	return v, ok
}

// Add stores v under key.
func (c *Local[V]) Add(key string, v V) {
	c.lru.Add(key, v)
}

// Remove drops key.
func (c *Local[V]) Remove(key string) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *Local[V]) Purge() {
	c.lru.Purge()
}

// Len counts the live entries.
func (c *Local[V]) Len() int {
	return c.lru.Len()
}

// Key joins parts into a cache key. Boutique id sets are sorted so that permutations share a key.
func Key(prefix string, boutiqueIDs []string, parts ...string) string {
	ids := slices.Clone(boutiqueIDs)
	slices.Sort(ids)
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(p)
	}
	b.WriteByte(':')
	b.WriteString(strings.Join(ids, ","))
	return b.String()
}
