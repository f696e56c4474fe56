package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	hits, misses int
}

func (r *countingRecorder) CacheHit(string)  { r.hits++ }
func (r *countingRecorder) CacheMiss(string) { r.misses++ }

func TestKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, Key("coverage", []string{"B2", "B1"}, "2026-03-01"), Key("coverage", []string{"B1", "B2"}, "2026-03-01"))
	assert.NotEqual(t, Key("coverage", []string{"B1"}, "2026-03-01"), Key("coverage", []string{"B1"}, "2026-03-02"))
}

func TestKeyDoesNotReorderCallerSlice(t *testing.T) {
	ids := []string{"B2", "B1"}
	_ = Key("coverage", ids)
	assert.Equal(t, []string{"B2", "B1"}, ids)
}

func TestCoverageCachePurge(t *testing.T) {
	rec := &countingRecorder{}
	c := NewCoverageCache(time.Minute, rec)
	entry := CoverageEntry{Validations: []domain.ValidationResult{{Code: domain.CodeFridayAMNotAllowed}}}

	c.Put("2026-03-06", []string{"B1"}, entry)
	got, ok := c.Get("2026-03-06", []string{"B1"})
	require.True(t, ok)
	assert.Equal(t, entry, got)

	c.ClearCoverageValidationCache()
	_, ok = c.Get("2026-03-06", []string{"B1"})
	assert.False(t, ok)
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}

func TestLocalExpires(t *testing.T) {
	c := NewLocal[int]("short", 4, 20*time.Millisecond, nil)
	c.Add("a", 1)
	_, ok := c.Get("a")
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestSnapshotWithoutRedis(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshot[domain.YearOverYear]("yoy", time.Minute, nil, nil)

	_, found, err := s.Get(ctx, "B1:2026-03")
	require.NoError(t, err)
	assert.False(t, found)

	want := domain.YearOverYear{Period: "2026-03", PriorPeriod: "2025-03", PriorActualHalalas: 5000}
	require.NoError(t, s.Set(ctx, "B1:2026-03", want))

	got, found, err := s.Get(ctx, "B1:2026-03")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, s.Invalidate(ctx, "B1:2026-03"))
	_, found, _ = s.Get(ctx, "B1:2026-03")
	assert.False(t, found)
}
