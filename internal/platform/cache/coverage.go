package cache

import (
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

const coverageCacheSize = 2048

// CoverageEntry is the cached validation outcome of one (date, boutiques) pair.
type CoverageEntry struct {
	Validations []domain.ValidationResult
	Suggestion  domain.CoverageSuggestion
}

// CoverageCache caches coverage validation per (date, boutiqueIDs).
type CoverageCache struct {
	local *Local[CoverageEntry]
}

// NewCoverageCache creates the coverage validation cache.
func NewCoverageCache(ttl time.Duration, recorder Recorder) *CoverageCache {
	return &CoverageCache{local: NewLocal[CoverageEntry]("coverage_validation", coverageCacheSize, ttl, recorder)}
}

// Get returns the cached outcome for date and boutiques.
func (c *CoverageCache) Get(dateKey string, boutiqueIDs []string) (CoverageEntry, bool) {
	return c.local.Get(Key("coverage", boutiqueIDs, dateKey))
}

// Put caches the outcome for date and boutiques.
func (c *CoverageCache) Put(dateKey string, boutiqueIDs []string, entry CoverageEntry) {
	c.local.Add(Key("coverage", boutiqueIDs, dateKey), entry)
}

// ClearCoverageValidationCache drops every cached outcome. It runs whenever coverage rules or
// schedules change.
func (c *CoverageCache) ClearCoverageValidationCache() {
	c.local.Purge()
}
