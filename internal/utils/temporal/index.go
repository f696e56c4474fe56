// Package temporal answers "which version was in force on this date" for effective-dated records.
package temporal

import (
	"sort"
	"time"
)

// Index holds versions of one record ordered by effective date.
type Index[T any] struct {
	versions  []T
	effective func(T) time.Time
}

// NewIndex builds an index over records. Versions sharing an effective date keep input order,
// so the later one wins.
func NewIndex[T any](records []T, effectiveFrom func(T) time.Time) *Index[T] {
	versions := make([]T, len(records))
	copy(versions, records)
	sort.SliceStable(versions, func(i, j int) bool {
		return effectiveFrom(versions[i]).Before(effectiveFrom(versions[j]))
	})
	return &Index[T]{versions: versions, effective: effectiveFrom}
}

// At returns the version whose effective date is the latest one on or before date.
func (ix *Index[T]) At(date time.Time) (T, bool) {
	var zero T
	if ix == nil {
		return zero, false
	}
	// first version effective strictly after date
	n := sort.Search(len(ix.versions), func(i int) bool {
		return ix.effective(ix.versions[i]).After(date)
	})
	if n == 0 {
		return zero, false
	}
	return ix.versions[n-1], true
}

// KeyedIndex partitions versions by key, e.g. employee id or position.
type KeyedIndex[K comparable, T any] struct {
	byKey map[K]*Index[T]
}

// NewKeyedIndex groups records by key and indexes each group by effective date.
func NewKeyedIndex[K comparable, T any](records []T, key func(T) K, effectiveFrom func(T) time.Time) *KeyedIndex[K, T] {
	groups := make(map[K][]T)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	byKey := make(map[K]*Index[T], len(groups))
	for k, g := range groups {
		byKey[k] = NewIndex(g, effectiveFrom)
	}
	return &KeyedIndex[K, T]{byKey: byKey}
}

// At returns the version in force for key on date.
func (k *KeyedIndex[K, T]) At(key K, date time.Time) (T, bool) {
	if k == nil {
		var zero T
		return zero, false
	}
	return k.byKey[key].At(date)
}
