package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type teamRow struct {
	emp  string
	team string
	from time.Time
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestIndexAtPicksLatestOnOrBefore(t *testing.T) {
	rows := []teamRow{
		{"E1", "B", day("2026-03-01")},
		{"E1", "A", day("2026-01-01")},
		{"E1", "A", day("2026-05-01")},
	}
	ix := NewIndex(rows, func(r teamRow) time.Time { return r.from })

	_, ok := ix.At(day("2025-12-31"))
	assert.False(t, ok)

	got, ok := ix.At(day("2026-02-15"))
	assert.True(t, ok)
	assert.Equal(t, "A", got.team)

	got, _ = ix.At(day("2026-03-01"))
	assert.Equal(t, "B", got.team, "effective date itself is inclusive")

	got, _ = ix.At(day("2026-04-30"))
	assert.Equal(t, "B", got.team)

	got, _ = ix.At(day("2026-06-01"))
	assert.Equal(t, "A", got.team)
}

func TestIndexSameDayLaterRowWins(t *testing.T) {
	rows := []teamRow{
		{"E1", "A", day("2026-03-01")},
		{"E1", "B", day("2026-03-01")},
	}
	ix := NewIndex(rows, func(r teamRow) time.Time { return r.from })
	got, ok := ix.At(day("2026-03-10"))
	assert.True(t, ok)
	assert.Equal(t, "B", got.team)
}

func TestKeyedIndex(t *testing.T) {
	rows := []teamRow{
		{"E1", "A", day("2026-01-01")},
		{"E2", "B", day("2026-01-01")},
		{"E2", "A", day("2026-02-01")},
	}
	ix := NewKeyedIndex(rows, func(r teamRow) string { return r.emp }, func(r teamRow) time.Time { return r.from })

	got, ok := ix.At("E2", day("2026-02-10"))
	assert.True(t, ok)
	assert.Equal(t, "A", got.team)

	_, ok = ix.At("E3", day("2026-02-10"))
	assert.False(t, ok)

	var nilIndex *KeyedIndex[string, teamRow]
	_, ok = nilIndex.At("E1", day("2026-02-10"))
	assert.False(t, ok)
}
