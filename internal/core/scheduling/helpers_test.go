package scheduling

import (
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := calendar.ParseDateKey(key)
	require.NoError(t, err)
	return d
}

func testPattern(t *testing.T) TeamPattern {
	t.Helper()
	ramadan, err := calendar.NewDateRange("2026-02-18", "2026-03-19")
	require.NoError(t, err)
	return TeamPattern{RotationAnchor: mustDate(t, "2026-01-03"), Ramadan: ramadan}
}

func employee(id, name, boutique string, team domain.Team) domain.Employee {
	return domain.Employee{
		EmpID:      id,
		Name:       name,
		BoutiqueID: boutique,
		Team:       team,
		Position:   domain.PositionSalesAdvisor,
		IsActive:   true,
	}
}

func entries(ids ...string) []domain.RosterEntry {
	out := make([]domain.RosterEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.RosterEntry{EmpID: id, Name: "Emp " + id, Source: domain.SourcePattern})
	}
	return out
}

func rosterIDs(list []domain.RosterEntry) []string {
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.EmpID)
	}
	return ids
}
