package ledger

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeDiffAndCanLock(t *testing.T) {
	assert.Equal(t, int64(20), ComputeDiff(100, 80))
	assert.Equal(t, int64(-20), ComputeDiff(100, 120))
	assert.True(t, CanLock(ComputeDiff(100, 100)))
	assert.False(t, CanLock(1))
	assert.False(t, CanLock(-1))
}

func TestValidateSARInteger(t *testing.T) {
	accepted := []struct {
		in   any
		want int64
	}{
		{0, 0},
		{100, 100},
		{"42", 42},
		{float64(250), 250},
		{json.Number("7"), 7},
		{int64(9), 9},
	}
	for _, tt := range accepted {
		got, ok := ValidateSARInteger(tt.in)
		assert.True(t, ok, "%v should be accepted", tt.in)
		assert.Equal(t, tt.want, got)
	}

	rejected := []any{
		10.5,
		-1,
		"42.5",
		nil,
		"-3",
		"",
		"4e2",
		json.Number("1.0"),
		math.NaN(),
		true,
	}
	for _, in := range rejected {
		_, ok := ValidateSARInteger(in)
		assert.False(t, ok, "%v should be rejected", in)
	}

	var missing *int64
	_, ok := ValidateSARInteger(missing)
	assert.False(t, ok)
}

func TestReconcile(t *testing.T) {
	summary := domain.SalesSummary{SummaryID: "S1", TotalSAR: 1500, Status: domain.SalesSummaryOpen}
	lines := []domain.SalesLine{{EmpID: "E1", AmountSAR: 1000}, {EmpID: "E2", AmountSAR: 400}}

	rec := Reconcile(summary, lines)
	assert.Equal(t, int64(1400), rec.LinesTotalSAR)
	assert.Equal(t, int64(100), rec.DiffSAR)
	assert.False(t, rec.CanLock)

	lines = append(lines, domain.SalesLine{EmpID: "E3", AmountSAR: 100})
	rec = Reconcile(summary, lines)
	assert.Equal(t, int64(0), rec.DiffSAR)
	assert.True(t, rec.CanLock)

	summary.Status = domain.SalesSummaryLocked
	assert.False(t, Reconcile(summary, lines).CanLock, "already locked")
}
