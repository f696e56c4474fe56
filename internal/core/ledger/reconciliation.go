// Package ledger reconciles daily sales summaries against per-employee lines. All amounts here are
// whole SAR, not halalas.
package ledger

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// maxExactFloat is the largest integer a float64 carries without loss.
const maxExactFloat = 1 << 53

// ComputeDiff returns summaryTotal - linesTotal.
func ComputeDiff(summaryTotal, linesTotal int64) int64 {
	return summaryTotal - linesTotal
}

// CanLock reports whether a summary with this diff may be locked. There is no tolerance band.
func CanLock(diff int64) bool {
	return diff == 0
}

// ValidateSARInteger accepts a non-negative whole SAR amount from loosely typed input such as a
// decoded JSON body. Decimal points, signs, fractions and missing values are rejected.
func ValidateSARInteger(input any) (int64, bool) {
	switch v := input.(type) {
	case nil:
		return 0, false
	case int:
		return int64(v), v >= 0
	case int32:
		return int64(v), v >= 0
	case int64:
		return v, v >= 0
	case uint32:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v > maxExactFloat {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		return parseDigits(v.String())
	case string:
		return parseDigits(v)
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, *v >= 0
	default:
		return 0, false
	}
}

func parseDigits(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SumLines totals line amounts.
func SumLines(lines []domain.SalesLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.AmountSAR
	}
	return total
}

// Reconcile builds the reconciliation view of a summary and its lines.
func Reconcile(summary domain.SalesSummary, lines []domain.SalesLine) domain.Reconciliation {
	linesTotal := SumLines(lines)
	diff := ComputeDiff(summary.TotalSAR, linesTotal)
	return domain.Reconciliation{
		Summary:       summary,
		Lines:         lines,
		LinesTotalSAR: linesTotal,
		DiffSAR:       diff,
		CanLock:       CanLock(diff) && !summary.IsLocked(),
	}
}
