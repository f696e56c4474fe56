package domain

import (
	"fmt"
	"time"
)

// SalesSummaryStatus is the ledger lock state of a daily summary.
type SalesSummaryStatus string

const (
	SalesSummaryOpen   SalesSummaryStatus = "OPEN"
	SalesSummaryLocked SalesSummaryStatus = "LOCKED"
)

// ParseSalesSummaryStatus validates a stored status.
func ParseSalesSummaryStatus(s string) (SalesSummaryStatus, error) {
	switch SalesSummaryStatus(s) {
	case SalesSummaryOpen, SalesSummaryLocked:
		return SalesSummaryStatus(s), nil
	default:
		return "", fmt.Errorf("unknown sales summary status %q", s)
	}
}

// SalesSummary is the boutique's declared daily total in whole SAR.
type SalesSummary struct {
	SummaryID  string             `json:"summaryId"`
	BoutiqueID string             `json:"boutiqueId"`
	Date       time.Time          `json:"date"`
	TotalSAR   int64              `json:"totalSar"`
	Status     SalesSummaryStatus `json:"status"`
	LockedBy   *string            `json:"lockedBy,omitempty"`
	LockedAt   *time.Time         `json:"lockedAt,omitempty"`
	AuditFields
}

// IsLocked reports whether the summary no longer accepts edits.
func (s SalesSummary) IsLocked() bool {
	switch s.Status {
	case SalesSummaryLocked:
		return true
	case SalesSummaryOpen:
		return false
	default:
		return true
	}
}

// SalesLine is one employee's contribution to a summary, in whole SAR.
type SalesLine struct {
	SummaryID string `json:"summaryId"`
	EmpID     string `json:"empId"`
	AmountSAR int64  `json:"amountSar"`
	AuditFields
}

// Reconciliation compares a summary against its lines.
type Reconciliation struct {
	Summary       SalesSummary `json:"summary"`
	Lines         []SalesLine  `json:"lines"`
	LinesTotalSAR int64        `json:"linesTotalSar"`
	DiffSAR       int64        `json:"diffSar"`
	CanLock       bool         `json:"canLock"`
}

// DailyTotal is an aggregated whole-SAR amount for one key (boutique or employee) on one date.
type DailyTotal struct {
	Key       string    `json:"key"`
	Date      time.Time `json:"date"`
	AmountSAR int64     `json:"amountSar"`
}
