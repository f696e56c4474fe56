package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BoutiqueMonthlyTarget is the boutique ceiling for a month, in halalas.
type BoutiqueMonthlyTarget struct {
	BoutiqueID    string `json:"boutiqueId"`
	Month         string `json:"month"`
	AmountHalalas int64  `json:"amountHalalas"`
	AuditFields
}

// EmployeeMonthlyTarget is one employee's share of the boutique target. The generation inputs are
// snapshotted and never recomputed.
type EmployeeMonthlyTarget struct {
	UserID                      string          `json:"userId"`
	EmpID                       string          `json:"empId"`
	BoutiqueID                  string          `json:"boutiqueId"`
	Month                       string          `json:"month"`
	AmountHalalas               int64           `json:"amountHalalas"`
	RoleAtGeneration            Position        `json:"roleAtGeneration"`
	EffectiveWeightAtGeneration decimal.Decimal `json:"effectiveWeightAtGeneration"`
	ScheduledDaysInMonth        int             `json:"scheduledDaysInMonth"`
	LeaveDaysInMonth            int             `json:"leaveDaysInMonth"`
	PresenceFactor              decimal.Decimal `json:"presenceFactor"`
	GeneratedAt                 time.Time       `json:"generatedAt"`
	GeneratedBy                 string          `json:"generatedBy"`
}
