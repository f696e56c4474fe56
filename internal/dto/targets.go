package dto

import (
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/money"
)

// UpsertBoutiqueTargetRequest sets the monthly boutique target in halalas.
type UpsertBoutiqueTargetRequest struct {
	BoutiqueID    string `json:"boutiqueId"`
	Month         string `json:"month" binding:"required,monthkey"`
	AmountHalalas int64  `json:"amountHalalas" binding:"min=0"`
}

// MonthTargetRequest names a boutique month for generation or reset.
type MonthTargetRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	Month      string `json:"month" binding:"required,monthkey"`
}

// TargetsQuery lists employee targets of a month.
type TargetsQuery struct {
	ScopeQuery
	Month string `form:"month" binding:"required,monthkey"`
}

// TargetMetricsQuery selects boutique metrics, or one employee's when UserID is set.
type TargetMetricsQuery struct {
	ScopeQuery
	Month  string `form:"month" binding:"required,monthkey"`
	UserID string `form:"userId"`
}

// DashboardQuery selects the sales dashboard month.
type DashboardQuery struct {
	ScopeQuery
	Month string `form:"month" binding:"required,monthkey"`
}

// BoutiqueTargetResponse is a boutique target with its display amount.
type BoutiqueTargetResponse struct {
	BoutiqueID    string    `json:"boutiqueId"`
	Month         string    `json:"month"`
	AmountHalalas int64     `json:"amountHalalas"`
	AmountDisplay string    `json:"amountDisplay"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// EmployeeTargetResponse is an employee target with the snapshotted generation inputs.
type EmployeeTargetResponse struct {
	UserID                      string    `json:"userId"`
	EmpID                       string    `json:"empId"`
	BoutiqueID                  string    `json:"boutiqueId"`
	Month                       string    `json:"month"`
	AmountHalalas               int64     `json:"amountHalalas"`
	AmountDisplay               string    `json:"amountDisplay"`
	RoleAtGeneration            string    `json:"roleAtGeneration"`
	EffectiveWeightAtGeneration string    `json:"effectiveWeightAtGeneration"`
	ScheduledDaysInMonth        int       `json:"scheduledDaysInMonth"`
	LeaveDaysInMonth            int       `json:"leaveDaysInMonth"`
	PresenceFactor              string    `json:"presenceFactor"`
	GeneratedAt                 time.Time `json:"generatedAt"`
}

// ResetTargetsResponse reports how many employee rows were cleared.
type ResetTargetsResponse struct {
	BoutiqueID string `json:"boutiqueId"`
	Month      string `json:"month"`
	Deleted    int64  `json:"deleted"`
}

// ToBoutiqueTargetResponse converts a boutique target.
func ToBoutiqueTargetResponse(t *domain.BoutiqueMonthlyTarget) BoutiqueTargetResponse {
	return BoutiqueTargetResponse{
		BoutiqueID:    t.BoutiqueID,
		Month:         t.Month,
		AmountHalalas: t.AmountHalalas,
		AmountDisplay: money.FormatSARFromHalalas(t.AmountHalalas),
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ToEmployeeTargetResponses converts a list of employee targets.
func ToEmployeeTargetResponses(rows []domain.EmployeeMonthlyTarget) []EmployeeTargetResponse {
	out := make([]EmployeeTargetResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, EmployeeTargetResponse{
			UserID:                      t.UserID,
			EmpID:                       t.EmpID,
			BoutiqueID:                  t.BoutiqueID,
			Month:                       t.Month,
			AmountHalalas:               t.AmountHalalas,
			AmountDisplay:               money.FormatSARFromHalalas(t.AmountHalalas),
			RoleAtGeneration:            string(t.RoleAtGeneration),
			EffectiveWeightAtGeneration: t.EffectiveWeightAtGeneration.String(),
			ScheduledDaysInMonth:        t.ScheduledDaysInMonth,
			LeaveDaysInMonth:            t.LeaveDaysInMonth,
			PresenceFactor:              t.PresenceFactor.String(),
			GeneratedAt:                 t.GeneratedAt,
		})
	}
	return out
}
