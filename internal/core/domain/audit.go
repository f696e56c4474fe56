package domain

import "time"

// AuditLogEntry records an elevated access grant or a sensitive action.
type AuditLogEntry struct {
	AuditID     string         `json:"auditId"`
	ActorUserID string         `json:"actorUserId"`
	Module      string         `json:"module"`
	Action      string         `json:"action"`
	BoutiqueIDs []string       `json:"boutiqueIds"`
	Details     map[string]any `json:"details,omitempty"`
	At          time.Time      `json:"at"`
}

const (
	AuditActionGlobalAccess = "GLOBAL_SCOPE_GRANTED"
	AuditActionDeactivate   = "EMPLOYEE_DEACTIVATED"
	AuditActionTargetsReset = "TARGETS_RESET"
	AuditActionTargetsGen   = "TARGETS_GENERATED"
)
