package domain

import "time"

// InventoryZone is a stock area of a boutique that one employee looks after.
type InventoryZone struct {
	ZoneID     string `json:"zoneId"`
	BoutiqueID string `json:"boutiqueId"`
	Code       string `json:"code"`
	Name       string `json:"name"`
}

// ZoneAssignment links an employee to a zone. Only one assignment per zone is active.
type ZoneAssignment struct {
	AssignmentID string     `json:"assignmentId"`
	ZoneID       string     `json:"zoneId"`
	BoutiqueID   string     `json:"boutiqueId"`
	EmpID        string     `json:"empId"`
	IsActive     bool       `json:"isActive"`
	AssignedBy   string     `json:"assignedBy"`
	AssignedAt   time.Time  `json:"assignedAt"`
	EndedAt      *time.Time `json:"endedAt,omitempty"`
}
