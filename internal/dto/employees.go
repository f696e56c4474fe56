package dto

// AssignZoneRequest hands a zone to an employee, ending the previous assignment.
type AssignZoneRequest struct {
	EmpID string `json:"empId" binding:"required"`
}

// ZoneAssignmentsQuery lists the active zone assignments in scope.
type ZoneAssignmentsQuery struct {
	ScopeQuery
}
