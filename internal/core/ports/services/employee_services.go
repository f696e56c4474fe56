package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// EmployeeLifecycleSvc defines employee deactivation
type EmployeeLifecycleSvc interface {
	// DeactivateEmployee runs the deactivation cascade and reports what it touched.
	DeactivateEmployee(ctx context.Context, identity domain.Identity, empID string) (*domain.DeactivationReport, error)
}

// ZoneSvc defines inventory zone assignment
type ZoneSvc interface {
	AssignZone(ctx context.Context, identity domain.Identity, zoneID string, req dto.AssignZoneRequest) (*domain.ZoneAssignment, error)
	ListZoneAssignments(ctx context.Context, identity domain.Identity, q dto.ZoneAssignmentsQuery) ([]domain.ZoneAssignment, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeLifecycleSvc
	ZoneSvc
}
