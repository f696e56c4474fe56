package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee, active or not.
	FindEmployeeByID(ctx context.Context, empID string) (*domain.Employee, error)

	// FindEmployeeByUserID retrieves the employee linked to a user account.
	FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error)

	// ListEmployeesByBoutiques lists the active employees homed in any of the boutiques.
	ListEmployeesByBoutiques(ctx context.Context, boutiqueIDs []string) ([]domain.Employee, error)

	// ListEmployeesByIDs retrieves employees by id regardless of boutique.
	ListEmployeesByIDs(ctx context.Context, empIDs []string) ([]domain.Employee, error)
}

// TemporalReader defines reads of effective-dated employee attributes
type TemporalReader interface {
	// ListTeamAssignments returns every team assignment row of the employees, any effective date.
	ListTeamAssignments(ctx context.Context, empIDs []string) ([]domain.TeamAssignment, error)

	// ListRoleWeights returns every role weight version.
	ListRoleWeights(ctx context.Context) ([]domain.RoleWeightVersion, error)
}

// EmployeeLifecycleManager defines the employee deactivation cascade
type EmployeeLifecycleManager interface {
	// DeactivateEmployee marks the employee inactive, removes all of their shift overrides and strips
	// them from every forward-looking assignment in one transaction. Leaves, sales and past targets
	// are not touched.
	DeactivateEmployee(ctx context.Context, empID, actorUserID string, at time.Time) (*domain.DeactivationReport, error)
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	TemporalReader
	EmployeeLifecycleManager
}
