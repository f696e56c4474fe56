package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/google/uuid"
)

const employeeModule = "employees"

// employeeService implements the EmployeeSvcFacade interface
type employeeService struct {
	BaseService
	scopedService
	employeeRepo  portsrepo.EmployeeRepositoryFacade
	zoneRepo      portsrepo.ZoneRepositoryFacade
	auditRepo     portsrepo.AuditWriter
	txManager     portsrepo.TransactionManager
	coverageCache *cache.CoverageCache
}

// NewEmployeeService creates a new employee service. coverageCache may be nil.
func NewEmployeeService(repos portsrepo.RepositoryProvider, scope portssvc.ScopeSvc, coverageCache *cache.CoverageCache, clock func() time.Time) portssvc.EmployeeSvcFacade {
	return &employeeService{
		BaseService:   BaseService{Clock: clock},
		scopedService: scopedService{scope: scope},
		employeeRepo:  repos.EmployeeRepo,
		zoneRepo:      repos.ZoneRepo,
		auditRepo:     repos.BoutiqueRepo,
		txManager:     repos.TxManager,
		coverageCache: coverageCache,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// DeactivateEmployee runs the deactivation cascade and its audit entry in one transaction. History
// (leave, sales, past targets) is kept.
func (s *employeeService) DeactivateEmployee(ctx context.Context, identity domain.Identity, empID string) (*domain.DeactivationReport, error) {
	if err := requireRole(identity, identity.Role.CanManageEmployees(), "deactivate employees"); err != nil {
		return nil, err
	}
	scope, err := s.writeScope(ctx, identity, "", employeeModule)
	if err != nil {
		return nil, err
	}
	emp, err := s.scopedEmployee(ctx, s.employeeRepo, scope, empID)
	if err != nil {
		return nil, err
	}
	if emp.IsSystemOnly || emp.EmpID == domain.UnassignedEmpID {
		return nil, apperrors.NewValidationFailedError("empId", "system placeholder employees cannot be deactivated")
	}
	if !emp.IsActive {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, fmt.Sprintf("employee %s is already inactive", empID))
	}

	now := s.Now()
	var report *domain.DeactivationReport
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.employeeRepo.DeactivateEmployee(ctx, empID, identity.UserID, now)
		if err != nil {
			return fmt.Errorf("deactivate employee: %w", err)
		}
		entry := domain.AuditLogEntry{
			AuditID:     uuid.NewString(),
			ActorUserID: identity.UserID,
			Module:      employeeModule,
			Action:      domain.AuditActionDeactivate,
			BoutiqueIDs: []string{emp.BoutiqueID},
			Details: map[string]any{
				"empId":                      empID,
				"taskPlansReassigned":        report.TaskPlansReassigned,
				"shiftOverridesDeleted":      report.ShiftOverridesDeleted,
				"zoneAssignmentsClosed":      report.ZoneAssignmentsClosed,
				"rotationMembershipsRemoved": report.RotationMembershipsRemoved,
				"queueEntriesRemoved":        report.QueueEntriesRemoved,
			},
			At: now,
		}
		if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
			return fmt.Errorf("audit employee deactivation: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Deactivation cascade failed", slog.String("emp_id", empID))
		return nil, err
	}
	if s.coverageCache != nil {
		s.coverageCache.ClearCoverageValidationCache()
	}

	s.LogInfo(ctx, "Employee deactivated",
		slog.String("emp_id", empID),
		slog.Int64("task_plans", report.TaskPlansReassigned),
		slog.Int64("overrides", report.ShiftOverridesDeleted),
		slog.Int64("zones", report.ZoneAssignmentsClosed))
	return report, nil
}

// AssignZone hands a zone to an employee of the same boutique, ending the previous assignment.
func (s *employeeService) AssignZone(ctx context.Context, identity domain.Identity, zoneID string, req dto.AssignZoneRequest) (*domain.ZoneAssignment, error) {
	if err := requireRole(identity, identity.Role.CanManageEmployees(), "assign zones"); err != nil {
		return nil, err
	}
	scope, err := s.writeScope(ctx, identity, "", employeeModule)
	if err != nil {
		return nil, err
	}
	zone, err := s.zoneRepo.FindZoneByID(ctx, zoneID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("find zone: %w", err)
		}
		if scope.IsGlobal {
			return nil, apperrors.NewNotFoundError("zone", zoneID)
		}
		return nil, &apperrors.CrossBoutiqueError{EntityType: "zone", EntityID: zoneID}
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "zone", zoneID, zone.BoutiqueID); err != nil {
		return nil, err
	}

	emp, err := s.scopedEmployee(ctx, s.employeeRepo, scope, req.EmpID)
	if err != nil {
		return nil, err
	}
	if emp.BoutiqueID != zone.BoutiqueID {
		return nil, &apperrors.CrossBoutiqueError{EntityType: "employee", EntityID: emp.EmpID, BoutiqueID: emp.BoutiqueID}
	}
	if !emp.IsSchedulable() {
		return nil, apperrors.NewValidationFailedError("empId", "employee is not active")
	}

	assignment, err := s.zoneRepo.AssignZone(ctx, domain.ZoneAssignment{
		AssignmentID: uuid.NewString(),
		ZoneID:       zone.ZoneID,
		BoutiqueID:   zone.BoutiqueID,
		EmpID:        emp.EmpID,
		IsActive:     true,
		AssignedBy:   identity.UserID,
		AssignedAt:   s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to assign zone", slog.String("zone_id", zoneID), slog.String("emp_id", emp.EmpID))
		return nil, fmt.Errorf("assign zone: %w", err)
	}
	s.LogInfo(ctx, "Zone assigned", slog.String("zone_id", zoneID), slog.String("emp_id", emp.EmpID))
	return assignment, nil
}

// ListZoneAssignments lists the active zone assignments in scope.
func (s *employeeService) ListZoneAssignments(ctx context.Context, identity domain.Identity, q dto.ZoneAssignmentsQuery) ([]domain.ZoneAssignment, error) {
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, employeeModule)
	if err != nil {
		return nil, err
	}
	rows, err := s.zoneRepo.ListActiveZoneAssignments(ctx, scope.BoutiqueIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to list zone assignments")
		return nil, fmt.Errorf("list zone assignments: %w", err)
	}
	if rows == nil {
		rows = []domain.ZoneAssignment{}
	}
	return rows, nil
}
