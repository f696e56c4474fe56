package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// scopedService is embedded by services that resolve scope before touching data.
type scopedService struct {
	scope portssvc.ScopeSvc
}

func (s scopedService) readScope(ctx context.Context, identity domain.Identity, q dto.ScopeQuery, module string) (*domain.Scope, error) {
	return s.scope.ResolveScope(ctx, identity, domain.ScopeRequest{
		BoutiqueID: q.BoutiqueID,
		Global:     q.Global,
		Module:     module,
		Access:     domain.AccessRead,
	})
}

// writeScope resolves write scope without narrowing it to one boutique.
func (s scopedService) writeScope(ctx context.Context, identity domain.Identity, boutiqueID, module string) (*domain.Scope, error) {
	return s.scope.ResolveScope(ctx, identity, domain.ScopeRequest{
		BoutiqueID: boutiqueID,
		Module:     module,
		Access:     domain.AccessWrite,
	})
}

// scopedEmployee loads an employee homed in scope. A missing employee and one homed elsewhere give
// the same CROSS_BOUTIQUE_BLOCKED answer unless the scope is global.
func (s scopedService) scopedEmployee(ctx context.Context, employees portsrepo.EmployeeReader, scope *domain.Scope, empID string) (*domain.Employee, error) {
	emp, err := employees.FindEmployeeByID(ctx, empID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("find employee: %w", err)
		}
		if scope.IsGlobal {
			return nil, apperrors.NewNotFoundError("employee", empID)
		}
		return nil, &apperrors.CrossBoutiqueError{EntityType: "employee", EntityID: empID}
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "employee", emp.EmpID, emp.BoutiqueID); err != nil {
		return nil, err
	}
	return emp, nil
}

// writeBoutique resolves write scope and returns the single boutique the mutation targets.
func (s scopedService) writeBoutique(ctx context.Context, identity domain.Identity, boutiqueID, module string) (*domain.Scope, string, error) {
	scope, err := s.scope.ResolveScope(ctx, identity, domain.ScopeRequest{
		BoutiqueID: boutiqueID,
		Module:     module,
		Access:     domain.AccessWrite,
	})
	if err != nil {
		return nil, "", err
	}
	if scope.EffectiveBoutiqueID == "" {
		return nil, "", apperrors.NewValidationFailedError("boutiqueId", "is required when more than one boutique is in scope")
	}
	return scope, scope.EffectiveBoutiqueID, nil
}

// singleBoutique narrows a read scope to one boutique for operations that need exactly one.
func singleBoutique(scope *domain.Scope) (string, error) {
	if scope.EffectiveBoutiqueID != "" {
		return scope.EffectiveBoutiqueID, nil
	}
	if len(scope.BoutiqueIDs) == 1 {
		return scope.BoutiqueIDs[0], nil
	}
	return "", apperrors.NewValidationFailedError("boutiqueId", "is required when more than one boutique is in scope")
}
