package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/core/ledger"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/google/uuid"
)

const salesModule = "sales"

// salesService implements the SalesLedgerSvc interface
type salesService struct {
	BaseService
	scopedService
	salesRepo    portsrepo.SalesRepositoryFacade
	employeeRepo portsrepo.EmployeeReader
}

// NewSalesService creates a new sales ledger service
func NewSalesService(repos portsrepo.RepositoryProvider, scope portssvc.ScopeSvc, clock func() time.Time) portssvc.SalesLedgerSvc {
	return &salesService{
		BaseService:   BaseService{Clock: clock},
		scopedService: scopedService{scope: scope},
		salesRepo:     repos.SalesRepo,
		employeeRepo:  repos.EmployeeRepo,
	}
}

var _ portssvc.SalesLedgerSvc = (*salesService)(nil)

// UpsertSalesSummary declares a boutique's daily total in whole SAR.
func (s *salesService) UpsertSalesSummary(ctx context.Context, identity domain.Identity, req dto.UpsertSalesSummaryRequest) (*domain.SalesSummary, error) {
	if err := requireRole(identity, identity.Role.CanManageSalesLedger(), "edit the sales ledger"); err != nil {
		return nil, err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	total, ok := ledger.ValidateSARInteger(req.TotalSAR)
	if !ok {
		return nil, apperrors.NewValidationFailedError("totalSar", "must be a non-negative whole SAR amount")
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, salesModule)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	saved, err := s.salesRepo.UpsertSummary(ctx, domain.SalesSummary{
		SummaryID:   uuid.NewString(),
		BoutiqueID:  boutiqueID,
		Date:        date,
		TotalSAR:    total,
		Status:      domain.SalesSummaryOpen,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeLedgerLocked {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save sales summary", slog.String("boutique_id", boutiqueID), slog.String("date", req.Date))
		return nil, fmt.Errorf("save sales summary: %w", err)
	}
	s.LogInfo(ctx, "Sales summary saved",
		slog.String("summary_id", saved.SummaryID),
		slog.String("boutique_id", boutiqueID),
		slog.Int64("total_sar", total))
	return saved, nil
}

// UpsertSalesLine sets one employee's amount on an open summary.
func (s *salesService) UpsertSalesLine(ctx context.Context, identity domain.Identity, summaryID string, req dto.UpsertSalesLineRequest) (*domain.SalesLine, error) {
	if err := requireRole(identity, identity.Role.CanManageSalesLedger(), "edit the sales ledger"); err != nil {
		return nil, err
	}
	amount, ok := ledger.ValidateSARInteger(req.AmountSAR)
	if !ok {
		return nil, apperrors.NewValidationFailedError("amountSar", "must be a non-negative whole SAR amount")
	}

	summary, scope, err := s.writableSummary(ctx, identity, summaryID)
	if err != nil {
		return nil, err
	}
	if summary.IsLocked() {
		return nil, ledgerLocked(summary)
	}

	emp, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("employee", req.EmpID)
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if !emp.IsSchedulable() {
		return nil, apperrors.NewValidationFailedError("empId", "employee is not active")
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "employee", emp.EmpID, emp.BoutiqueID); err != nil {
		return nil, err
	}

	now := s.Now()
	line, err := s.salesRepo.UpsertLine(ctx, domain.SalesLine{
		SummaryID:   summary.SummaryID,
		EmpID:       emp.EmpID,
		AmountSAR:   amount,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeLedgerLocked {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save sales line", slog.String("summary_id", summaryID), slog.String("emp_id", emp.EmpID))
		return nil, fmt.Errorf("save sales line: %w", err)
	}
	s.LogInfo(ctx, "Sales line saved", slog.String("summary_id", summaryID), slog.String("emp_id", emp.EmpID), slog.Int64("amount_sar", amount))
	return line, nil
}

// GetReconciliation compares a summary with its lines.
func (s *salesService) GetReconciliation(ctx context.Context, identity domain.Identity, summaryID string) (*domain.Reconciliation, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	summary, err := s.findSummary(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, dto.ScopeQuery{BoutiqueID: summary.BoutiqueID}, salesModule)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "sales summary", summaryID, summary.BoutiqueID); err != nil {
		return nil, err
	}

	lines, err := s.salesRepo.ListLines(ctx, summaryID)
	if err != nil {
		return nil, fmt.Errorf("list sales lines: %w", err)
	}
	rec := ledger.Reconcile(*summary, lines)
	if rec.Lines == nil {
		rec.Lines = []domain.SalesLine{}
	}
	return &rec, nil
}

// LockSalesSummary locks a summary whose lines add up to its total exactly. The check runs again
// under the row lock so a concurrent line edit cannot slip in between.
func (s *salesService) LockSalesSummary(ctx context.Context, identity domain.Identity, summaryID string) (*domain.SalesSummary, error) {
	if err := requireRole(identity, identity.Role.CanManageSalesLedger(), "lock the sales ledger"); err != nil {
		return nil, err
	}
	if _, _, err := s.writableSummary(ctx, identity, summaryID); err != nil {
		return nil, err
	}

	locked, err := s.salesRepo.LockSummary(ctx, summaryID, identity.UserID, s.Now(), func(summary domain.SalesSummary, lines []domain.SalesLine) error {
		if summary.IsLocked() {
			return ledgerLocked(&summary)
		}
		rec := ledger.Reconcile(summary, lines)
		if !rec.CanLock {
			return apperrors.NewConflictError(apperrors.CodeDiffNotZero,
				fmt.Sprintf("summary total %d SAR differs from lines total %d SAR by %d", rec.Summary.TotalSAR, rec.LinesTotalSAR, rec.DiffSAR))
		}
		return nil
	})
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.CodeDiffNotZero, apperrors.CodeLedgerLocked, apperrors.CodeNotFound:
			s.LogWarn(ctx, "Sales summary not locked", slog.String("summary_id", summaryID), slog.String("reason", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to lock sales summary", slog.String("summary_id", summaryID))
		return nil, fmt.Errorf("lock sales summary: %w", err)
	}
	s.LogInfo(ctx, "Sales summary locked", slog.String("summary_id", summaryID), slog.String("boutique_id", locked.BoutiqueID))
	return locked, nil
}

func (s *salesService) findSummary(ctx context.Context, summaryID string) (*domain.SalesSummary, error) {
	summary, err := s.salesRepo.FindSummaryByID(ctx, summaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("sales summary", summaryID)
		}
		s.LogError(ctx, err, "Failed to load sales summary", slog.String("summary_id", summaryID))
		return nil, fmt.Errorf("find sales summary: %w", err)
	}
	return summary, nil
}

// writableSummary loads a summary and checks the caller may write its boutique.
func (s *salesService) writableSummary(ctx context.Context, identity domain.Identity, summaryID string) (*domain.SalesSummary, *domain.Scope, error) {
	summary, err := s.findSummary(ctx, summaryID)
	if err != nil {
		return nil, nil, err
	}
	scope, _, err := s.writeBoutique(ctx, identity, summary.BoutiqueID, salesModule)
	if err != nil {
		return nil, nil, err
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "sales summary", summaryID, summary.BoutiqueID); err != nil {
		return nil, nil, err
	}
	return summary, scope, nil
}

func ledgerLocked(summary *domain.SalesSummary) error {
	return apperrors.NewConflictError(apperrors.CodeLedgerLocked,
		fmt.Sprintf("sales summary %s is locked", summary.SummaryID))
}
