package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/google/uuid"
)

// scopeService resolves the boutiques a caller may touch.
type scopeService struct {
	BaseService
	boutiqueRepo portsrepo.BoutiqueRepositoryFacade
}

// NewScopeService creates a new scope resolver.
func NewScopeService(boutiqueRepo portsrepo.BoutiqueRepositoryFacade) portssvc.ScopeSvc {
	return &scopeService{boutiqueRepo: boutiqueRepo}
}

var _ portssvc.ScopeSvc = (*scopeService)(nil)

// ResolveScope computes the caller's scope.
//
// EMPLOYEE and ASSISTANT_MANAGER are pinned to their session boutique. MANAGER, ADMIN and SUPER_ADMIN
// get their home boutique plus memberships granting the requested access; a boutique filter narrows
// that set and never widens it. Only ADMIN may ask for global scope, and the grant is audited first.
func (s *scopeService) ResolveScope(ctx context.Context, identity domain.Identity, req domain.ScopeRequest) (*domain.Scope, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	access := req.Access
	if access == "" {
		access = domain.AccessRead
	}
	scope := &domain.Scope{UserID: identity.UserID, Role: identity.Role, Access: access}

	if identity.Role.IsBoutiqueLocked() {
		if identity.BoutiqueID == "" {
			s.LogWarn(ctx, "Caller has no boutique assignment", slog.String("user_id", identity.UserID))
			return nil, apperrors.NewForbiddenError(apperrors.CodeNoBoutiqueAssignment, "no boutique assignment")
		}
		scope.BoutiqueIDs = []string{identity.BoutiqueID}
		scope.EffectiveBoutiqueID = identity.BoutiqueID
		return scope, nil
	}

	if req.Global && identity.Role == domain.RoleAdmin {
		return s.resolveGlobal(ctx, identity, req, scope)
	}

	ids, err := s.memberBoutiques(ctx, identity, access)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		s.LogWarn(ctx, "Caller has no boutique membership", slog.String("user_id", identity.UserID), slog.String("access", string(access)))
		return nil, apperrors.NewForbiddenError(apperrors.CodeNoBoutiqueAssignment, "no boutique assignment")
	}

	if req.BoutiqueID != "" {
		if !slices.Contains(ids, req.BoutiqueID) {
			s.LogWarn(ctx, "Requested boutique outside membership",
				slog.String("user_id", identity.UserID), slog.String("boutique_id", req.BoutiqueID))
			return nil, &apperrors.CrossBoutiqueError{EntityType: "boutique", EntityID: req.BoutiqueID, BoutiqueID: req.BoutiqueID}
		}
		scope.BoutiqueIDs = []string{req.BoutiqueID}
		scope.EffectiveBoutiqueID = req.BoutiqueID
		return scope, nil
	}

	scope.BoutiqueIDs = ids
	switch {
	case len(ids) == 1:
		scope.EffectiveBoutiqueID = ids[0]
	case slices.Contains(ids, identity.BoutiqueID):
		scope.EffectiveBoutiqueID = identity.BoutiqueID
	}
	return scope, nil
}

func (s *scopeService) resolveGlobal(ctx context.Context, identity domain.Identity, req domain.ScopeRequest, scope *domain.Scope) (*domain.Scope, error) {
	ids, err := s.boutiqueRepo.ListActiveBoutiqueIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active boutiques for global scope")
		return nil, fmt.Errorf("list active boutiques: %w", err)
	}

	entry := domain.AuditLogEntry{
		AuditID:     uuid.NewString(),
		ActorUserID: identity.UserID,
		Module:      req.Module,
		Action:      domain.AuditActionGlobalAccess,
		BoutiqueIDs: ids,
		Details:     map[string]any{"access": string(scope.Access)},
		At:          s.Now(),
	}
	if err := s.boutiqueRepo.SaveAuditEntry(ctx, entry); err != nil {
		// no audit record, no global grant
		s.LogError(ctx, err, "Failed to audit global scope grant", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("audit global scope: %w", err)
	}

	s.LogInfo(ctx, "Global scope granted",
		slog.String("user_id", identity.UserID),
		slog.String("module", req.Module),
		slog.Int("boutiques", len(ids)))
	scope.BoutiqueIDs = ids
	scope.IsGlobal = true
	if req.BoutiqueID != "" && slices.Contains(ids, req.BoutiqueID) {
		scope.EffectiveBoutiqueID = req.BoutiqueID
	}
	return scope, nil
}

// memberBoutiques returns the home boutique and every active membership allowing access, sorted.
func (s *scopeService) memberBoutiques(ctx context.Context, identity domain.Identity, access domain.MembershipAccess) ([]string, error) {
	memberships, err := s.boutiqueRepo.ListActiveMemberships(ctx, identity.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list memberships", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	if identity.BoutiqueID != "" {
		seen[identity.BoutiqueID] = true
		ids = append(ids, identity.BoutiqueID)
	}
	for _, m := range memberships {
		if !m.IsActive || !m.Access.Allows(access) || seen[m.BoutiqueID] {
			continue
		}
		seen[m.BoutiqueID] = true
		ids = append(ids, m.BoutiqueID)
	}
	slices.Sort(ids)
	return ids, nil
}

// AssertBoutiqueInScope fails with CROSS_BOUTIQUE_BLOCKED when boutiqueID is outside scope.
func (s *scopeService) AssertBoutiqueInScope(ctx context.Context, scope *domain.Scope, entityType, entityID, boutiqueID string) error {
	if scope != nil && scope.Contains(boutiqueID) {
		return nil
	}
	s.LogWarn(ctx, "Cross-boutique access blocked",
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("boutique_id", boutiqueID))
	return &apperrors.CrossBoutiqueError{EntityType: entityType, EntityID: entityID, BoutiqueID: boutiqueID}
}
