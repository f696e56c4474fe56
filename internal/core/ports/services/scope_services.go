package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// ScopeSvc resolves which boutiques a caller may read or write.
type ScopeSvc interface {
	// ResolveScope computes the caller's scope. Client-supplied filters only ever narrow it.
	ResolveScope(ctx context.Context, identity domain.Identity, req domain.ScopeRequest) (*domain.Scope, error)

	// AssertBoutiqueInScope fails with CROSS_BOUTIQUE_BLOCKED when boutiqueID is outside scope.
	AssertBoutiqueInScope(ctx context.Context, scope *domain.Scope, entityType, entityID, boutiqueID string) error
}
