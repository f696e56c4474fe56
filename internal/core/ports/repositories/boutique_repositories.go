package repositories

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// BoutiqueReader defines read operations for boutique data
type BoutiqueReader interface {
	// FindBoutiqueByID retrieves a boutique by its ID.
	FindBoutiqueByID(ctx context.Context, boutiqueID string) (*domain.Boutique, error)

	// ListActiveBoutiqueIDs returns the ids of every active boutique, ordered by code.
	ListActiveBoutiqueIDs(ctx context.Context) ([]string, error)
}

// MembershipReader defines read operations for boutique memberships
type MembershipReader interface {
	// ListActiveMemberships returns the user's active memberships in active boutiques.
	ListActiveMemberships(ctx context.Context, userID string) ([]domain.BoutiqueMembership, error)
}

// AuditWriter persists audit log entries.
type AuditWriter interface {
	// SaveAuditEntry writes an audit entry. Callers granting elevated access must check the error.
	SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error
}

// BoutiqueRepositoryFacade combines all boutique-related repository interfaces
type BoutiqueRepositoryFacade interface {
	BoutiqueReader
	MembershipReader
	AuditWriter
}
