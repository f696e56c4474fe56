package repositories

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// ZoneReader defines read operations for inventory zones
type ZoneReader interface {
	// FindZoneByID retrieves an inventory zone.
	FindZoneByID(ctx context.Context, zoneID string) (*domain.InventoryZone, error)

	// ListActiveZoneAssignments returns the active assignments of the boutiques.
	ListActiveZoneAssignments(ctx context.Context, boutiqueIDs []string) ([]domain.ZoneAssignment, error)
}

// ZoneWriter defines write operations for zone assignments
type ZoneWriter interface {
	// AssignZone ends the zone's active assignment and inserts the new one atomically.
	AssignZone(ctx context.Context, assignment domain.ZoneAssignment) (*domain.ZoneAssignment, error)
}

// ZoneRepositoryFacade combines all zone-related repository interfaces
type ZoneRepositoryFacade interface {
	ZoneReader
	ZoneWriter
}
