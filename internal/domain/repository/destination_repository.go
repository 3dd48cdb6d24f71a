package repository

import (
	"context"

	"github.com/itinerary-engine/internal/domain"
)

// DestinationRepository is the read side of the destination catalog.
type DestinationRepository interface {
	// ListByCity returns destinations for a city, optionally filtered by
	// category membership. Ticket variants come preloaded.
	ListByCity(ctx context.Context, cityID int64, categoryIDs []int64) ([]*domain.Destination, error)

	// GetByID returns one destination with its ticket variants.
	GetByID(ctx context.Context, id int64) (*domain.Destination, error)

	// ListByIDs returns destinations for a set of ids, keyed by id.
	ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Destination, error)
}
