package repository

import (
	"context"

	"github.com/itinerary-engine/internal/domain"
)

// TransportRateRepository reads the per-vehicle pricing table.
type TransportRateRepository interface {
	// GetByType returns the rate row for a vehicle class, or (nil, nil)
	// when no row exists. Callers substitute fallback rates on misses.
	GetByType(ctx context.Context, transportType domain.TransportType) (*domain.TransportRate, error)
}
