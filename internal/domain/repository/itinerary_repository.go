package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
)

// ItineraryRepository persists itineraries and their items.
type ItineraryRepository interface {
	// Create stores a new itinerary with its items and ticket details in
	// one transaction.
	Create(ctx context.Context, itinerary *domain.Itinerary, items []*domain.ItineraryItem) error

	// GetByID returns an itinerary, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Itinerary, error)

	// Delete removes an itinerary and everything hanging off it.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListItems returns all items of an itinerary with ticket details,
	// ordered by day then sequence.
	ListItems(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryItem, error)

	// ListLodgings returns the lodgings attached to an itinerary.
	ListLodgings(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryLodging, error)

	// ReplaceDayItems swaps out the items of one day in one transaction.
	ReplaceDayItems(ctx context.Context, itineraryID uuid.UUID, dayNumber int, items []*domain.ItineraryItem) error

	// UpdateEstimatedBudget persists the derived budget figure.
	UpdateEstimatedBudget(ctx context.Context, id uuid.UUID, budget float64) error

	// WithinTx runs fn inside a single transaction. Every placement
	// update made through the ItineraryTx is committed together, or
	// rolled back together if fn returns an error.
	WithinTx(ctx context.Context, fn func(tx ItineraryTx) error) error
}

// ItineraryTx is the transaction-scoped write surface used by reorder
// recalculation.
type ItineraryTx interface {
	UpdateItemPlacement(ctx context.Context, placement domain.ItemPlacement) error
}
