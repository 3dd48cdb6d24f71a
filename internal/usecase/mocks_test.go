package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
)

// MockDestinationRepository is a mock of DestinationRepository
type MockDestinationRepository struct {
	mock.Mock
}

func (m *MockDestinationRepository) ListByCity(ctx context.Context, cityID int64, categoryIDs []int64) ([]*domain.Destination, error) {
	args := m.Called(ctx, cityID, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Destination), args.Error(1)
}

func (m *MockDestinationRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Destination, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*domain.Destination), args.Error(1)
}

// MockTransportRateRepository is a mock of TransportRateRepository
type MockTransportRateRepository struct {
	mock.Mock
}

func (m *MockTransportRateRepository) GetByType(ctx context.Context, transportType domain.TransportType) (*domain.TransportRate, error) {
	args := m.Called(ctx, transportType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransportRate), args.Error(1)
}

// MockItineraryTx is a mock of the transaction-scoped write surface
type MockItineraryTx struct {
	mock.Mock
}

func (m *MockItineraryTx) UpdateItemPlacement(ctx context.Context, placement domain.ItemPlacement) error {
	args := m.Called(ctx, placement)
	return args.Error(0)
}

// MockItineraryRepository is a mock of ItineraryRepository. WithinTx
// runs the callback against the Tx field so tests observe the same
// commit-or-rollback behavior as the real transaction.
type MockItineraryRepository struct {
	mock.Mock
	Tx *MockItineraryTx
}

func (m *MockItineraryRepository) Create(ctx context.Context, itinerary *domain.Itinerary, items []*domain.ItineraryItem) error {
	args := m.Called(ctx, itinerary, items)
	return args.Error(0)
}

func (m *MockItineraryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItineraryRepository) ListItems(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryItem, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ItineraryItem), args.Error(1)
}

func (m *MockItineraryRepository) ListLodgings(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryLodging, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ItineraryLodging), args.Error(1)
}

func (m *MockItineraryRepository) ReplaceDayItems(ctx context.Context, itineraryID uuid.UUID, dayNumber int, items []*domain.ItineraryItem) error {
	args := m.Called(ctx, itineraryID, dayNumber, items)
	return args.Error(0)
}

func (m *MockItineraryRepository) UpdateEstimatedBudget(ctx context.Context, id uuid.UUID, budget float64) error {
	args := m.Called(ctx, id, budget)
	return args.Error(0)
}

func (m *MockItineraryRepository) WithinTx(ctx context.Context, fn func(tx repository.ItineraryTx) error) error {
	args := m.Called(ctx, fn)
	if m.Tx != nil {
		if err := fn(m.Tx); err != nil {
			return err
		}
	}
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
