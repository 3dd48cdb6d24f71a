package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/itinerary-engine/internal/domain"
	apperrors "github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/usecase"
)

func TestBudgetUseCase_Breakdown(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	itinerary := &domain.Itinerary{ID: itineraryID, UserID: userID}
	items := []*domain.ItineraryItem{
		{
			ID: uuid.New(), DayNumber: 1, EstTransportCost: 30000,
			Details: []domain.ItineraryItemDetail{{SubTotal: 100000}},
		},
		{
			ID: uuid.New(), DayNumber: 2, EstTransportCost: 50000,
			Details: []domain.ItineraryItemDetail{{SubTotal: 60000}},
		},
	}
	lodgings := []*domain.ItineraryLodging{{TotalCost: 400000}}

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(itinerary, nil)
	mockItin.On("ListItems", ctx, itineraryID).Return(items, nil)
	mockItin.On("ListLodgings", ctx, itineraryID).Return(lodgings, nil)

	cacheKey := fmt.Sprintf("itinerary:budget:%s", itineraryID)
	mockCache := &MockCacheRepository{}
	mockCache.On("Get", ctx, cacheKey).Return(nil, nil)
	mockCache.On("Set", ctx, cacheKey, mock.Anything, time.Minute).Return(nil)

	uc := usecase.NewBudgetUseCase(mockItin, mockCache, zap.NewNop(), time.Minute)

	b, err := uc.Breakdown(ctx, userID, itineraryID)
	assert.NoError(t, err)
	assert.Equal(t, 160000.0, b.TicketsTotal)
	assert.Equal(t, 80000.0, b.TransportTotal)
	assert.Equal(t, 400000.0, b.LodgingTotal)
	assert.Equal(t, 640000.0, b.GrandTotal)
	assert.Equal(t, 130000.0, b.PerDayTotals[1])
	assert.Equal(t, 110000.0, b.PerDayTotals[2])

	// Same inputs, same totals.
	again, err := uc.Breakdown(ctx, userID, itineraryID)
	assert.NoError(t, err)
	assert.Equal(t, b, again)

	mockCache.AssertExpectations(t)
}

func TestBudgetUseCase_Breakdown_CacheHit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	cached := &domain.BudgetBreakdown{
		TicketsTotal: 90000,
		GrandTotal:   90000,
		PerDayTotals: map[int]float64{1: 90000},
	}
	data, _ := json.Marshal(cached)

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(&domain.Itinerary{ID: itineraryID, UserID: userID}, nil)

	mockCache := &MockCacheRepository{}
	mockCache.On("Get", ctx, fmt.Sprintf("itinerary:budget:%s", itineraryID)).Return(data, nil)

	uc := usecase.NewBudgetUseCase(mockItin, mockCache, zap.NewNop(), time.Minute)

	b, err := uc.Breakdown(ctx, userID, itineraryID)
	assert.NoError(t, err)
	assert.Equal(t, cached, b)

	// The cached copy short-circuits the item scan.
	mockItin.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestBudgetUseCase_Breakdown_NotFound(t *testing.T) {
	ctx := context.Background()
	itineraryID := uuid.New()

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(nil, nil)

	uc := usecase.NewBudgetUseCase(mockItin, nil, zap.NewNop(), time.Minute)

	b, err := uc.Breakdown(ctx, uuid.New(), itineraryID)
	assert.Nil(t, b)
	assert.True(t, apperrors.Is(err, apperrors.ErrItineraryNotFound))
}

func TestBudgetUseCase_Breakdown_Forbidden(t *testing.T) {
	ctx := context.Background()
	itineraryID := uuid.New()

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(&domain.Itinerary{
		ID:     itineraryID,
		UserID: uuid.New(),
	}, nil)

	uc := usecase.NewBudgetUseCase(mockItin, nil, zap.NewNop(), time.Minute)

	b, err := uc.Breakdown(ctx, uuid.New(), itineraryID)
	assert.Nil(t, b)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}
