package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/itinerary-engine/internal/domain"
	apperrors "github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/usecase"
)

func TestItineraryUseCase_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	itinerary := &domain.Itinerary{ID: itineraryID, UserID: userID, Title: "Weekend Trip"}
	items := []*domain.ItineraryItem{
		{ID: uuid.New(), ItineraryID: itineraryID, DestinationID: 1, DayNumber: 1, SequenceOrder: 1},
	}

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(itinerary, nil)
	mockItin.On("ListItems", ctx, itineraryID).Return(items, nil)

	uc := usecase.NewItineraryUseCase(mockItin, nil, zap.NewNop())

	resp, err := uc.Get(ctx, userID, itineraryID)
	assert.NoError(t, err)
	assert.Equal(t, itinerary, resp.Itinerary)
	assert.Len(t, resp.Items, 1)
}

func TestItineraryUseCase_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	itineraryID := uuid.New()

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(nil, nil)

	uc := usecase.NewItineraryUseCase(mockItin, nil, zap.NewNop())

	resp, err := uc.Get(ctx, uuid.New(), itineraryID)
	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrItineraryNotFound))
}

func TestItineraryUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(&domain.Itinerary{ID: itineraryID, UserID: userID}, nil)
	mockItin.On("Delete", ctx, itineraryID).Return(nil)

	mockCache := &MockCacheRepository{}
	mockCache.On("Delete", ctx, fmt.Sprintf("itinerary:budget:%s", itineraryID)).Return(nil)

	uc := usecase.NewItineraryUseCase(mockItin, mockCache, zap.NewNop())

	err := uc.Delete(ctx, userID, itineraryID)
	assert.NoError(t, err)

	mockItin.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestItineraryUseCase_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	itineraryID := uuid.New()

	mockItin := &MockItineraryRepository{}
	mockItin.On("GetByID", ctx, itineraryID).Return(&domain.Itinerary{
		ID:     itineraryID,
		UserID: uuid.New(),
	}, nil)

	uc := usecase.NewItineraryUseCase(mockItin, nil, zap.NewNop())

	err := uc.Delete(ctx, uuid.New(), itineraryID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	mockItin.AssertNotCalled(t, "Delete", ctx, itineraryID)
}
