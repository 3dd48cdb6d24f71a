package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/itinerary-engine/internal/domain"
	apperrors "github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/usecase"
	"github.com/itinerary-engine/internal/usecase/dto"
)

func suggestionPool(n int) []*domain.Destination {
	pool := make([]*domain.Destination, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		tip := "Go early to beat the tour buses"
		pool = append(pool, &domain.Destination{
			ID:         id,
			CityID:     1,
			CategoryID: 1,
			Rating:     5.0 - 0.1*float64(i),
			SoloScore:  3,
			SoloTip:    &tip,
		})
	}
	return pool
}

func TestSuggestionUseCase_Suggest(t *testing.T) {
	ctx := context.Background()

	mockDest := &MockDestinationRepository{}
	mockDest.On("ListByCity", ctx, int64(1), mock.Anything).Return(suggestionPool(8), nil)

	mockCache := &MockCacheRepository{}
	mockCache.On("Get", ctx, mock.Anything).Return(nil, nil)
	mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Minute).Return(nil)

	uc := usecase.NewSuggestionUseCase(mockDest, mockCache, zap.NewNop(), time.Minute)

	resp, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:    1,
		ExcludeID: 1,
		Priority:  "rating",
	})

	assert.NoError(t, err)
	// Default limit of five, the excluded stop filtered out, best first.
	assert.Len(t, resp.Suggestions, 5)
	assert.Equal(t, int64(2), resp.Suggestions[0].DestinationID)
	for _, s := range resp.Suggestions {
		assert.NotEqual(t, int64(1), s.DestinationID)
		// Solo tips only surface in solo mode
		assert.Nil(t, s.SoloTip)
	}
}

func TestSuggestionUseCase_Suggest_LimitClamped(t *testing.T) {
	ctx := context.Background()

	mockDest := &MockDestinationRepository{}
	mockDest.On("ListByCity", ctx, int64(1), mock.Anything).Return(suggestionPool(20), nil)

	uc := usecase.NewSuggestionUseCase(mockDest, nil, zap.NewNop(), time.Minute)

	resp, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:    1,
		ExcludeID: 99,
		Priority:  "rating",
		Limit:     50,
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Suggestions, 10)
}

func TestSuggestionUseCase_Suggest_SoloMode(t *testing.T) {
	ctx := context.Background()

	mockDest := &MockDestinationRepository{}
	mockDest.On("ListByCity", ctx, int64(1), mock.Anything).Return(suggestionPool(3), nil)

	uc := usecase.NewSuggestionUseCase(mockDest, nil, zap.NewNop(), time.Minute)

	resp, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:    1,
		ExcludeID: 99,
		Priority:  "rating",
		SoloMode:  true,
	})

	assert.NoError(t, err)
	for _, s := range resp.Suggestions {
		assert.NotNil(t, s.SoloTip)
	}
}

func TestSuggestionUseCase_Suggest_EmptyAfterExclusion(t *testing.T) {
	ctx := context.Background()

	mockDest := &MockDestinationRepository{}
	mockDest.On("ListByCity", ctx, int64(1), mock.Anything).Return(suggestionPool(1), nil)

	uc := usecase.NewSuggestionUseCase(mockDest, nil, zap.NewNop(), time.Minute)

	resp, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:    1,
		ExcludeID: 1,
		Priority:  "rating",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyCandidatePool))
}

func TestSuggestionUseCase_Suggest_CacheHit(t *testing.T) {
	ctx := context.Background()

	cached := &dto.SuggestReplacementResponse{
		Suggestions: []dto.SuggestedDestination{{DestinationID: 42, Name: "Cached Spot"}},
	}
	data, _ := json.Marshal(cached)

	mockCache := &MockCacheRepository{}
	mockCache.On("Get", ctx, "suggest:1:7:0:rating:false:5").Return(data, nil)

	mockDest := &MockDestinationRepository{}

	uc := usecase.NewSuggestionUseCase(mockDest, mockCache, zap.NewNop(), time.Minute)

	resp, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:    1,
		ExcludeID: 7,
		Priority:  "rating",
	})

	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	mockDest.AssertNotCalled(t, "ListByCity", mock.Anything, mock.Anything, mock.Anything)
}

func TestSuggestionUseCase_Suggest_CategoryFilterPassedThrough(t *testing.T) {
	ctx := context.Background()
	categoryID := int64(4)

	mockDest := &MockDestinationRepository{}
	mockDest.On("ListByCity", ctx, int64(1), []int64{4}).Return(suggestionPool(3), nil)

	uc := usecase.NewSuggestionUseCase(mockDest, nil, zap.NewNop(), time.Minute)

	_, err := uc.Suggest(ctx, dto.SuggestReplacementRequest{
		CityID:     1,
		ExcludeID:  99,
		CategoryID: &categoryID,
		Priority:   "rating",
	})

	assert.NoError(t, err)
	mockDest.AssertExpectations(t)
}
