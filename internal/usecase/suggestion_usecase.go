package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

const (
	defaultSuggestionLimit = 5
	maxSuggestionLimit     = 10
)

// SuggestionUseCase ranks replacement candidates for a stop. Results are
// cached in Redis keyed by the full request shape.
type SuggestionUseCase struct {
	destinationRepo repository.DestinationRepository
	cacheRepo       repository.CacheRepository
	logger          *zap.Logger
	cacheTTL        time.Duration
	weights         domain.ScoreWeights
}

func NewSuggestionUseCase(
	destinationRepo repository.DestinationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SuggestionUseCase {
	return &SuggestionUseCase{
		destinationRepo: destinationRepo,
		cacheRepo:       cacheRepo,
		logger:          logger,
		cacheTTL:        cacheTTL,
		weights:         domain.DefaultScoreWeights(),
	}
}

// Suggest returns up to limit candidates from the same city (and
// optionally category), excluding the stop being replaced, ranked with
// the same scoring as generation.
func (uc *SuggestionUseCase) Suggest(
	ctx context.Context,
	req dto.SuggestReplacementRequest,
) (*dto.SuggestReplacementResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	key := suggestionCacheKey(req, limit)
	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	var categories []int64
	if req.CategoryID != nil {
		categories = []int64{*req.CategoryID}
	}

	pool, err := uc.destinationRepo.ListByCity(ctx, req.CityID, categories)
	if err != nil {
		uc.logger.Error("Failed to load suggestion pool", zap.Error(err))
		return nil, err
	}

	candidates := make([]*domain.Destination, 0, len(pool))
	for _, d := range pool {
		if d.ID != req.ExcludeID {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.ErrEmptyCandidatePool
	}

	ranked := NewScorer(candidates, uc.weights).Rank(domain.Priority(req.Priority), req.SoloMode)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	resp := &dto.SuggestReplacementResponse{
		Suggestions: make([]dto.SuggestedDestination, 0, len(ranked)),
	}
	for _, s := range ranked {
		d := s.Destination
		suggestion := dto.SuggestedDestination{
			DestinationID: d.ID,
			Name:          d.Name,
			CategoryID:    d.CategoryID,
			Rating:        d.Rating,
			EstimatedCost: d.EstimatedVisitorCost(),
			Score:         s.Score,
			Activities:    d.Activities,
		}
		if req.SoloMode && d.SoloTip != nil {
			suggestion.SoloTip = d.SoloTip
		}
		resp.Suggestions = append(resp.Suggestions, suggestion)
	}

	uc.toCache(ctx, key, resp)
	return resp, nil
}

func (uc *SuggestionUseCase) fromCache(ctx context.Context, key string) *dto.SuggestReplacementResponse {
	if uc.cacheRepo == nil {
		return nil
	}
	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var resp dto.SuggestReplacementResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to decode cached suggestions", zap.Error(err))
		return nil
	}
	return &resp
}

func (uc *SuggestionUseCase) toCache(ctx context.Context, key string, resp *dto.SuggestReplacementResponse) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache suggestions", zap.Error(err))
	}
}

func suggestionCacheKey(req dto.SuggestReplacementRequest, limit int) string {
	categoryID := int64(0)
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	return fmt.Sprintf("suggest:%d:%d:%d:%s:%t:%d",
		req.CityID, req.ExcludeID, categoryID, req.Priority, req.SoloMode, limit)
}
