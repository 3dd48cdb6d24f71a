package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"go.uber.org/zap"
)

// BudgetUseCase aggregates an itinerary's cost breakdown. Pure read
// aggregation: calling it twice without intervening mutation yields
// identical totals. Results are cached briefly; reorder and day
// regeneration invalidate the cache.
type BudgetUseCase struct {
	itineraryRepo repository.ItineraryRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewBudgetUseCase(
	itineraryRepo repository.ItineraryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *BudgetUseCase {
	return &BudgetUseCase{
		itineraryRepo: itineraryRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// Breakdown computes the full cost view for an owner's itinerary.
func (uc *BudgetUseCase) Breakdown(
	ctx context.Context,
	userID uuid.UUID,
	itineraryID uuid.UUID,
) (*domain.BudgetBreakdown, error) {
	itinerary, err := uc.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if itinerary == nil {
		return nil, errors.ErrItineraryNotFound
	}
	if itinerary.UserID != userID {
		return nil, errors.ErrForbidden
	}

	if cached := uc.fromCache(ctx, itineraryID); cached != nil {
		return cached, nil
	}

	items, err := uc.itineraryRepo.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	lodgings, err := uc.itineraryRepo.ListLodgings(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	breakdown := domain.ComputeBreakdown(items, lodgings)
	uc.toCache(ctx, itineraryID, breakdown)
	return breakdown, nil
}

func (uc *BudgetUseCase) fromCache(ctx context.Context, itineraryID uuid.UUID) *domain.BudgetBreakdown {
	if uc.cacheRepo == nil {
		return nil
	}
	data, err := uc.cacheRepo.Get(ctx, budgetCacheKey(itineraryID))
	if err != nil || data == nil {
		return nil
	}
	var breakdown domain.BudgetBreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		uc.logger.Warn("Failed to decode cached breakdown", zap.Error(err))
		return nil
	}
	return &breakdown
}

func (uc *BudgetUseCase) toCache(ctx context.Context, itineraryID uuid.UUID, breakdown *domain.BudgetBreakdown) {
	if uc.cacheRepo == nil {
		return
	}
	data, err := json.Marshal(breakdown)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, budgetCacheKey(itineraryID), data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache breakdown", zap.Error(err))
	}
}

func budgetCacheKey(itineraryID uuid.UUID) string {
	return fmt.Sprintf("itinerary:budget:%s", itineraryID)
}
