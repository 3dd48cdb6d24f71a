package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

// ItineraryUseCase covers the thin owner-scoped reads and deletes around
// the engine.
type ItineraryUseCase struct {
	itineraryRepo repository.ItineraryRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
}

func NewItineraryUseCase(
	itineraryRepo repository.ItineraryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *ItineraryUseCase {
	return &ItineraryUseCase{
		itineraryRepo: itineraryRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// Get returns an itinerary with its items for its owner.
func (uc *ItineraryUseCase) Get(
	ctx context.Context,
	userID uuid.UUID,
	itineraryID uuid.UUID,
) (*dto.ItineraryResponse, error) {
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

	items, err := uc.itineraryRepo.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	return &dto.ItineraryResponse{
		Itinerary: itinerary,
		Items:     items,
	}, nil
}

// Delete removes an owner's itinerary with its items and details.
func (uc *ItineraryUseCase) Delete(
	ctx context.Context,
	userID uuid.UUID,
	itineraryID uuid.UUID,
) error {
	itinerary, err := uc.itineraryRepo.GetByID(ctx, itineraryID)
	if err != nil {
		return err
	}
	if itinerary == nil {
		return errors.ErrItineraryNotFound
	}
	if itinerary.UserID != userID {
		return errors.ErrForbidden
	}

	if err := uc.itineraryRepo.Delete(ctx, itineraryID); err != nil {
		uc.logger.Error("Failed to delete itinerary",
			zap.String("itinerary_id", itineraryID.String()),
			zap.Error(err))
		return err
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.Delete(ctx, budgetCacheKey(itineraryID)); err != nil {
			uc.logger.Warn("Failed to invalidate budget cache", zap.Error(err))
		}
	}
	return nil
}
