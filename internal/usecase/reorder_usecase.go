package usecase

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/pkg/utils"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

// ReorderUseCase re-derives placement, distances, transport costs and
// the budget after a user manually reorders items. All per-day updates
// of one request are applied in a single transaction: either every item
// update is visible, or none are.
type ReorderUseCase struct {
	itineraryRepo   repository.ItineraryRepository
	destinationRepo repository.DestinationRepository
	cacheRepo       repository.CacheRepository
	pricer          *TransportPricer
	logger          *zap.Logger
}

func NewReorderUseCase(
	itineraryRepo repository.ItineraryRepository,
	destinationRepo repository.DestinationRepository,
	cacheRepo repository.CacheRepository,
	pricer *TransportPricer,
	logger *zap.Logger,
) *ReorderUseCase {
	return &ReorderUseCase{
		itineraryRepo:   itineraryRepo,
		destinationRepo: destinationRepo,
		cacheRepo:       cacheRepo,
		pricer:          pricer,
		logger:          logger,
	}
}

// Reorder applies a full new ordering to an itinerary. The request must
// mention every item exactly once; sequence_order is re-derived as the
// 1-based position within each day group.
func (uc *ReorderUseCase) Reorder(
	ctx context.Context,
	userID uuid.UUID,
	itineraryID uuid.UUID,
	req dto.ReorderRequest,
) (*dto.ReorderResponse, error) {
	if req.StartLocation != nil && !utils.ValidateCoordinates(req.StartLocation.Lat, req.StartLocation.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

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

	byID := make(map[uuid.UUID]*domain.ItineraryItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	// Day number -> ordered item ids, built once from the request order.
	orderedByDay := make(map[int][]uuid.UUID)
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, ri := range req.Items {
		itemID, err := uuid.Parse(ri.ID)
		if err != nil {
			return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{"item_id": ri.ID})
		}
		if _, ok := byID[itemID]; !ok {
			return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
				"item_id": ri.ID,
				"reason":  "item does not belong to this itinerary",
			})
		}
		if seen[itemID] {
			return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
				"item_id": ri.ID,
				"reason":  "item listed more than once",
			})
		}
		if ri.DayNumber > itinerary.TotalDays {
			return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
				"item_id":    ri.ID,
				"day_number": ri.DayNumber,
				"total_days": itinerary.TotalDays,
			})
		}
		seen[itemID] = true
		orderedByDay[ri.DayNumber] = append(orderedByDay[ri.DayNumber], itemID)
	}
	if len(seen) != len(items) {
		return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"reason":         "request must list every item of the itinerary",
			"items_expected": len(items),
			"items_received": len(seen),
		})
	}

	destinations, err := uc.loadDestinations(ctx, items)
	if err != nil {
		return nil, err
	}

	lodgings, err := uc.itineraryRepo.ListLodgings(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	start := uc.resolveStart(req.StartLocation, lodgings, destinations)

	fareTable := uc.pricer.FareTable(ctx)
	vehicle := domain.SelectVehicle(itinerary.TransportPreference, itinerary.PartyCount)

	placements := uc.computePlacements(orderedByDay, byID, destinations, start, fareTable, vehicle)

	err = uc.itineraryRepo.WithinTx(ctx, func(tx repository.ItineraryTx) error {
		for _, placement := range placements {
			if err := tx.UpdateItemPlacement(ctx, placement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("Reorder transaction failed, all updates rolled back",
			zap.String("itinerary_id", itineraryID.String()),
			zap.Error(err))
		return nil, err
	}

	updated, err := uc.itineraryRepo.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	breakdown := domain.ComputeBreakdown(updated, lodgings)

	if err := uc.itineraryRepo.UpdateEstimatedBudget(ctx, itineraryID, breakdown.EstimatedBudget()); err != nil {
		uc.logger.Warn("Failed to update estimated budget", zap.Error(err))
	}
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.Delete(ctx, budgetCacheKey(itineraryID)); err != nil {
			uc.logger.Warn("Failed to invalidate budget cache", zap.Error(err))
		}
	}

	resp := &dto.ReorderResponse{
		ItineraryID: itineraryID.String(),
		Items:       make([]dto.ReorderedItem, 0, len(updated)),
		Budget:      breakdown,
	}
	for _, item := range updated {
		resp.Items = append(resp.Items, dto.ReorderedItem{
			ItemID:             item.ID.String(),
			DestinationID:      item.DestinationID,
			DayNumber:          item.DayNumber,
			SequenceOrder:      item.SequenceOrder,
			DistanceFromPrevKm: item.DistanceFromPrevKm,
			TransportMode:      string(item.TransportMode),
			EstTransportCost:   item.EstTransportCost,
		})
	}
	return resp, nil
}

// computePlacements walks every day group in its new order, deriving the
// 1-based sequence and the leg into each stop from the previous stop (or
// the start anchor for the first).
func (uc *ReorderUseCase) computePlacements(
	orderedByDay map[int][]uuid.UUID,
	byID map[uuid.UUID]*domain.ItineraryItem,
	destinations map[int64]*domain.Destination,
	start geoPoint,
	fareTable domain.FareTable,
	vehicle domain.TransportType,
) []domain.ItemPlacement {
	days := make([]int, 0, len(orderedByDay))
	for day := range orderedByDay {
		days = append(days, day)
	}
	sort.Ints(days)

	var placements []domain.ItemPlacement
	for _, day := range days {
		cur := start
		for i, itemID := range orderedByDay[day] {
			item := byID[itemID]

			dist := 0.0
			if dest, ok := destinations[item.DestinationID]; ok {
				dist = utils.HaversineKm(cur.lat, cur.lon, dest.Lat, dest.Lon)
				cur = geoPoint{dest.Lat, dest.Lon}
			}
			leg := fareTable.PriceLeg(vehicle, dist)

			placements = append(placements, domain.ItemPlacement{
				ItemID:             itemID,
				DayNumber:          day,
				SequenceOrder:      i + 1,
				DistanceFromPrevKm: leg.DistanceKm,
				TransportMode:      leg.VehicleType,
				EstTransportCost:   leg.Cost,
			})
		}
	}
	return placements
}

func (uc *ReorderUseCase) loadDestinations(
	ctx context.Context,
	items []*domain.ItineraryItem,
) (map[int64]*domain.Destination, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !seen[item.DestinationID] {
			seen[item.DestinationID] = true
			ids = append(ids, item.DestinationID)
		}
	}

	destinations, err := uc.destinationRepo.ListByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Failed to load destinations for reorder", zap.Error(err))
		return nil, err
	}
	return destinations, nil
}

func (uc *ReorderUseCase) resolveStart(
	loc *dto.Point,
	lodgings []*domain.ItineraryLodging,
	destinations map[int64]*domain.Destination,
) geoPoint {
	if loc != nil {
		return geoPoint{loc.Lat, loc.Lng}
	}
	for _, l := range lodgings {
		if utils.ValidateCoordinates(l.Lat, l.Lon) && (l.Lat != 0 || l.Lon != 0) {
			return geoPoint{l.Lat, l.Lon}
		}
	}

	var lat, lon float64
	n := 0
	for _, d := range destinations {
		lat += d.Lat
		lon += d.Lon
		n++
	}
	if n == 0 {
		return geoPoint{}
	}
	return geoPoint{lat / float64(n), lon / float64(n)}
}
