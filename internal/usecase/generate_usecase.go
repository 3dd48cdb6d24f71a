package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/pkg/utils"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// GeneratorOptions are the planner constants. Zero values fall back to
// 40 km/h travel speed, an 08:00 day start and equal balanced weights.
type GeneratorOptions struct {
	AvgSpeedKmh float64
	DayStart    string
	Weights     domain.ScoreWeights
}

// GenerateUseCase runs the itinerary generation pipeline: candidate pool
// assembly, scoring, day packing, within-day sequencing, leg costing,
// ticket aggregation and per-day budget enforcement.
type GenerateUseCase struct {
	destinationRepo repository.DestinationRepository
	itineraryRepo   repository.ItineraryRepository
	cacheRepo       repository.CacheRepository
	pricer          *TransportPricer
	logger          *zap.Logger

	avgSpeedKmh float64
	dayStartMin int
	weights     domain.ScoreWeights
}

func NewGenerateUseCase(
	destinationRepo repository.DestinationRepository,
	itineraryRepo repository.ItineraryRepository,
	cacheRepo repository.CacheRepository,
	pricer *TransportPricer,
	opts GeneratorOptions,
	logger *zap.Logger,
) *GenerateUseCase {
	if opts.AvgSpeedKmh <= 0 {
		opts.AvgSpeedKmh = 40
	}
	dayStart := 8 * 60
	if m, err := utils.ParseClock(opts.DayStart); err == nil {
		dayStart = m
	}
	if opts.Weights == (domain.ScoreWeights{}) {
		opts.Weights = domain.DefaultScoreWeights()
	}

	return &GenerateUseCase{
		destinationRepo: destinationRepo,
		itineraryRepo:   itineraryRepo,
		cacheRepo:       cacheRepo,
		pricer:          pricer,
		logger:          logger,
		avgSpeedKmh:     opts.AvgSpeedKmh,
		dayStartMin:     dayStart,
		weights:         opts.Weights,
	}
}

// Generate builds and persists a full multi-day plan.
func (uc *GenerateUseCase) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req dto.GeneratePlanRequest,
) (*dto.GeneratePlanResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{"field": "start_date"})
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{"field": "end_date"})
	}

	totalDays := domain.TotalDays(startDate, endDate)
	if totalDays <= 0 {
		return nil, errors.ErrInvalidDateRange
	}

	if req.StartLocation != nil && !utils.ValidateCoordinates(req.StartLocation.Lat, req.StartLocation.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	pool, err := uc.destinationRepo.ListByCity(ctx, req.CityID, req.Categories)
	if err != nil {
		uc.logger.Error("Failed to load candidate pool", zap.Error(err))
		return nil, err
	}
	if len(pool) == 0 {
		return nil, errors.ErrEmptyCandidatePool
	}

	params := packParams{
		pax:          req.TotalPaxCount,
		vehicle:      domain.SelectVehicle(domain.TransportType(req.TransportationPreference), req.TotalPaxCount),
		fareTable:    uc.pricer.FareTable(ctx),
		pace:         domain.Pace(req.Pace),
		priority:     domain.Priority(req.Priority),
		soloMode:     req.SoloMode,
		budgetPerDay: req.BudgetPerDay,
		start:        uc.resolveStart(req.StartLocation, pool),
	}

	scorer := NewScorer(pool, uc.weights)
	ranked := scorer.Rank(params.priority, params.soloMode)
	used := make(map[int64]bool)

	itinerary := &domain.Itinerary{
		ID:                  uuid.New(),
		UserID:              userID,
		CityID:              req.CityID,
		Title:               req.Title,
		StartDate:           startDate,
		EndDate:             endDate,
		PartyCount:          req.TotalPaxCount,
		TransportPreference: domain.TransportType(req.TransportationPreference),
		TotalDays:           totalDays,
	}

	days := make([]dto.DayPlan, 0, totalDays)
	items := make([]*domain.ItineraryItem, 0)

	for day := 1; day <= totalDays; day++ {
		packed := uc.packDay(ranked, used, params)
		dayItems := uc.toItems(itinerary.ID, day, packed)
		items = append(items, dayItems...)
		days = append(days, uc.toDayPlan(day, packed, dayItems))
	}

	breakdown := domain.ComputeBreakdown(items, nil)
	itinerary.EstimatedBudget = breakdown.EstimatedBudget()

	if err := uc.itineraryRepo.Create(ctx, itinerary, items); err != nil {
		uc.logger.Error("Failed to persist itinerary",
			zap.String("itinerary_id", itinerary.ID.String()),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Itinerary generated",
		zap.String("itinerary_id", itinerary.ID.String()),
		zap.Int("total_days", totalDays),
		zap.Int("items", len(items)))

	return &dto.GeneratePlanResponse{
		ItineraryID: itinerary.ID.String(),
		Title:       itinerary.Title,
		TotalDays:   totalDays,
		Days:        days,
		Budget:      breakdown,
	}, nil
}

// RegenerateDay re-runs the pipeline for one day of an existing
// itinerary. Explicitly excluded destinations and every destination
// already placed on other days stay out of the pool.
func (uc *GenerateUseCase) RegenerateDay(
	ctx context.Context,
	userID uuid.UUID,
	itineraryID uuid.UUID,
	req dto.RegenerateDayRequest,
) (*dto.RegenerateDayResponse, error) {
	if req.DayNumber > req.TotalDays {
		return nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"field":      "day_number",
			"total_days": req.TotalDays,
		})
	}
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

	pool, err := uc.destinationRepo.ListByCity(ctx, req.CityID, req.Categories)
	if err != nil {
		uc.logger.Error("Failed to load candidate pool", zap.Error(err))
		return nil, err
	}
	if len(pool) == 0 {
		return nil, errors.ErrEmptyCandidatePool
	}

	existing, err := uc.itineraryRepo.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	used := make(map[int64]bool)
	for _, id := range req.ExcludeIDs {
		used[id] = true
	}
	for _, item := range existing {
		if item.DayNumber != req.DayNumber {
			used[item.DestinationID] = true
		}
	}

	lodgings, err := uc.itineraryRepo.ListLodgings(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	params := packParams{
		pax:          req.TotalPaxCount,
		vehicle:      domain.SelectVehicle(domain.TransportType(req.TransportationPreference), req.TotalPaxCount),
		fareTable:    uc.pricer.FareTable(ctx),
		pace:         domain.Pace(req.Pace),
		priority:     domain.Priority(req.Priority),
		soloMode:     req.SoloMode,
		budgetPerDay: req.BudgetPerDay,
		start:        uc.resolveDayStart(req.StartLocation, lodgings, pool),
	}

	scorer := NewScorer(pool, uc.weights)
	ranked := scorer.Rank(params.priority, params.soloMode)

	packed := uc.packDay(ranked, used, params)
	dayItems := uc.toItems(itineraryID, req.DayNumber, packed)

	if err := uc.itineraryRepo.ReplaceDayItems(ctx, itineraryID, req.DayNumber, dayItems); err != nil {
		uc.logger.Error("Failed to replace day items",
			zap.String("itinerary_id", itineraryID.String()),
			zap.Int("day_number", req.DayNumber),
			zap.Error(err))
		return nil, err
	}

	allItems, err := uc.itineraryRepo.ListItems(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	breakdown := domain.ComputeBreakdown(allItems, lodgings)

	if err := uc.itineraryRepo.UpdateEstimatedBudget(ctx, itineraryID, breakdown.EstimatedBudget()); err != nil {
		uc.logger.Warn("Failed to update estimated budget", zap.Error(err))
	}
	uc.invalidateBudget(ctx, itineraryID)

	return &dto.RegenerateDayResponse{
		ItineraryID: itineraryID.String(),
		Day:         uc.toDayPlan(req.DayNumber, packed, dayItems),
		Budget:      breakdown,
	}, nil
}

func (uc *GenerateUseCase) invalidateBudget(ctx context.Context, itineraryID uuid.UUID) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, budgetCacheKey(itineraryID)); err != nil {
		uc.logger.Warn("Failed to invalidate budget cache", zap.Error(err))
	}
}

// geoPoint is an internal coordinate pair.
type geoPoint struct {
	lat, lon float64
}

// packParams is everything a single day needs.
type packParams struct {
	pax          int
	vehicle      domain.TransportType
	fareTable    domain.FareTable
	pace         domain.Pace
	priority     domain.Priority
	soloMode     bool
	budgetPerDay float64
	start        geoPoint
}

// packedStop is one sequenced, timed and costed stop.
type packedStop struct {
	dest     *domain.Destination
	score    float64
	startMin int
	endMin   int
	leg      domain.LegEstimate
	tickets  []dto.TicketLine
}

// packedDay is the result of packing one day.
type packedDay struct {
	stops      []packedStop
	cost       float64
	overBudget bool
}

// packDay fills one day: greedy selection by score under the pace time
// budget, nearest-neighbor sequencing from the start point, leg costing,
// ticket aggregation and budget enforcement. Selected destinations are
// marked in used.
func (uc *GenerateUseCase) packDay(
	ranked []ScoredDestination,
	used map[int64]bool,
	p packParams,
) packedDay {
	capacity := p.pace.Capacity()

	selected := uc.selectStops(ranked, used, p, capacity)
	day := uc.sequenceAndCost(selected, p, false)

	if p.budgetPerDay <= 0 {
		return day
	}

	// Budget enforcement: evict the worst value-per-cost stop and try a
	// strictly cheaper replacement; drop when none fits. The last stop is
	// only ever swapped, never dropped: when no substitute exists for it
	// the day ships with it, over budget and flagged.
	evicted := make(map[int64]bool)
	for day.cost > p.budgetPerDay {
		idx := lowestValuePerCost(day.stops)
		victim := ScoredDestination{Destination: day.stops[idx].dest, Score: day.stops[idx].score}
		victimCost := victim.Destination.MandatoryTicketCost() * float64(p.pax)

		delete(used, victim.Destination.ID)
		evicted[victim.Destination.ID] = true
		selected = removeByID(selected, victim.Destination.ID)

		repl := uc.findReplacement(ranked, used, evicted, selected, p, capacity, victimCost)
		if repl != nil {
			used[repl.Destination.ID] = true
			selected = append(selected, *repl)
		} else if len(selected) == 0 {
			used[victim.Destination.ID] = true
			delete(evicted, victim.Destination.ID)
			selected = append(selected, victim)
			day = uc.sequenceAndCost(selected, p, false)
			break
		}

		day = uc.sequenceAndCost(selected, p, false)
	}

	if day.cost > p.budgetPerDay {
		day.overBudget = true
		return day
	}

	// Spend remaining headroom on optional ticket variants.
	return uc.sequenceAndCost(selected, p, true)
}

// selectStops greedily picks the highest-scored candidates that still
// fit the day's time budget and their own opening windows.
func (uc *GenerateUseCase) selectStops(
	ranked []ScoredDestination,
	used map[int64]bool,
	p packParams,
	capacity domain.PaceCapacity,
) []ScoredDestination {
	var selected []ScoredDestination
	cur := p.start
	clock := uc.dayStartMin
	active := 0

	for len(selected) < capacity.MaxStops {
		picked := false
		for _, cand := range ranked {
			d := cand.Destination
			if used[d.ID] {
				continue
			}

			dist := utils.HaversineKm(cur.lat, cur.lon, d.Lat, d.Lon)
			travel := uc.travelMinutes(dist)
			arrive := clock + travel
			open, close := d.VisitWindow()
			if arrive < open {
				arrive = open
			}
			end := arrive + d.AvgVisitMinutes
			if end > close {
				continue
			}
			if active+travel+d.AvgVisitMinutes > capacity.MaxActiveMinutes {
				continue
			}

			used[d.ID] = true
			selected = append(selected, cand)
			cur = geoPoint{d.Lat, d.Lon}
			clock = end
			active += travel + d.AvgVisitMinutes
			picked = true
			break
		}
		if !picked {
			break
		}
	}
	return selected
}

// findReplacement scans for the next-best unused candidate that fits the
// time budget alongside the current selection and is strictly cheaper
// than the evicted stop, so enforcement always terminates.
func (uc *GenerateUseCase) findReplacement(
	ranked []ScoredDestination,
	used map[int64]bool,
	evicted map[int64]bool,
	selected []ScoredDestination,
	p packParams,
	capacity domain.PaceCapacity,
	maxTicketCost float64,
) *ScoredDestination {
	if len(selected) >= capacity.MaxStops {
		return nil
	}

	activeBudget := capacity.MaxActiveMinutes - uc.activeMinutes(selected, p)

	for _, cand := range ranked {
		d := cand.Destination
		if used[d.ID] || evicted[d.ID] {
			continue
		}
		if d.MandatoryTicketCost()*float64(p.pax) >= maxTicketCost {
			continue
		}
		last := p.start
		if n := len(selected); n > 0 {
			last = geoPoint{selected[n-1].Destination.Lat, selected[n-1].Destination.Lon}
		}
		travel := uc.travelMinutes(utils.HaversineKm(last.lat, last.lon, d.Lat, d.Lon))
		if travel+d.AvgVisitMinutes > activeBudget {
			continue
		}
		return &cand
	}
	return nil
}

// activeMinutes recomputes the consumed time budget of a selection in
// its current order.
func (uc *GenerateUseCase) activeMinutes(selected []ScoredDestination, p packParams) int {
	total := 0
	cur := p.start
	for _, s := range selected {
		d := s.Destination
		total += uc.travelMinutes(utils.HaversineKm(cur.lat, cur.lon, d.Lat, d.Lon))
		total += d.AvgVisitMinutes
		cur = geoPoint{d.Lat, d.Lon}
	}
	return total
}

// sequenceAndCost orders the selection nearest-neighbor from the start
// point, then walks the sequence computing timing, legs and tickets.
func (uc *GenerateUseCase) sequenceAndCost(
	selected []ScoredDestination,
	p packParams,
	includeOptional bool,
) packedDay {
	ordered := nearestNeighborOrder(p.start, selected)

	day := packedDay{stops: make([]packedStop, 0, len(ordered))}
	cur := p.start
	clock := uc.dayStartMin

	for _, s := range ordered {
		d := s.Destination
		dist := utils.HaversineKm(cur.lat, cur.lon, d.Lat, d.Lon)
		leg := p.fareTable.PriceLeg(p.vehicle, dist)

		arrive := clock + uc.travelMinutes(dist)
		open, _ := d.VisitWindow()
		if arrive < open {
			arrive = open
		}
		end := arrive + d.AvgVisitMinutes

		stop := packedStop{
			dest:     d,
			score:    s.Score,
			startMin: arrive,
			endMin:   end,
			leg:      leg,
			tickets:  mandatoryTickets(d, p.pax),
		}
		day.stops = append(day.stops, stop)
		day.cost += leg.Cost + ticketsTotal(stop.tickets)

		cur = geoPoint{d.Lat, d.Lon}
		clock = end
	}

	if includeOptional && p.budgetPerDay > 0 {
		for i := range day.stops {
			for _, t := range day.stops[i].dest.Tickets {
				if t.Mandatory {
					continue
				}
				subTotal := t.UnitPrice * float64(p.pax)
				if day.cost+subTotal > p.budgetPerDay {
					continue
				}
				day.stops[i].tickets = append(day.stops[i].tickets, dto.TicketLine{
					TicketVariantID: t.ID,
					Name:            t.Name,
					UnitPrice:       t.UnitPrice,
					Quantity:        p.pax,
					SubTotal:        subTotal,
				})
				day.cost += subTotal
			}
		}
	}

	return day
}

func (uc *GenerateUseCase) travelMinutes(distKm float64) int {
	return int(math.Round(distKm / uc.avgSpeedKmh * 60))
}

// resolveStart anchors the day at the supplied start location, falling
// back to the centroid of the candidate pool as the city-center default.
func (uc *GenerateUseCase) resolveStart(loc *dto.Point, pool []*domain.Destination) geoPoint {
	if loc != nil {
		return geoPoint{loc.Lat, loc.Lng}
	}
	var lat, lon float64
	for _, d := range pool {
		lat += d.Lat
		lon += d.Lon
	}
	n := float64(len(pool))
	return geoPoint{lat / n, lon / n}
}

// resolveDayStart prefers the explicit location, then the itinerary's
// lodging, then the pool centroid.
func (uc *GenerateUseCase) resolveDayStart(
	loc *dto.Point,
	lodgings []*domain.ItineraryLodging,
	pool []*domain.Destination,
) geoPoint {
	if loc != nil {
		return geoPoint{loc.Lat, loc.Lng}
	}
	for _, l := range lodgings {
		if utils.ValidateCoordinates(l.Lat, l.Lon) && (l.Lat != 0 || l.Lon != 0) {
			return geoPoint{l.Lat, l.Lon}
		}
	}
	return uc.resolveStart(nil, pool)
}

func (uc *GenerateUseCase) toItems(itineraryID uuid.UUID, dayNumber int, day packedDay) []*domain.ItineraryItem {
	items := make([]*domain.ItineraryItem, 0, len(day.stops))
	for i, stop := range day.stops {
		item := &domain.ItineraryItem{
			ID:                 uuid.New(),
			ItineraryID:        itineraryID,
			DestinationID:      stop.dest.ID,
			DayNumber:          dayNumber,
			SequenceOrder:      i + 1,
			StartTime:          utils.FormatClock(stop.startMin),
			EndTime:            utils.FormatClock(stop.endMin),
			DistanceFromPrevKm: stop.leg.DistanceKm,
			TransportMode:      stop.leg.VehicleType,
			EstTransportCost:   stop.leg.Cost,
		}
		for _, t := range stop.tickets {
			item.Details = append(item.Details, domain.ItineraryItemDetail{
				ID:              uuid.New(),
				ItineraryItemID: item.ID,
				TicketVariantID: t.TicketVariantID,
				TicketName:      t.Name,
				UnitPrice:       t.UnitPrice,
				Quantity:        t.Quantity,
				SubTotal:        t.SubTotal,
			})
		}
		items = append(items, item)
	}
	return items
}

func (uc *GenerateUseCase) toDayPlan(dayNumber int, day packedDay, items []*domain.ItineraryItem) dto.DayPlan {
	plan := dto.DayPlan{
		DayNumber:  dayNumber,
		Items:      make([]dto.PlanItem, 0, len(day.stops)),
		DayCost:    day.cost,
		OverBudget: day.overBudget,
	}
	for i, stop := range day.stops {
		item := dto.PlanItem{
			DestinationID:      stop.dest.ID,
			Name:               stop.dest.Name,
			Lat:                stop.dest.Lat,
			Lon:                stop.dest.Lon,
			SequenceOrder:      i + 1,
			StartTime:          utils.FormatClock(stop.startMin),
			EndTime:            utils.FormatClock(stop.endMin),
			DistanceFromPrevKm: stop.leg.DistanceKm,
			TransportMode:      string(stop.leg.VehicleType),
			EstTransportCost:   stop.leg.Cost,
			Tickets:            stop.tickets,
			Score:              stop.score,
		}
		if i < len(items) {
			item.ItemID = items[i].ID.String()
		}
		if stop.dest.SoloTip != nil {
			item.SoloTip = stop.dest.SoloTip
		}
		plan.Items = append(plan.Items, item)
	}
	return plan
}

// nearestNeighborOrder sequences the selection by repeatedly appending
// the closest unsequenced stop to the current position. A heuristic, not
// an optimal solve; ties keep selection order.
func nearestNeighborOrder(start geoPoint, selected []ScoredDestination) []ScoredDestination {
	remaining := make([]ScoredDestination, len(selected))
	copy(remaining, selected)

	ordered := make([]ScoredDestination, 0, len(remaining))
	cur := start

	for len(remaining) > 0 {
		best := 0
		bestDist := utils.HaversineKm(cur.lat, cur.lon, remaining[0].Destination.Lat, remaining[0].Destination.Lon)
		for i := 1; i < len(remaining); i++ {
			d := utils.HaversineKm(cur.lat, cur.lon, remaining[i].Destination.Lat, remaining[i].Destination.Lon)
			if d < bestDist {
				best = i
				bestDist = d
			}
		}
		pick := remaining[best]
		ordered = append(ordered, pick)
		cur = geoPoint{pick.Destination.Lat, pick.Destination.Lon}
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

func mandatoryTickets(d *domain.Destination, pax int) []dto.TicketLine {
	var lines []dto.TicketLine
	for _, t := range d.Tickets {
		if !t.Mandatory {
			continue
		}
		lines = append(lines, dto.TicketLine{
			TicketVariantID: t.ID,
			Name:            t.Name,
			UnitPrice:       t.UnitPrice,
			Quantity:        pax,
			SubTotal:        t.UnitPrice * float64(pax),
			Mandatory:       true,
		})
	}
	return lines
}

func ticketsTotal(lines []dto.TicketLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.SubTotal
	}
	return total
}

// lowestValuePerCost picks the eviction candidate: the stop whose score
// buys the least per currency unit of mandatory tickets.
func lowestValuePerCost(stops []packedStop) int {
	worst := 0
	worstRatio := math.Inf(1)
	for i, s := range stops {
		cost := ticketsTotal(s.tickets) + s.leg.Cost
		ratio := s.score / math.Max(cost, 1)
		if ratio < worstRatio {
			worst = i
			worstRatio = ratio
		}
	}
	return worst
}

func removeByID(selected []ScoredDestination, id int64) []ScoredDestination {
	out := selected[:0]
	for _, s := range selected {
		if s.Destination.ID != id {
			out = append(out, s)
		}
	}
	return out
}
