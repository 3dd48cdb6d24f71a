package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is a multi-day trip plan owned by one user.
type Itinerary struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	UserID              uuid.UUID     `json:"user_id" db:"user_id"`
	CityID              int64         `json:"city_id" db:"city_id"`
	Title               string        `json:"title" db:"title"`
	StartDate           time.Time     `json:"start_date" db:"start_date"`
	EndDate             time.Time     `json:"end_date" db:"end_date"`
	PartyCount          int           `json:"party_count" db:"party_count"`
	TransportPreference TransportType `json:"transport_preference" db:"transport_preference"`
	TotalDays           int           `json:"total_days" db:"total_days"`
	EstimatedBudget     float64       `json:"estimated_budget" db:"estimated_budget"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at" db:"updated_at"`
}

// ItineraryItem is one stop on one day. SequenceOrder is 1-based and
// gapless within a day.
type ItineraryItem struct {
	ID                 uuid.UUID             `json:"id" db:"id"`
	ItineraryID        uuid.UUID             `json:"itinerary_id" db:"itinerary_id"`
	DestinationID      int64                 `json:"destination_id" db:"destination_id"`
	DayNumber          int                   `json:"day_number" db:"day_number"`
	SequenceOrder      int                   `json:"sequence_order" db:"sequence_order"`
	StartTime          string                `json:"start_time" db:"start_time"`
	EndTime            string                `json:"end_time" db:"end_time"`
	DistanceFromPrevKm float64               `json:"distance_from_prev_km" db:"distance_from_prev_km"`
	TransportMode      TransportType         `json:"transport_mode" db:"transport_mode"`
	EstTransportCost   float64               `json:"est_transport_cost" db:"est_transport_cost"`
	Details            []ItineraryItemDetail `json:"details,omitempty"`
}

// ItineraryItemDetail is one ticket line on an item. Mandatory variants
// always ship with quantity >= party size.
type ItineraryItemDetail struct {
	ID              uuid.UUID `json:"id" db:"id"`
	ItineraryItemID uuid.UUID `json:"itinerary_item_id" db:"itinerary_item_id"`
	TicketVariantID int64     `json:"ticket_variant_id" db:"ticket_variant_id"`
	TicketName      string    `json:"ticket_name" db:"ticket_name"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	Quantity        int       `json:"quantity" db:"quantity"`
	SubTotal        float64   `json:"sub_total" db:"sub_total"`
}

// ItineraryLodging is a stay attached to an itinerary. Not produced by
// the engine; supplied externally as a start anchor and cost input.
type ItineraryLodging struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ItineraryID uuid.UUID `json:"itinerary_id" db:"itinerary_id"`
	Name        string    `json:"name" db:"name"`
	Lat         float64   `json:"lat" db:"lat"`
	Lon         float64   `json:"lon" db:"lon"`
	CheckIn     time.Time `json:"check_in" db:"check_in"`
	CheckOut    time.Time `json:"check_out" db:"check_out"`
	NightlyCost float64   `json:"nightly_cost" db:"nightly_cost"`
	TotalCost   float64   `json:"total_cost" db:"total_cost"`
}

// ItemPlacement is the mutable slice of an item rewritten by a reorder:
// day, position and the recomputed leg into the stop.
type ItemPlacement struct {
	ItemID             uuid.UUID
	DayNumber          int
	SequenceOrder      int
	DistanceFromPrevKm float64
	TransportMode      TransportType
	EstTransportCost   float64
}

// BudgetBreakdown is the aggregated cost view of an itinerary.
type BudgetBreakdown struct {
	TicketsTotal   float64         `json:"tickets_total"`
	TransportTotal float64         `json:"transport_total"`
	LodgingTotal   float64         `json:"lodging_total"`
	PerDayTotals   map[int]float64 `json:"per_day_totals"`
	GrandTotal     float64         `json:"grand_total"`
}

// ComputeBreakdown aggregates item details, leg costs and lodging totals.
// Idempotent over the same inputs.
func ComputeBreakdown(items []*ItineraryItem, lodgings []*ItineraryLodging) *BudgetBreakdown {
	b := &BudgetBreakdown{PerDayTotals: make(map[int]float64)}

	for _, item := range items {
		dayTotal := item.EstTransportCost
		b.TransportTotal += item.EstTransportCost
		for _, d := range item.Details {
			b.TicketsTotal += d.SubTotal
			dayTotal += d.SubTotal
		}
		b.PerDayTotals[item.DayNumber] += dayTotal
	}

	for _, l := range lodgings {
		b.LodgingTotal += l.TotalCost
	}

	b.GrandTotal = b.TicketsTotal + b.TransportTotal + b.LodgingTotal
	return b
}

// EstimatedBudget is the derived itinerary figure: ticket subtotals plus
// lodging totals.
func (b *BudgetBreakdown) EstimatedBudget() float64 {
	return b.TicketsTotal + b.LodgingTotal
}

// TotalDays counts calendar days in an inclusive date range.
func TotalDays(start, end time.Time) int {
	startDay := start.Truncate(24 * time.Hour)
	endDay := end.Truncate(24 * time.Hour)
	return int(endDay.Sub(startDay).Hours()/24) + 1
}
