package dto

import (
	"github.com/itinerary-engine/internal/domain"
)

// TicketLine is one priced ticket variant on a plan item.
type TicketLine struct {
	TicketVariantID int64   `json:"ticket_variant_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	SubTotal        float64 `json:"sub_total"`
	Mandatory       bool    `json:"mandatory"`
}

// PlanItem is one sequenced stop in a generated or recalculated day.
type PlanItem struct {
	ItemID             string       `json:"item_id,omitempty"`
	DestinationID      int64        `json:"destination_id"`
	Name               string       `json:"name"`
	Lat                float64      `json:"lat"`
	Lon                float64      `json:"lon"`
	SequenceOrder      int          `json:"sequence_order"`
	StartTime          string       `json:"start_time"`
	EndTime            string       `json:"end_time"`
	DistanceFromPrevKm float64      `json:"distance_from_prev_km"`
	TransportMode      string       `json:"transport_mode"`
	EstTransportCost   float64      `json:"est_transport_cost"`
	Tickets            []TicketLine `json:"tickets"`
	Score              float64      `json:"score"`
	SoloTip            *string      `json:"solo_tip,omitempty"`
}

// DayPlan is one day of the itinerary. OverBudget marks a day that could
// not be brought under budget_per_day by substitution.
type DayPlan struct {
	DayNumber  int        `json:"day_number"`
	Items      []PlanItem `json:"items"`
	DayCost    float64    `json:"day_cost"`
	OverBudget bool       `json:"over_budget"`
}

// GeneratePlanResponse is the full generation result.
type GeneratePlanResponse struct {
	ItineraryID string                  `json:"itinerary_id"`
	Title       string                  `json:"title"`
	TotalDays   int                     `json:"total_days"`
	Days        []DayPlan               `json:"days"`
	Budget      *domain.BudgetBreakdown `json:"budget"`
}

// RegenerateDayResponse replaces a single day.
type RegenerateDayResponse struct {
	ItineraryID string                  `json:"itinerary_id"`
	Day         DayPlan                 `json:"day"`
	Budget      *domain.BudgetBreakdown `json:"budget"`
}

// SuggestedDestination is one ranked replacement candidate.
type SuggestedDestination struct {
	DestinationID int64    `json:"destination_id"`
	Name          string   `json:"name"`
	CategoryID    int64    `json:"category_id"`
	Rating        float64  `json:"rating"`
	EstimatedCost float64  `json:"estimated_cost"`
	Score         float64  `json:"score"`
	Activities    []string `json:"activities,omitempty"`
	SoloTip       *string  `json:"solo_tip,omitempty"`
}

// SuggestReplacementResponse is the ranked candidate list.
type SuggestReplacementResponse struct {
	Suggestions []SuggestedDestination `json:"suggestions"`
}

// ReorderedItem mirrors the persisted state of one item after reorder
// recalculation.
type ReorderedItem struct {
	ItemID             string  `json:"item_id"`
	DestinationID      int64   `json:"destination_id"`
	DayNumber          int     `json:"day_number"`
	SequenceOrder      int     `json:"sequence_order"`
	DistanceFromPrevKm float64 `json:"distance_from_prev_km"`
	TransportMode      string  `json:"transport_mode"`
	EstTransportCost   float64 `json:"est_transport_cost"`
}

// ReorderResponse returns the rewritten items plus the recomputed budget.
type ReorderResponse struct {
	ItineraryID string                  `json:"itinerary_id"`
	Items       []ReorderedItem         `json:"items"`
	Budget      *domain.BudgetBreakdown `json:"budget"`
}

// ItineraryResponse is the owner-scoped read view of an itinerary.
type ItineraryResponse struct {
	Itinerary *domain.Itinerary       `json:"itinerary"`
	Items     []*domain.ItineraryItem `json:"items"`
}
