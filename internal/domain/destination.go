package domain

import (
	"time"

	"github.com/itinerary-engine/internal/pkg/utils"
)

// Destination is a visitable point of interest from the catalog store.
// Immutable during a single generation run.
type Destination struct {
	ID              int64          `json:"id" db:"id"`
	ZoneID          int64          `json:"zone_id" db:"zone_id"`
	CategoryID      int64          `json:"category_id" db:"category_id"`
	CityID          int64          `json:"city_id" db:"city_id"`
	Name            string         `json:"name" db:"name"`
	Lat             float64        `json:"lat" db:"lat"`
	Lon             float64        `json:"lon" db:"lon"`
	Rating          float64        `json:"rating" db:"rating"`
	OpenTime        string         `json:"open_time" db:"open_time"`
	CloseTime       string         `json:"close_time" db:"close_time"`
	AvgVisitMinutes int            `json:"avg_visit_minutes" db:"avg_visit_minutes"`
	SoloScore       int            `json:"solo_score" db:"solo_score"`
	SoloTip         *string        `json:"solo_tip,omitempty" db:"solo_tip"`
	Activities      []string       `json:"activities,omitempty" db:"activities"`
	CrowdLevels     map[string]int `json:"crowd_levels,omitempty" db:"crowd_levels"`
	ParkingFee      float64        `json:"parking_fee" db:"parking_fee"`
	FoodPriceMin    float64        `json:"food_price_min" db:"food_price_min"`
	FoodPriceMax    float64        `json:"food_price_max" db:"food_price_max"`
	Tickets         []TicketVariant `json:"tickets,omitempty"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// TicketVariant is a purchasable ticket option for a destination.
type TicketVariant struct {
	ID            int64   `json:"id" db:"id"`
	DestinationID int64   `json:"destination_id" db:"destination_id"`
	Name          string  `json:"name" db:"name"`
	UnitPrice     float64 `json:"unit_price" db:"unit_price"`
	Mandatory     bool    `json:"mandatory" db:"mandatory"`
}

// MandatoryTicketCost sums the unit prices of all mandatory variants.
func (d *Destination) MandatoryTicketCost() float64 {
	var total float64
	for _, t := range d.Tickets {
		if t.Mandatory {
			total += t.UnitPrice
		}
	}
	return total
}

// EstimatedVisitorCost is the per-person cost basis used by the budget
// priority: mandatory tickets + parking + the middle of the food range.
func (d *Destination) EstimatedVisitorCost() float64 {
	return d.MandatoryTicketCost() + d.ParkingFee + (d.FoodPriceMin+d.FoodPriceMax)/2
}

// PeakCrowdLevel is the highest hourly crowd value, the popularity signal.
func (d *Destination) PeakCrowdLevel() int {
	peak := 0
	for _, level := range d.CrowdLevels {
		if level > peak {
			peak = level
		}
	}
	return peak
}

// VisitWindow returns the opening window in minutes since midnight.
// Unparseable values fall back to an always-open window.
func (d *Destination) VisitWindow() (open, close int) {
	open = 0
	close = 24*60 - 1

	if m, err := utils.ParseClock(d.OpenTime); err == nil {
		open = m
	}
	if m, err := utils.ParseClock(d.CloseTime); err == nil && m > open {
		close = m
	}
	return open, close
}
