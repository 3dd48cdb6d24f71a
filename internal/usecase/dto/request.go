package dto

// Point is a bare coordinate pair supplied by clients.
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// GeneratePlanRequest is the input contract of the generation pipeline.
type GeneratePlanRequest struct {
	CityID                   int64   `json:"city_id" validate:"required"`
	Title                    string  `json:"title"`
	StartDate                string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate                  string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	TotalPaxCount            int     `json:"total_pax_count" validate:"required,min=1"`
	TransportationPreference string  `json:"transportation_preference" validate:"required,oneof=MOTOR CAR"`
	Categories               []int64 `json:"categories" validate:"required,min=1"`
	Priority                 string  `json:"priority" validate:"required,oneof=balanced budget popular rating"`
	Pace                     string  `json:"pace" validate:"required,oneof=relaxed normal packed"`
	BudgetPerDay             float64 `json:"budget_per_day" validate:"omitempty,gt=0"`
	SoloMode                 bool    `json:"solo_mode"`
	StartLocation            *Point  `json:"start_location"`
}

// RegenerateDayRequest re-runs the pipeline for a single day.
type RegenerateDayRequest struct {
	CityID                   int64   `json:"city_id" validate:"required"`
	DayNumber                int     `json:"day_number" validate:"required,min=1"`
	TotalDays                int     `json:"total_days" validate:"required,min=1"`
	TotalPaxCount            int     `json:"total_pax_count" validate:"required,min=1"`
	TransportationPreference string  `json:"transportation_preference" validate:"required,oneof=MOTOR CAR"`
	Categories               []int64 `json:"categories" validate:"required,min=1"`
	Priority                 string  `json:"priority" validate:"required,oneof=balanced budget popular rating"`
	Pace                     string  `json:"pace" validate:"required,oneof=relaxed normal packed"`
	BudgetPerDay             float64 `json:"budget_per_day" validate:"omitempty,gt=0"`
	SoloMode                 bool    `json:"solo_mode"`
	ExcludeIDs               []int64 `json:"exclude_ids"`
	StartLocation            *Point  `json:"start_location"`
}

// SuggestReplacementRequest asks for ranked alternatives to one stop.
type SuggestReplacementRequest struct {
	CityID     int64  `json:"city_id" validate:"required"`
	ExcludeID  int64  `json:"exclude_id" validate:"required"`
	CategoryID *int64 `json:"category_id"`
	Priority   string `json:"priority" validate:"required,oneof=balanced budget popular rating"`
	SoloMode   bool   `json:"solo_mode"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=10"`
}

// ReorderItem pins one item to a day; position is its index within the
// request's per-day ordering.
type ReorderItem struct {
	ID        string `json:"id" validate:"required,uuid"`
	DayNumber int    `json:"day_number" validate:"required,min=1"`
}

// ReorderRequest is the full new ordering for an itinerary. Every item
// of the itinerary must appear exactly once.
type ReorderRequest struct {
	Items         []ReorderItem `json:"items" validate:"required,min=1,dive"`
	StartLocation *Point        `json:"start_location"`
}
