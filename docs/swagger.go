// Package docs Itinerary Engine API.
//
// Trip planning service that generates multi-day tourist itineraries.
// Scores candidate destinations, packs them into days around opening
// hours and pace limits, sequences each day with a nearest-neighbour
// walk, prices transport legs and aggregates the trip budget.
//
// Main capabilities:
// - Full multi-day plan generation from trip preferences
// - Single-day regeneration with exclusions
// - Replacement suggestions for individual stops
// - Manual reorder with atomic leg and budget recalculation
// - Per-trip cost breakdown
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
