package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeBreakdown(t *testing.T) {
	items := []*domain.ItineraryItem{
		{
			ID:               uuid.New(),
			DayNumber:        1,
			EstTransportCost: 30000,
			Details: []domain.ItineraryItemDetail{
				{SubTotal: 100000},
				{SubTotal: 50000},
			},
		},
		{
			ID:               uuid.New(),
			DayNumber:        2,
			EstTransportCost: 50000,
			Details: []domain.ItineraryItemDetail{
				{SubTotal: 200000},
			},
		},
	}
	lodgings := []*domain.ItineraryLodging{
		{TotalCost: 600000},
	}

	b := domain.ComputeBreakdown(items, lodgings)

	assert.Equal(t, 350000.0, b.TicketsTotal)
	assert.Equal(t, 80000.0, b.TransportTotal)
	assert.Equal(t, 600000.0, b.LodgingTotal)
	assert.Equal(t, 180000.0, b.PerDayTotals[1])
	assert.Equal(t, 250000.0, b.PerDayTotals[2])
	assert.Equal(t, 1030000.0, b.GrandTotal)

	// Derived figure excludes transport
	assert.Equal(t, 950000.0, b.EstimatedBudget())
}

func TestComputeBreakdown_Idempotent(t *testing.T) {
	items := []*domain.ItineraryItem{
		{ID: uuid.New(), DayNumber: 1, EstTransportCost: 10000,
			Details: []domain.ItineraryItemDetail{{SubTotal: 40000}}},
	}

	first := domain.ComputeBreakdown(items, nil)
	second := domain.ComputeBreakdown(items, nil)
	assert.Equal(t, first, second)
}

func TestComputeBreakdown_Empty(t *testing.T) {
	b := domain.ComputeBreakdown(nil, nil)
	assert.Equal(t, 0.0, b.GrandTotal)
	assert.Empty(t, b.PerDayTotals)
}

func TestTotalDays(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}

	assert.Equal(t, 1, domain.TotalDays(day("2026-09-01"), day("2026-09-01")))
	assert.Equal(t, 3, domain.TotalDays(day("2026-09-01"), day("2026-09-03")))
	assert.Equal(t, 0, domain.TotalDays(day("2026-09-02"), day("2026-09-01")))
}
