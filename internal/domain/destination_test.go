package domain_test

import (
	"testing"

	"github.com/itinerary-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDestination_MandatoryTicketCost(t *testing.T) {
	d := &domain.Destination{
		Tickets: []domain.TicketVariant{
			{Name: "Entrance", UnitPrice: 30000, Mandatory: true},
			{Name: "Cable Car", UnitPrice: 50000, Mandatory: false},
			{Name: "Conservation Fee", UnitPrice: 5000, Mandatory: true},
		},
	}
	assert.Equal(t, 35000.0, d.MandatoryTicketCost())
}

func TestDestination_EstimatedVisitorCost(t *testing.T) {
	d := &domain.Destination{
		ParkingFee:   10000,
		FoodPriceMin: 20000,
		FoodPriceMax: 60000,
		Tickets: []domain.TicketVariant{
			{UnitPrice: 30000, Mandatory: true},
		},
	}
	// tickets + parking + mean food price
	assert.Equal(t, 80000.0, d.EstimatedVisitorCost())
}

func TestDestination_PeakCrowdLevel(t *testing.T) {
	d := &domain.Destination{
		CrowdLevels: map[string]int{"09": 30, "12": 85, "16": 60},
	}
	assert.Equal(t, 85, d.PeakCrowdLevel())

	empty := &domain.Destination{}
	assert.Equal(t, 0, empty.PeakCrowdLevel())
}

func TestDestination_VisitWindow(t *testing.T) {
	t.Run("parses opening hours", func(t *testing.T) {
		d := &domain.Destination{OpenTime: "09:00", CloseTime: "17:30"}
		open, close := d.VisitWindow()
		assert.Equal(t, 540, open)
		assert.Equal(t, 1050, close)
	})

	t.Run("unparseable values fall back to always open", func(t *testing.T) {
		d := &domain.Destination{OpenTime: "whenever", CloseTime: ""}
		open, close := d.VisitWindow()
		assert.Equal(t, 0, open)
		assert.Equal(t, 1439, close)
	})
}
