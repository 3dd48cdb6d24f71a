package usecase

import (
	"context"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"go.uber.org/zap"
)

// TransportPricer resolves the fare table for a request. Rates come from
// the rate store; a missing row or a store failure falls back to the
// configured default table and is logged, never surfaced.
type TransportPricer struct {
	rateRepo repository.TransportRateRepository
	fallback domain.FareTable
	logger   *zap.Logger
}

func NewTransportPricer(
	rateRepo repository.TransportRateRepository,
	fallback domain.FareTable,
	logger *zap.Logger,
) *TransportPricer {
	if fallback == nil {
		fallback = domain.DefaultFareTable()
	}
	return &TransportPricer{
		rateRepo: rateRepo,
		fallback: fallback,
		logger:   logger,
	}
}

// FareTable loads the rates for both vehicle classes once per request.
func (p *TransportPricer) FareTable(ctx context.Context) domain.FareTable {
	table := make(domain.FareTable, 2)
	for _, t := range []domain.TransportType{domain.TransportMotor, domain.TransportCar} {
		rate, err := p.rateRepo.GetByType(ctx, t)
		if err != nil {
			p.logger.Warn("Rate store unavailable, using fallback rate",
				zap.String("type", string(t)),
				zap.Error(err))
			table[t] = p.fallback[t]
			continue
		}
		if rate == nil {
			table[t] = p.fallback[t]
			continue
		}
		table[t] = *rate
	}
	return table
}
