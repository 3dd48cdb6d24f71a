package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type transportRateRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTransportRateRepository(db *DB) repository.TransportRateRepository {
	return &transportRateRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *transportRateRepository) GetByType(
	ctx context.Context,
	transportType domain.TransportType,
) (*domain.TransportRate, error) {
	query := `
		SELECT type, base_fare, rate_per_km
		FROM transport_rates
		WHERE type = $1
	`

	var rate domain.TransportRate
	err := r.db.GetContext(ctx, &rate, query, string(transportType))
	if stderrors.Is(err, sql.ErrNoRows) {
		// No row is not an error here; the pricer falls back to defaults.
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get transport rate",
			zap.String("type", string(transportType)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &rate, nil
}
