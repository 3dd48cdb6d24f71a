package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type destinationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewDestinationRepository(db *DB) repository.DestinationRepository {
	return &destinationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const destinationColumns = `
	id, zone_id, category_id, city_id, name, lat, lon, rating,
	open_time, close_time, avg_visit_minutes, solo_score, solo_tip,
	activities, crowd_levels, parking_fee, food_price_min, food_price_max,
	created_at, updated_at
`

func (r *destinationRepository) ListByCity(
	ctx context.Context,
	cityID int64,
	categoryIDs []int64,
) ([]*domain.Destination, error) {
	query := `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE city_id = $1
		  AND (cardinality($2::bigint[]) = 0 OR category_id = ANY($2))
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, cityID, pq.Array(categoryIDs))
	if err != nil {
		r.logger.Error("Failed to list destinations by city",
			zap.Int64("city_id", cityID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	destinations, err := r.scanDestinations(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTickets(ctx, destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) GetByID(ctx context.Context, id int64) (*domain.Destination, error) {
	query := `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get destination", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	destinations, err := r.scanDestinations(rows)
	if err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, errors.ErrDestinationNotFound
	}
	if err := r.attachTickets(ctx, destinations); err != nil {
		return nil, err
	}
	return destinations[0], nil
}

func (r *destinationRepository) ListByIDs(
	ctx context.Context,
	ids []int64,
) (map[int64]*domain.Destination, error) {
	if len(ids) == 0 {
		return map[int64]*domain.Destination{}, nil
	}

	query := `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to list destinations by ids", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	destinations, err := r.scanDestinations(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTickets(ctx, destinations); err != nil {
		return nil, err
	}

	result := make(map[int64]*domain.Destination, len(destinations))
	for _, d := range destinations {
		result[d.ID] = d
	}
	return result, nil
}

func (r *destinationRepository) scanDestinations(rows *sql.Rows) ([]*domain.Destination, error) {
	var destinations []*domain.Destination
	for rows.Next() {
		var d domain.Destination
		var activities, crowdLevels []byte

		err := rows.Scan(
			&d.ID, &d.ZoneID, &d.CategoryID, &d.CityID, &d.Name, &d.Lat, &d.Lon, &d.Rating,
			&d.OpenTime, &d.CloseTime, &d.AvgVisitMinutes, &d.SoloScore, &d.SoloTip,
			&activities, &crowdLevels, &d.ParkingFee, &d.FoodPriceMin, &d.FoodPriceMax,
			&d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan destination", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}

		if len(activities) > 0 {
			if err := json.Unmarshal(activities, &d.Activities); err != nil {
				r.logger.Warn("Failed to decode activities", zap.Int64("id", d.ID), zap.Error(err))
			}
		}
		if len(crowdLevels) > 0 {
			if err := json.Unmarshal(crowdLevels, &d.CrowdLevels); err != nil {
				r.logger.Warn("Failed to decode crowd levels", zap.Int64("id", d.ID), zap.Error(err))
			}
		}

		destinations = append(destinations, &d)
	}
	return destinations, rows.Err()
}

// attachTickets preloads ticket variants for the whole result set with
// one query.
func (r *destinationRepository) attachTickets(ctx context.Context, destinations []*domain.Destination) error {
	if len(destinations) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(destinations))
	byID := make(map[int64]*domain.Destination, len(destinations))
	for _, d := range destinations {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	query := `
		SELECT id, destination_id, name, unit_price, mandatory
		FROM ticket_variants
		WHERE destination_id = ANY($1)
		ORDER BY destination_id, id
	`

	var tickets []domain.TicketVariant
	if err := r.db.SelectContext(ctx, &tickets, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to load ticket variants", zap.Error(err))
		return errors.ErrDatabaseError
	}

	for _, t := range tickets {
		if d, ok := byID[t.DestinationID]; ok {
			d.Tickets = append(d.Tickets, t)
		}
	}
	return nil
}
