package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	"github.com/itinerary-engine/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type itineraryRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewItineraryRepository(db *DB) repository.ItineraryRepository {
	return &itineraryRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const insertItemQuery = `
	INSERT INTO itinerary_items (
		id, itinerary_id, destination_id, day_number, sequence_order,
		start_time, end_time, distance_from_prev_km, transport_mode, est_transport_cost
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

const insertDetailQuery = `
	INSERT INTO itinerary_item_details (
		id, itinerary_item_id, ticket_variant_id, ticket_name,
		unit_price, quantity, sub_total
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *itineraryRepository) Create(
	ctx context.Context,
	itinerary *domain.Itinerary,
	items []*domain.ItineraryItem,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO itineraries (
			id, user_id, city_id, title, start_date, end_date,
			party_count, transport_preference, total_days, estimated_budget
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		itinerary.ID, itinerary.UserID, itinerary.CityID, itinerary.Title,
		itinerary.StartDate, itinerary.EndDate, itinerary.PartyCount,
		string(itinerary.TransportPreference), itinerary.TotalDays, itinerary.EstimatedBudget,
	)
	if err != nil {
		r.logger.Error("Failed to insert itinerary", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := insertItems(ctx, tx, items); err != nil {
		r.logger.Error("Failed to insert itinerary items", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit itinerary", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, items []*domain.ItineraryItem) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx, insertItemQuery,
			item.ID, item.ItineraryID, item.DestinationID, item.DayNumber,
			item.SequenceOrder, item.StartTime, item.EndTime,
			item.DistanceFromPrevKm, string(item.TransportMode), item.EstTransportCost,
		)
		if err != nil {
			return err
		}
		for _, d := range item.Details {
			_, err := tx.ExecContext(ctx, insertDetailQuery,
				d.ID, d.ItineraryItemID, d.TicketVariantID, d.TicketName,
				d.UnitPrice, d.Quantity, d.SubTotal,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *itineraryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Itinerary, error) {
	query := `
		SELECT id, user_id, city_id, title, start_date, end_date,
		       party_count, transport_preference, total_days, estimated_budget,
		       created_at, updated_at
		FROM itineraries
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get itinerary", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var it domain.Itinerary
	var pref string
	err = rows.Scan(
		&it.ID, &it.UserID, &it.CityID, &it.Title, &it.StartDate, &it.EndDate,
		&it.PartyCount, &pref, &it.TotalDays, &it.EstimatedBudget,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to scan itinerary", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	it.TransportPreference = domain.TransportType(pref)
	return &it, nil
}

func (r *itineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM itinerary_item_details WHERE itinerary_item_id IN
			(SELECT id FROM itinerary_items WHERE itinerary_id = $1)`,
		`DELETE FROM itinerary_items WHERE itinerary_id = $1`,
		`DELETE FROM itinerary_lodgings WHERE itinerary_id = $1`,
		`DELETE FROM itineraries WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			r.logger.Error("Failed to delete itinerary", zap.String("id", id.String()), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit delete", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *itineraryRepository) ListItems(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryItem, error) {
	query := `
		SELECT id, itinerary_id, destination_id, day_number, sequence_order,
		       start_time, end_time, distance_from_prev_km, transport_mode, est_transport_cost
		FROM itinerary_items
		WHERE itinerary_id = $1
		ORDER BY day_number, sequence_order
	`

	rows, err := r.db.QueryContext(ctx, query, itineraryID)
	if err != nil {
		r.logger.Error("Failed to list items", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var items []*domain.ItineraryItem
	byID := make(map[uuid.UUID]*domain.ItineraryItem)
	for rows.Next() {
		var item domain.ItineraryItem
		var mode string
		err := rows.Scan(
			&item.ID, &item.ItineraryID, &item.DestinationID, &item.DayNumber,
			&item.SequenceOrder, &item.StartTime, &item.EndTime,
			&item.DistanceFromPrevKm, &mode, &item.EstTransportCost,
		)
		if err != nil {
			r.logger.Error("Failed to scan item", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		item.TransportMode = domain.TransportType(mode)
		items = append(items, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	if err := r.attachDetails(ctx, byID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itineraryRepository) attachDetails(ctx context.Context, byID map[uuid.UUID]*domain.ItineraryItem) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id.String())
	}

	query := `
		SELECT id, itinerary_item_id, ticket_variant_id, ticket_name,
		       unit_price, quantity, sub_total
		FROM itinerary_item_details
		WHERE itinerary_item_id = ANY($1::uuid[])
		ORDER BY itinerary_item_id, id
	`

	var details []domain.ItineraryItemDetail
	if err := r.db.SelectContext(ctx, &details, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to load item details", zap.Error(err))
		return errors.ErrDatabaseError
	}

	for _, d := range details {
		if item, ok := byID[d.ItineraryItemID]; ok {
			item.Details = append(item.Details, d)
		}
	}
	return nil
}

func (r *itineraryRepository) ListLodgings(ctx context.Context, itineraryID uuid.UUID) ([]*domain.ItineraryLodging, error) {
	query := `
		SELECT id, itinerary_id, name, lat, lon, check_in, check_out,
		       nightly_cost, total_cost
		FROM itinerary_lodgings
		WHERE itinerary_id = $1
		ORDER BY check_in
	`

	var lodgings []*domain.ItineraryLodging
	if err := r.db.SelectContext(ctx, &lodgings, query, itineraryID); err != nil {
		r.logger.Error("Failed to list lodgings", zap.String("itinerary_id", itineraryID.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return lodgings, nil
}

func (r *itineraryRepository) ReplaceDayItems(
	ctx context.Context,
	itineraryID uuid.UUID,
	dayNumber int,
	items []*domain.ItineraryItem,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM itinerary_item_details WHERE itinerary_item_id IN
			(SELECT id FROM itinerary_items WHERE itinerary_id = $1 AND day_number = $2)
	`, itineraryID, dayNumber)
	if err != nil {
		r.logger.Error("Failed to clear day details", zap.Error(err))
		return errors.ErrDatabaseError
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM itinerary_items WHERE itinerary_id = $1 AND day_number = $2`,
		itineraryID, dayNumber)
	if err != nil {
		r.logger.Error("Failed to clear day items", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := insertItems(ctx, tx, items); err != nil {
		r.logger.Error("Failed to insert replacement items", zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit day replacement", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *itineraryRepository) UpdateEstimatedBudget(ctx context.Context, id uuid.UUID, budget float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE itineraries SET estimated_budget = $2, updated_at = NOW() WHERE id = $1`,
		id, budget)
	if err != nil {
		r.logger.Error("Failed to update estimated budget", zap.String("id", id.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

// WithinTx runs fn inside one transaction; every placement update is
// committed together or rolled back together.
func (r *itineraryRepository) WithinTx(ctx context.Context, fn func(tx repository.ItineraryTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin reorder transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	if err := fn(&itineraryTx{tx: tx, logger: r.logger}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit reorder transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

type itineraryTx struct {
	tx     *sqlx.Tx
	logger *zap.Logger
}

func (t *itineraryTx) UpdateItemPlacement(ctx context.Context, p domain.ItemPlacement) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE itinerary_items
		SET day_number = $2,
		    sequence_order = $3,
		    distance_from_prev_km = $4,
		    transport_mode = $5,
		    est_transport_cost = $6
		WHERE id = $1
	`,
		p.ItemID, p.DayNumber, p.SequenceOrder,
		p.DistanceFromPrevKm, string(p.TransportMode), p.EstTransportCost,
	)
	if err != nil {
		t.logger.Error("Failed to update item placement",
			zap.String("item_id", p.ItemID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"item_id": p.ItemID.String(),
			"reason":  "item not found",
		})
	}
	return nil
}
