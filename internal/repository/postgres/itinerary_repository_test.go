package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/itinerary-engine/internal/domain"
	"github.com/itinerary-engine/internal/domain/repository"
	apperrors "github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/repository/postgres"
)

var itemColumns = []string{
	"id", "itinerary_id", "destination_id", "day_number", "sequence_order",
	"start_time", "end_time", "distance_from_prev_km", "transport_mode", "est_transport_cost",
}

func newItineraryRepo(t *testing.T) (repository.ItineraryRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := postgres.NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), zap.NewNop())
	return postgres.NewItineraryRepository(db), mock
}

func TestItineraryRepository_ListItems(t *testing.T) {
	repo, mock := newItineraryRepo(t)
	itineraryID := uuid.New()
	itemID := uuid.New()

	rows := sqlmock.NewRows(itemColumns).
		AddRow(itemID.String(), itineraryID.String(), int64(1), 1, 1,
			"08:00", "09:00", 0.0, "MOTOR", 5000.0)
	mock.ExpectQuery("SELECT (.+) FROM itinerary_items").WillReturnRows(rows)

	detailRows := sqlmock.NewRows([]string{
		"id", "itinerary_item_id", "ticket_variant_id", "ticket_name",
		"unit_price", "quantity", "sub_total",
	}).AddRow(uuid.New().String(), itemID.String(), int64(1), "Entrance", 30000.0, 1, 30000.0)
	mock.ExpectQuery("SELECT (.+) FROM itinerary_item_details").WillReturnRows(detailRows)

	items, err := repo.ListItems(context.Background(), itineraryID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, domain.TransportMotor, items[0].TransportMode)
	assert.Len(t, items[0].Details, 1)
	assert.Equal(t, 30000.0, items[0].Details[0].SubTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItineraryRepository_ListItems_ScanFailure(t *testing.T) {
	repo, mock := newItineraryRepo(t)
	itineraryID := uuid.New()

	// A corrupt row fails the whole listing; partial results would make
	// budget totals silently wrong.
	rows := sqlmock.NewRows(itemColumns).
		AddRow(uuid.New().String(), itineraryID.String(), int64(1), 1, 1,
			"08:00", "09:00", "not-a-distance", "MOTOR", 5000.0)
	mock.ExpectQuery("SELECT (.+) FROM itinerary_items").WillReturnRows(rows)

	items, err := repo.ListItems(context.Background(), itineraryID)
	assert.Nil(t, items)
	assert.True(t, apperrors.Is(err, apperrors.ErrDatabaseError))
	assert.NoError(t, mock.ExpectationsWereMet())
}
