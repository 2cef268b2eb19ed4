package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingDetailColumns = []string{"id", "farmer_id", "asset_id", "booking_date", "booking_time", "status", "created_at",
	"farmer_name", "asset_name", "asset_type", "operator_id", "operator_name"}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success marks the asset unavailable in the same transaction", func(t *testing.T) {
		b := &domain.Booking{FarmerID: "f1", AssetID: "a1", BookingDate: day, BookingTime: "09:00", Status: domain.BookingStatusBooked}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(sqlmock.AnyArg(), "f1", "a1", "2026-06-01", "09:00", "BOOKED").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE assets SET availability = FALSE").
			WithArgs("a1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(ctx, b))
		assert.NotEmpty(t, b.ID)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("Unique violation maps to conflict", func(t *testing.T) {
		b := &domain.Booking{FarmerID: "f2", AssetID: "a1", BookingDate: day, BookingTime: "09:00", Status: domain.BookingStatusBooked}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_bookings_active_slot"})
		mock.ExpectRollback()

		err := repo.Create(ctx, b)
		assert.True(t, errors.Is(err, repository.ErrConflict))
	})

	t.Run("Other errors pass through", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Create(ctx, &domain.Booking{AssetID: "a1", BookingDate: day, BookingTime: "10:00"})
		assert.Error(t, err)
		assert.False(t, errors.Is(err, repository.ErrConflict))
	})

	t.Run("Failed availability write rolls back the booking", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectExec("UPDATE assets SET availability = FALSE").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Create(ctx, &domain.Booking{FarmerID: "f1", AssetID: "a1", BookingDate: day, BookingTime: "11:00"})
		assert.EqualError(t, err, "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "farmer_id", "asset_id", "booking_date", "booking_time", "status", "created_at"}).
			AddRow("b1", "f1", "a1", day, "09:00", "BOOKED", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE asset_id = \\$1 AND booking_date = \\$2 AND booking_time = \\$3").
			WithArgs("a1", "2026-06-01", "09:00").
			WillReturnRows(rows)

		b, err := repo.FindActive(ctx, "a1", day, "09:00")
		require.NoError(t, err)
		assert.Equal(t, "b1", b.ID)
		assert.Equal(t, domain.BookingStatusBooked, b.Status)
	})

	t.Run("Free slot", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings").
			WithArgs("a1", "2026-06-01", "10:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindActive(ctx, "a1", day, "10:00")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CompleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	ctx := context.Background()
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Completes and frees assets in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE bookings SET status = 'COMPLETED'").
			WithArgs("2026-06-01").
			WillReturnRows(sqlmock.NewRows([]string{"asset_id"}).AddRow("a1").AddRow("a1").AddRow("a2"))
		mock.ExpectExec("UPDATE assets SET availability = TRUE, updated_at = NOW\\(\\) WHERE id = ANY").
			WithArgs(pq.Array([]string{"a1", "a2"})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		ids, err := repo.CompleteExpired(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a1", "a2"}, ids)
	})

	t.Run("Nothing expired writes no assets", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE bookings SET status = 'COMPLETED'").
			WithArgs("2026-06-01").
			WillReturnRows(sqlmock.NewRows([]string{"asset_id"}))
		mock.ExpectCommit()

		ids, err := repo.CompleteExpired(ctx, today)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Failed availability write rolls back the completions", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE bookings SET status = 'COMPLETED'").
			WillReturnRows(sqlmock.NewRows([]string{"asset_id"}).AddRow("a1"))
		mock.ExpectExec("UPDATE assets SET availability = TRUE").
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		ids, err := repo.CompleteExpired(ctx, today)
		assert.EqualError(t, err, "deadlock detected")
		assert.Nil(t, ids)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByFarmer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(bookingDetailColumns).
		AddRow("b1", "f1", "a1", day, "09:00", "BOOKED", time.Now(), "Ravi", "Tractor", "Tractor", "o1", "Suresh")
	mock.ExpectQuery("SELECT (.+) FROM bookings b (.+) WHERE b.farmer_id = \\$1").
		WithArgs("f1").
		WillReturnRows(rows)

	list, err := repo.ListByFarmer(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ravi", list[0].FarmerName)
	assert.Equal(t, "Suresh", list[0].OperatorName)
	assert.Equal(t, "o1", list[0].OperatorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) WHERE b.id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(bookingDetailColumns))

	_, err = NewBookingRepository(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
