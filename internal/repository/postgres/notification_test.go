package postgres

import (
	"context"
	"testing"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		n := &domain.Notification{UserID: "o1", Message: "New booking", Type: domain.NotificationTypeBooking}
		mock.ExpectQuery("INSERT INTO notifications").
			WithArgs(sqlmock.AnyArg(), "o1", "New booking", "BOOKING", false).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		require.NoError(t, repo.Create(ctx, n))
		assert.NotEmpty(t, n.ID)
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "message", "type", "is_read", "created_at"}).
			AddRow("n2", "o1", "second", "INFO", false, time.Now()).
			AddRow("n1", "o1", "first", "BOOKING", true, time.Now().Add(-time.Hour))
		mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = \\$1").
			WithArgs("o1").
			WillReturnRows(rows)

		notes, err := repo.List(ctx, "o1")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "n2", notes[0].ID)
		assert.True(t, notes[1].IsRead)
	})

	t.Run("MarkAsRead of someone else's notification", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs("n1", "intruder").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkAsRead(ctx, "n1", "intruder"), repository.ErrNotFound)
	})

	t.Run("MarkAsRead with a malformed id", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs("42", "u1").
			WillReturnError(&pq.Error{Code: "22P02"})

		assert.ErrorIs(t, repo.MarkAsRead(ctx, "42", "u1"), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceLogRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMaintenanceLogRepository(db)
	l := &domain.MaintenanceLog{AssetID: "a1", ServiceType: "Oil change", CostRupees: 1200,
		ServiceDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)}

	mock.ExpectQuery("INSERT INTO maintenance_logs").
		WithArgs(sqlmock.AnyArg(), "a1", "Oil change", 1200, "2026-05-20", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	require.NoError(t, repo.Create(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}
