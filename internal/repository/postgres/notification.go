package postgres

import (
	"context"
	"database/sql"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	logger.EnterMethod("notificationRepository.Create", "userID", n.UserID, "type", n.Type)
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	query := `INSERT INTO notifications (id, user_id, message, type, is_read)
	          VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	logger.DatabaseCall("INSERT", "notifications", "userID", n.UserID)

	err := r.db.QueryRowContext(ctx, query, n.ID, n.UserID, n.Message, n.Type, n.IsRead).Scan(&n.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)

	if err != nil {
		logger.ExitMethodWithError("notificationRepository.Create", err, "userID", n.UserID)
		return mapError(err)
	}
	logger.ExitMethod("notificationRepository.Create", "notificationID", n.ID)
	return nil
}

func (r *notificationRepository) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	query := `SELECT id, user_id, message, type, is_read, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// MarkAsRead only touches the caller's own notifications; anything else is ErrNotFound.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return mapError(err)
	}
	return requireRows(result)
}
