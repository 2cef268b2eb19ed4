package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"

	"github.com/lib/pq"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

//go:embed schema.sql
var schema string

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AssetRepository
	repository.BookingRepository
	repository.NotificationRepository
	repository.MaintenanceLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		AssetRepository:          NewAssetRepository(db),
		BookingRepository:        NewBookingRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		MaintenanceLogRepository: NewMaintenanceLogRepository(db),
	}
}

// DB exposes the underlying pool for jobs that run raw statements.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate applies the bootstrap schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("MIGRATE", "schema")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult("MIGRATE", 0, err)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// mapError converts driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrConflict, pqErr.Constraint)
		case invalidTextRepresentation:
			// a malformed uuid can never name a stored row
			return repository.ErrNotFound
		}
	}
	return err
}

// requireRows returns ErrNotFound when an update or delete touched nothing.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
