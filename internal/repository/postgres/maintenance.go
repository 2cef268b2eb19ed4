package postgres

import (
	"context"
	"database/sql"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
)

type maintenanceLogRepository struct {
	db *sql.DB
}

func NewMaintenanceLogRepository(db *sql.DB) repository.MaintenanceLogRepository {
	return &maintenanceLogRepository{db: db}
}

func (r *maintenanceLogRepository) Create(ctx context.Context, l *domain.MaintenanceLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	query := `INSERT INTO maintenance_logs (id, asset_id, service_type, cost_rupees, service_date, notes)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, l.ID, l.AssetID, l.ServiceType, l.CostRupees, dateArg(l.ServiceDate), l.Notes).Scan(&l.CreatedAt)
	return mapError(err)
}

func (r *maintenanceLogRepository) ListByAsset(ctx context.Context, assetID string) ([]domain.MaintenanceLog, error) {
	query := `SELECT id, asset_id, service_type, cost_rupees, service_date, notes, created_at
	          FROM maintenance_logs WHERE asset_id = $1 ORDER BY service_date DESC`
	rows, err := r.db.QueryContext(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.MaintenanceLog{}
	for rows.Next() {
		var l domain.MaintenanceLog
		if err := rows.Scan(&l.ID, &l.AssetID, &l.ServiceType, &l.CostRupees, &l.ServiceDate, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
