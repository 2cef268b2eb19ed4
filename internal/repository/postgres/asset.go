package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
)

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) repository.AssetRepository {
	return &assetRepository{db: db}
}

const assetSelect = `SELECT a.id, a.operator_id, a.name, a.type, a.category, a.description, a.location,
	       a.hourly_rate, a.margin, a.availability, a.purchase_date, a.created_at, a.updated_at,
	       o.name, o.village
	FROM assets a JOIN users o ON o.id = a.operator_id`

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO assets (id, operator_id, name, type, category, description, location, hourly_rate, margin, availability, purchase_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at, updated_at`
	logger.DatabaseCall("INSERT", "assets", "operatorID", a.OperatorID, "category", a.Category)
	err := r.db.QueryRowContext(ctx, query, a.ID, a.OperatorID, a.Name, a.Type, a.Category, a.Description, a.Location,
		a.HourlyRate, a.Margin, a.Availability, nullDate(a.PurchaseDate)).Scan(&a.CreatedAt, &a.UpdatedAt)
	logger.DatabaseResult("INSERT", 1, err, "assetID", a.ID)
	return mapError(err)
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx, assetSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	query := `UPDATE assets SET name=$1, type=$2, category=$3, description=$4, location=$5, hourly_rate=$6,
	          margin=$7, purchase_date=$8, updated_at=NOW()
	          WHERE id=$9 RETURNING updated_at, availability`
	logger.DatabaseCall("UPDATE", "assets", "assetID", a.ID)
	err := r.db.QueryRowContext(ctx, query, a.Name, a.Type, a.Category, a.Description, a.Location, a.HourlyRate,
		a.Margin, nullDate(a.PurchaseDate), a.ID).Scan(&a.UpdatedAt, &a.Availability)
	logger.DatabaseResult("UPDATE", 1, err, "assetID", a.ID)
	return mapError(err)
}

// Delete removes the asset; bookings and maintenance logs go with it via ON DELETE CASCADE.
func (r *assetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

func (r *assetRepository) List(ctx context.Context, f domain.AssetFilter) ([]domain.Asset, error) {
	query := assetSelect + ` WHERE 1=1`
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		query += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.OperatorID != "" {
		add("a.operator_id = $%d", f.OperatorID)
	}
	if f.Type != "" {
		add("LOWER(a.type) = LOWER($%d)", f.Type)
	}
	if f.Category != "" {
		add("a.category = $%d", string(domain.ParseCategory(f.Category)))
	}
	if f.AvailableOnly {
		query += " AND a.availability = TRUE"
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

func (r *assetRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE assets SET availability = $1, updated_at = NOW() WHERE id = $2`, available, id)
	if err != nil {
		return mapError(err)
	}
	return requireRows(res)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	a := &domain.Asset{Operator: &domain.User{}}
	var purchase sql.NullTime
	if err := row.Scan(&a.ID, &a.OperatorID, &a.Name, &a.Type, &a.Category, &a.Description, &a.Location,
		&a.HourlyRate, &a.Margin, &a.Availability, &purchase, &a.CreatedAt, &a.UpdatedAt,
		&a.Operator.Name, &a.Operator.Village); err != nil {
		return nil, err
	}
	a.Operator.ID = a.OperatorID
	a.Operator.Role = domain.RoleOperator
	if purchase.Valid {
		t := purchase.Time
		a.PurchaseDate = &t
	}
	return a, nil
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return dateArg(*t)
}
