package postgres

import (
	"context"
	"database/sql"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingDetailSelect = `SELECT b.id, b.farmer_id, b.asset_id, b.booking_date, b.booking_time, b.status, b.created_at,
	       f.name, a.name, a.type, a.operator_id, o.name
	FROM bookings b
	JOIN users f ON f.id = b.farmer_id
	JOIN assets a ON a.id = b.asset_id
	JOIN users o ON o.id = a.operator_id`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.Create", "assetID", b.AssetID, "date", b.BookingDate, "time", b.BookingTime)
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	err := r.create(ctx, b)
	if err != nil {
		logger.ExitMethodWithError("bookingRepository.Create", err, "assetID", b.AssetID)
		return err
	}
	logger.ExitMethod("bookingRepository.Create", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO bookings (id, farmer_id, asset_id, booking_date, booking_time, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	logger.DatabaseCall("INSERT", "bookings", "farmerID", b.FarmerID, "assetID", b.AssetID)
	err = tx.QueryRowContext(ctx, query, b.ID, b.FarmerID, b.AssetID, dateArg(b.BookingDate), b.BookingTime, b.Status).Scan(&b.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "bookingID", b.ID)
	if err != nil {
		return mapError(err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE assets SET availability = FALSE, updated_at = NOW() WHERE id = $1`, b.AssetID)
	if err != nil {
		return mapError(err)
	}
	if err := requireRows(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx, bookingDetailSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return d, nil
}

// FindActive returns the BOOKED or PENDING booking holding the slot, or ErrNotFound.
func (r *bookingRepository) FindActive(ctx context.Context, assetID string, date time.Time, bookingTime string) (*domain.Booking, error) {
	query := `SELECT id, farmer_id, asset_id, booking_date, booking_time, status, created_at
	          FROM bookings
	          WHERE asset_id = $1 AND booking_date = $2 AND booking_time = $3 AND status IN ('BOOKED', 'PENDING')
	          LIMIT 1`
	b := &domain.Booking{}
	err := r.db.QueryRowContext(ctx, query, assetID, dateArg(date), bookingTime).
		Scan(&b.ID, &b.FarmerID, &b.AssetID, &b.BookingDate, &b.BookingTime, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *bookingRepository) ListByFarmer(ctx context.Context, farmerID string) ([]domain.BookingDetail, error) {
	return r.list(ctx, bookingDetailSelect+` WHERE b.farmer_id = $1 ORDER BY b.booking_date DESC, b.booking_time DESC`, farmerID)
}

func (r *bookingRepository) ListByOperator(ctx context.Context, operatorID string) ([]domain.BookingDetail, error) {
	return r.list(ctx, bookingDetailSelect+` WHERE a.operator_id = $1 ORDER BY b.booking_date DESC, b.booking_time DESC`, operatorID)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	return r.list(ctx, bookingDetailSelect+` ORDER BY b.created_at DESC`)
}

func (r *bookingRepository) CompleteExpired(ctx context.Context, today time.Time) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `UPDATE bookings SET status = 'COMPLETED'
	          WHERE status = 'BOOKED' AND booking_date < $1
	          RETURNING asset_id`
	logger.DatabaseCall("UPDATE", "bookings", "before", dateArg(today))
	assetIDs, err := completedAssets(tx.QueryContext(ctx, query, dateArg(today)))
	logger.DatabaseResult("UPDATE", int64(len(assetIDs)), err)
	if err != nil {
		return nil, err
	}
	if len(assetIDs) == 0 {
		return nil, tx.Commit()
	}

	distinct := distinctIDs(assetIDs)
	logger.DatabaseCall("UPDATE", "assets", "count", len(distinct), "availability", true)
	res, err := tx.ExecContext(ctx, `UPDATE assets SET availability = TRUE, updated_at = NOW() WHERE id = ANY($1::uuid[])`, pq.Array(distinct))
	var n int64
	if err == nil {
		n, _ = res.RowsAffected()
	}
	logger.DatabaseResult("UPDATE", n, err)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assetIDs, nil
}

// completedAssets drains the RETURNING rows so the transaction is free for
// the next statement.
func completedAssets(rows *sql.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *d)
	}
	return bookings, rows.Err()
}

func scanBookingDetail(row rowScanner) (*domain.BookingDetail, error) {
	d := &domain.BookingDetail{}
	if err := row.Scan(&d.ID, &d.FarmerID, &d.AssetID, &d.BookingDate, &d.BookingTime, &d.Status, &d.CreatedAt,
		&d.FarmerName, &d.AssetName, &d.AssetType, &d.OperatorID, &d.OperatorName); err != nil {
		return nil, err
	}
	return d, nil
}

func dateArg(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
