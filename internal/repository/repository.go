package repository

import (
	"context"
	"time"

	"dhara-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	// Update writes the descriptive and pricing columns. Availability is only
	// changed through SetAvailability and the booking writes.
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.AssetFilter) ([]domain.Asset, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type BookingRepository interface {
	// Create inserts a BOOKED booking and marks its asset unavailable in one
	// transaction. A second active booking for the same asset, date and time
	// returns ErrConflict and writes nothing.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.BookingDetail, error)
	FindActive(ctx context.Context, assetID string, date time.Time, bookingTime string) (*domain.Booking, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]domain.BookingDetail, error)
	ListByOperator(ctx context.Context, operatorID string) ([]domain.BookingDetail, error)
	ListAll(ctx context.Context) ([]domain.BookingDetail, error)
	// CompleteExpired marks BOOKED bookings dated before today as COMPLETED,
	// makes their assets available again and returns the asset ids the
	// completed bookings referenced. Both writes commit together.
	CompleteExpired(ctx context.Context, today time.Time) ([]string, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

type MaintenanceLogRepository interface {
	Create(ctx context.Context, log *domain.MaintenanceLog) error
	ListByAsset(ctx context.Context, assetID string) ([]domain.MaintenanceLog, error)
}
