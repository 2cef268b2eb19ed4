package service

import (
	"context"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, role, village string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*domain.User, error)
}

// AssetInput carries the operator-editable fields of a new asset. Hourly rate
// is intentionally absent: it is always derived.
type AssetInput struct {
	Name         string
	Type         string
	Category     string
	Description  string
	Location     string
	PurchaseDate string
	Margin       float64
}

// AssetPatch lists the fields an update may change; nil means unchanged.
type AssetPatch struct {
	Name         *string
	Type         *string
	Category     *string
	Description  *string
	Location     *string
	PurchaseDate *string
	Margin       *float64
	Availability *bool
}

type MaintenanceInput struct {
	ServiceType string
	CostRupees  int
	ServiceDate string
	Notes       string
}

type AssetService interface {
	CreateAsset(ctx context.Context, operatorID string, in AssetInput) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, operatorID, assetID string, patch AssetPatch) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, operatorID, assetID string) error
	GetAsset(ctx context.Context, id string) (*domain.Asset, error)
	ListAssets(ctx context.Context, filter domain.AssetFilter) ([]domain.Asset, error)
	QuotePrice(category, purchaseDate string, margin float64) (utils.PriceBreakdown, error)
	AddMaintenanceLog(ctx context.Context, operatorID, assetID string, in MaintenanceInput) (*domain.MaintenanceLog, error)
	ListMaintenanceLogs(ctx context.Context, operatorID, assetID string) ([]domain.MaintenanceLog, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, farmerID, assetID, date, bookingTime string) (*domain.BookingDetail, error)
	// RefreshBookingStatuses completes past BOOKED bookings and frees their
	// assets. It returns how many bookings were completed.
	RefreshBookingStatuses(ctx context.Context) (int, error)
	ListMyBookings(ctx context.Context, userID string, role domain.Role) ([]domain.BookingDetail, error)
	ListAllBookings(ctx context.Context) ([]domain.BookingDetail, error)
	GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.BookingDetail, error)
}

// Notifier accepts a message for a user. Delivery beyond acceptance is not guaranteed.
type Notifier interface {
	Notify(ctx context.Context, userID, message string, typ domain.NotificationType) error
}

type NotificationService interface {
	Notifier
	ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

// BookingEmail is everything the operator email needs.
type BookingEmail struct {
	OperatorEmail string
	OperatorName  string
	FarmerName    string
	AssetName     string
	Date          string
	Time          string
}

type EmailService interface {
	SendBookingNotification(ctx context.Context, msg BookingEmail) error
}

// EventPublisher announces committed bookings to other processes.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.BookingDetail) error
}

// SlotLocker serialises concurrent attempts on the same booking slot across
// server instances. acquired is false when another holder has the slot.
type SlotLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}
