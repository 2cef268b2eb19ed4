package http

import (
	"context"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/service"
	"dhara-backend/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password, name, role, village string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password, name, role, village)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAssetService
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) CreateAsset(ctx context.Context, operatorID string, in service.AssetInput) (*domain.Asset, error) {
	args := m.Called(ctx, operatorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) UpdateAsset(ctx context.Context, operatorID, assetID string, patch service.AssetPatch) (*domain.Asset, error) {
	args := m.Called(ctx, operatorID, assetID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) DeleteAsset(ctx context.Context, operatorID, assetID string) error {
	return m.Called(ctx, operatorID, assetID).Error(0)
}
func (m *MockAssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) ListAssets(ctx context.Context, filter domain.AssetFilter) ([]domain.Asset, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetService) QuotePrice(category, purchaseDate string, margin float64) (utils.PriceBreakdown, error) {
	args := m.Called(category, purchaseDate, margin)
	return args.Get(0).(utils.PriceBreakdown), args.Error(1)
}
func (m *MockAssetService) AddMaintenanceLog(ctx context.Context, operatorID, assetID string, in service.MaintenanceInput) (*domain.MaintenanceLog, error) {
	args := m.Called(ctx, operatorID, assetID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceLog), args.Error(1)
}
func (m *MockAssetService) ListMaintenanceLogs(ctx context.Context, operatorID, assetID string) ([]domain.MaintenanceLog, error) {
	args := m.Called(ctx, operatorID, assetID)
	return args.Get(0).([]domain.MaintenanceLog), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, farmerID, assetID, date, bookingTime string) (*domain.BookingDetail, error) {
	args := m.Called(ctx, farmerID, assetID, date, bookingTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}
func (m *MockBookingService) RefreshBookingStatuses(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockBookingService) ListMyBookings(ctx context.Context, userID string, role domain.Role) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingService) ListAllBookings(ctx context.Context) ([]domain.BookingDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.BookingDetail, error) {
	args := m.Called(ctx, userID, role, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, message string, typ domain.NotificationType) error {
	return m.Called(ctx, userID, message, typ).Error(0)
}
func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}
