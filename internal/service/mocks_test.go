package service_test

import (
	"context"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAssetRepo) List(ctx context.Context, filter domain.AssetFilter) ([]domain.Asset, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) FindActive(ctx context.Context, assetID string, date time.Time, bookingTime string) (*domain.Booking, error) {
	args := m.Called(ctx, assetID, date, bookingTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByFarmer(ctx context.Context, farmerID string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, farmerID)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) ListByOperator(ctx context.Context, operatorID string) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, operatorID)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}
func (m *MockBookingRepo) CompleteExpired(ctx context.Context, today time.Time) ([]string, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, l *domain.MaintenanceLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) ListByAsset(ctx context.Context, assetID string) ([]domain.MaintenanceLog, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).([]domain.MaintenanceLog), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, message string, typ domain.NotificationType) error {
	args := m.Called(ctx, userID, message, typ)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingCreated(ctx context.Context, b *domain.BookingDetail) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// MockSlotLocker
type MockSlotLocker struct {
	mock.Mock
}

func (m *MockSlotLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	args := m.Called(ctx, key, ttl)
	release, _ := args.Get(0).(func())
	return release, args.Bool(1), args.Error(2)
}

var (
	_ service.Notifier       = (*MockNotifier)(nil)
	_ service.EventPublisher = (*MockPublisher)(nil)
	_ service.SlotLocker     = (*MockSlotLocker)(nil)
)
