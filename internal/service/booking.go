package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/metrics"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/utils"
)

const slotLockTTL = 10 * time.Second

type bookingService struct {
	bookingRepo repository.BookingRepository
	assetRepo   repository.AssetRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	publisher   EventPublisher
	locker      SlotLocker
	clock       utils.Clock
	metrics     *metrics.Metrics
}

// NewBookingService wires the booking lifecycle. publisher, locker and m may be nil.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	assetRepo repository.AssetRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	publisher EventPublisher,
	locker SlotLocker,
	clock utils.Clock,
	m *metrics.Metrics,
) BookingService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		assetRepo:   assetRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		publisher:   publisher,
		locker:      locker,
		clock:       clock,
		metrics:     m,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, farmerID, assetID, dateStr, timeStr string) (*domain.BookingDetail, error) {
	logger.EnterMethod("bookingService.CreateBooking", "farmerID", farmerID, "assetID", assetID, "date", dateStr, "time", timeStr)

	if farmerID == "" {
		return nil, invalidInput("farmer is required")
	}
	if assetID == "" {
		return nil, invalidInput("assetId is required")
	}
	day, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, invalidInput("date: %v", err)
	}
	slot, err := utils.ParseTimeOfDay(timeStr)
	if err != nil {
		return nil, invalidInput("time: %v", err)
	}

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "reason", "asset lookup failed")
		return nil, fmt.Errorf("asset %s: %w", assetID, err)
	}
	farmer, err := s.userRepo.GetByID(ctx, farmerID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "reason", "farmer lookup failed")
		return nil, fmt.Errorf("farmer %s: %w", farmerID, err)
	}

	if release, err := s.lockSlot(ctx, assetID, day, slot); err != nil {
		return nil, err
	} else if release != nil {
		defer release()
	}

	existing, err := s.bookingRepo.FindActive(ctx, assetID, day, slot)
	switch {
	case err == nil:
		s.metrics.BookingConflict("precheck")
		logger.Info("Booking slot already taken", "assetID", assetID, "date", utils.FormatDate(day), "time", slot, "existingBookingID", existing.ID)
		return nil, fmt.Errorf("%w: %s is already booked on %s at %s", repository.ErrConflict, asset.Name, utils.FormatDate(day), slot)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	booking := &domain.Booking{
		FarmerID:    farmerID,
		AssetID:     assetID,
		BookingDate: day,
		BookingTime: slot,
		Status:      domain.BookingStatusBooked,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.metrics.BookingConflict("constraint")
			return nil, fmt.Errorf("%w: %s is already booked on %s at %s", repository.ErrConflict, asset.Name, utils.FormatDate(day), slot)
		}
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "reason", "insert failed")
		return nil, err
	}
	s.metrics.BookingCreated()

	detail := &domain.BookingDetail{
		Booking:    *booking,
		FarmerName: farmer.Name,
		AssetName:  asset.Name,
		AssetType:  asset.Type,
		OperatorID: asset.OperatorID,
	}
	if asset.Operator != nil {
		detail.OperatorName = asset.Operator.Name
	}

	// Notification and event failures never undo a committed booking.
	msg := fmt.Sprintf("New booking: %s booked %s on %s at %s", farmer.Name, asset.Name, utils.FormatDate(day), slot)
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, asset.OperatorID, msg, domain.NotificationTypeBooking); err != nil {
			logger.WarnContext(ctx, "Failed to notify operator", "operatorID", asset.OperatorID, "bookingID", booking.ID, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBookingCreated(ctx, detail); err != nil {
			logger.WarnContext(ctx, "Failed to publish booking event", "bookingID", booking.ID, "error", err)
		}
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID)
	return detail, nil
}

// lockSlot returns a nil release when no locker is configured or the lock
// backend is unreachable; the unique index still guards the insert.
func (s *bookingService) lockSlot(ctx context.Context, assetID string, day time.Time, slot string) (func(), error) {
	if s.locker == nil {
		return nil, nil
	}
	key := fmt.Sprintf("booking-slot:%s:%s:%s", assetID, utils.FormatDate(day), slot)
	release, acquired, err := s.locker.Acquire(ctx, key, slotLockTTL)
	if err != nil {
		logger.WarnContext(ctx, "Slot lock unavailable, relying on storage constraint", "key", key, "error", err)
		return nil, nil
	}
	if !acquired {
		s.metrics.BookingConflict("lock")
		return nil, fmt.Errorf("%w: slot is being booked by another request", repository.ErrConflict)
	}
	return release, nil
}

func (s *bookingService) RefreshBookingStatuses(ctx context.Context) (int, error) {
	today := utils.NormalizeDay(s.clock.Now())

	assetIDs, err := s.bookingRepo.CompleteExpired(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("complete expired bookings: %w", err)
	}
	if len(assetIDs) == 0 {
		return 0, nil
	}

	s.metrics.BookingsCompleted(len(assetIDs))
	logger.Info("Expired bookings completed", "bookings", len(assetIDs), "before", utils.FormatDate(today))
	return len(assetIDs), nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string, role domain.Role) ([]domain.BookingDetail, error) {
	if _, err := s.RefreshBookingStatuses(ctx); err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleFarmer:
		return s.bookingRepo.ListByFarmer(ctx, userID)
	case domain.RoleOperator:
		return s.bookingRepo.ListByOperator(ctx, userID)
	case domain.RoleAdmin:
		// Admins have no bookings of their own; they use ListAllBookings.
		return []domain.BookingDetail{}, nil
	default:
		return nil, invalidInput("unknown role %q", role)
	}
}

func (s *bookingService) ListAllBookings(ctx context.Context) ([]domain.BookingDetail, error) {
	if _, err := s.RefreshBookingStatuses(ctx); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListAll(ctx)
}

func (s *bookingService) GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.BookingDetail, error) {
	if _, err := s.RefreshBookingStatuses(ctx); err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && b.FarmerID != userID && b.OperatorID != userID {
		return nil, repository.ErrForbidden
	}
	return b, nil
}
