package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/metrics"
	"dhara-backend/internal/repository"
	"dhara-backend/internal/utils"
)

const defaultAssetType = "MACHINERY"

// statusRefresher is the part of BookingService asset reads depend on.
type statusRefresher interface {
	RefreshBookingStatuses(ctx context.Context) (int, error)
}

type assetService struct {
	assetRepo       repository.AssetRepository
	maintenanceRepo repository.MaintenanceLogRepository
	engine          *utils.PricingEngine
	bookings        statusRefresher
	clock           utils.Clock
	metrics         *metrics.Metrics
}

func NewAssetService(
	assetRepo repository.AssetRepository,
	maintenanceRepo repository.MaintenanceLogRepository,
	engine *utils.PricingEngine,
	bookings statusRefresher,
	clock utils.Clock,
	m *metrics.Metrics,
) AssetService {
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if engine == nil {
		engine = utils.NewPricingEngine(utils.DefaultPricingTable(), clock)
	}
	return &assetService{
		assetRepo:       assetRepo,
		maintenanceRepo: maintenanceRepo,
		engine:          engine,
		bookings:        bookings,
		clock:           clock,
		metrics:         m,
	}
}

func (s *assetService) CreateAsset(ctx context.Context, operatorID string, in AssetInput) (*domain.Asset, error) {
	logger.EnterMethod("assetService.CreateAsset", "operatorID", operatorID, "category", in.Category)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	margin := in.Margin
	if margin == 0 {
		margin = utils.DefaultMargin
	}
	if err := utils.ValidateMargin(margin); err != nil {
		return nil, invalidInput("%v", err)
	}
	purchase, err := s.parsePurchaseDate(in.PurchaseDate)
	if err != nil {
		return nil, err
	}
	assetType := strings.TrimSpace(in.Type)
	if assetType == "" {
		assetType = defaultAssetType
	}

	asset := &domain.Asset{
		OperatorID:   operatorID,
		Name:         name,
		Type:         assetType,
		Category:     domain.ParseCategory(in.Category),
		Description:  strings.TrimSpace(in.Description),
		Location:     strings.TrimSpace(in.Location),
		Margin:       margin,
		Availability: true,
		PurchaseDate: purchase,
	}
	s.reprice(asset)

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		logger.ExitMethodWithError("assetService.CreateAsset", err)
		return nil, err
	}
	logger.ExitMethod("assetService.CreateAsset", "assetID", asset.ID, "hourlyRate", asset.HourlyRate)
	return asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, operatorID, assetID string, p AssetPatch) (*domain.Asset, error) {
	asset, err := s.ownedAsset(ctx, operatorID, assetID)
	if err != nil {
		return nil, err
	}

	repriced := false
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, invalidInput("name cannot be empty")
		}
		asset.Name = name
	}
	if p.Type != nil && strings.TrimSpace(*p.Type) != "" {
		asset.Type = strings.TrimSpace(*p.Type)
	}
	if p.Description != nil {
		asset.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		asset.Location = strings.TrimSpace(*p.Location)
	}
	if p.Category != nil {
		asset.Category = domain.ParseCategory(*p.Category)
		repriced = true
	}
	if p.PurchaseDate != nil {
		purchase, err := s.parsePurchaseDate(*p.PurchaseDate)
		if err != nil {
			return nil, err
		}
		asset.PurchaseDate = purchase
		repriced = true
	}
	if p.Margin != nil {
		if err := utils.ValidateMargin(*p.Margin); err != nil {
			return nil, invalidInput("%v", err)
		}
		asset.Margin = *p.Margin
		repriced = true
	}
	if repriced {
		s.reprice(asset)
	}

	// Update leaves availability alone so a booking committed since the read
	// above keeps the asset unavailable.
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	if p.Availability != nil {
		if err := s.assetRepo.SetAvailability(ctx, assetID, *p.Availability); err != nil {
			return nil, err
		}
		asset.Availability = *p.Availability
	}
	return asset, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, operatorID, assetID string) error {
	if _, err := s.ownedAsset(ctx, operatorID, assetID); err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		return err
	}
	logger.Info("Asset deleted", "assetID", assetID, "operatorID", operatorID)
	return nil
}

func (s *assetService) GetAsset(ctx context.Context, id string) (*domain.Asset, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.assetRepo.GetByID(ctx, id)
}

func (s *assetService) ListAssets(ctx context.Context, filter domain.AssetFilter) ([]domain.Asset, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.assetRepo.List(ctx, filter)
}

// QuotePrice previews the rate for unsaved form values. Unlike asset writes it
// accepts any margin so a UI slider can be previewed past its bounds.
func (s *assetService) QuotePrice(category, purchaseDate string, margin float64) (utils.PriceBreakdown, error) {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return utils.PriceBreakdown{}, invalidInput("margin must be a number")
	}
	purchase, err := s.parsePurchaseDate(purchaseDate)
	if err != nil {
		return utils.PriceBreakdown{}, err
	}
	return s.engine.Quote(category, purchase, margin), nil
}

func (s *assetService) AddMaintenanceLog(ctx context.Context, operatorID, assetID string, in MaintenanceInput) (*domain.MaintenanceLog, error) {
	if _, err := s.ownedAsset(ctx, operatorID, assetID); err != nil {
		return nil, err
	}
	serviceType := strings.TrimSpace(in.ServiceType)
	if serviceType == "" {
		return nil, invalidInput("serviceType is required")
	}
	if in.CostRupees < 0 {
		return nil, invalidInput("cost cannot be negative")
	}
	serviceDate := utils.NormalizeDay(s.clock.Now())
	if strings.TrimSpace(in.ServiceDate) != "" {
		d, err := utils.ParseDate(in.ServiceDate)
		if err != nil {
			return nil, invalidInput("serviceDate: %v", err)
		}
		serviceDate = d
	}

	entry := &domain.MaintenanceLog{
		AssetID:     assetID,
		ServiceType: serviceType,
		CostRupees:  in.CostRupees,
		ServiceDate: serviceDate,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.maintenanceRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *assetService) ListMaintenanceLogs(ctx context.Context, operatorID, assetID string) ([]domain.MaintenanceLog, error) {
	if _, err := s.ownedAsset(ctx, operatorID, assetID); err != nil {
		return nil, err
	}
	return s.maintenanceRepo.ListByAsset(ctx, assetID)
}

func (s *assetService) ownedAsset(ctx context.Context, operatorID, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, err)
	}
	if asset.OperatorID != operatorID {
		return nil, repository.ErrForbidden
	}
	return asset, nil
}

func (s *assetService) reprice(a *domain.Asset) {
	base := s.engine.CalculateBaseCost(string(a.Category), a.PurchaseDate)
	a.HourlyRate = s.engine.CalculateFinalPrice(base, a.Margin)
	s.metrics.AssetPriced(string(a.Category))
}

func (s *assetService) parsePurchaseDate(v string) (*time.Time, error) {
	purchase, err := utils.ParseOptionalDate(v)
	if err != nil {
		return nil, invalidInput("purchaseDate: %v", err)
	}
	if purchase != nil && purchase.After(s.clock.Now()) {
		return nil, invalidInput("purchaseDate cannot be in the future")
	}
	return purchase, nil
}

func (s *assetService) refresh(ctx context.Context) error {
	if s.bookings == nil {
		return nil
	}
	_, err := s.bookings.RefreshBookingStatuses(ctx)
	return err
}
