package services

import (
	"context"
	"log"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

// MaintenanceService handles asset maintenance tracking
type MaintenanceService struct {
	assetRepo repositories.AssetRepository
	maintRepo repositories.MaintenanceRepository
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(assetRepo repositories.AssetRepository, maintRepo repositories.MaintenanceRepository) *MaintenanceService {
	return &MaintenanceService{
		assetRepo: assetRepo,
		maintRepo: maintRepo,
	}
}

// RegisterMaintenanceInput represents maintenance registration input
type RegisterMaintenanceInput struct {
	Kind            string          `json:"kind" validate:"required"`
	Description     string          `json:"description" validate:"required"`
	Cost            decimal.Decimal `json:"cost,omitempty"`
	Performer       string          `json:"performer,omitempty"`
	Date            *time.Time      `json:"date,omitempty"`
	NextMaintenance *time.Time      `json:"next_maintenance,omitempty"`
}

// Register records a maintenance event against an asset, updates the asset's
// last-performed date (and next-due date when supplied) and reverts an asset
// under maintenance back to Active.
func (s *MaintenanceService) Register(ctx context.Context, assetID uint, input *RegisterMaintenanceInput, registeredBy uint) (*models.MaintenanceRecord, error) {
	if !domain.ValidMaintenanceKind(domain.MaintenanceKind(input.Kind)) {
		return nil, domain.ErrInvalidMaintenanceKind
	}

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	record := &models.MaintenanceRecord{
		AssetID:      assetID,
		Date:         date,
		Kind:         input.Kind,
		Description:  input.Description,
		Cost:         input.Cost,
		Performer:    input.Performer,
		RegisteredBy: registeredBy,
	}

	if err := s.maintRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	asset.LastMaintenanceAt = &record.Date
	if input.NextMaintenance != nil {
		asset.NextMaintenanceAt = input.NextMaintenance
	}
	if asset.Status == models.StatusUnderMaintenance {
		asset.Status = models.StatusActive
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	log.Printf("🔧 Maintenance registered: asset=%s kind=%s", asset.Code, input.Kind)
	return record, nil
}

// ListByAsset lists maintenance history of an asset
func (s *MaintenanceService) ListByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	exists, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return s.maintRepo.ListByAsset(ctx, exists.ID)
}

// ListDueSoon returns Active assets whose next maintenance falls within the
// window, ordered by due date ascending
func (s *MaintenanceService) ListDueSoon(ctx context.Context, windowDays int) ([]*models.Asset, error) {
	deadline := time.Now().AddDate(0, 0, windowDays)
	return s.assetRepo.ListMaintenanceDueBefore(ctx, deadline)
}

// ListOverdue returns Active assets whose next maintenance date is strictly
// in the past
func (s *MaintenanceService) ListOverdue(ctx context.Context) ([]*models.Asset, error) {
	assets, err := s.assetRepo.ListMaintenanceDueBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	overdue := make([]*models.Asset, 0, len(assets))
	for _, asset := range assets {
		if asset.NextMaintenanceAt != nil && asset.NextMaintenanceAt.Before(now) {
			overdue = append(overdue, asset)
		}
	}
	return overdue, nil
}
