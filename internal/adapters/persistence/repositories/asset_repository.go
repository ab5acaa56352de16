package repositories

import (
	"context"
	"errors"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormAssetRepository handles fixed asset data access
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// Create creates a new asset
func (r *GormAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID gets an asset by ID with its recent depreciations and maintenances
func (r *GormAssetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Depreciations", func(db *gorm.DB) *gorm.DB {
			return db.Order("period DESC").Limit(12)
		}).
		Preload("Maintenances", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC").Limit(10)
		}).
		First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetByCode gets an asset by its business code
func (r *GormAssetRepository) GetByCode(ctx context.Context, code string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ExistsByCode checks if an asset code is already registered
func (r *GormAssetRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update updates an asset
func (r *GormAssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// UpdateFinancials updates only the depreciation-owned financial state
func (r *GormAssetRepository) UpdateFinancials(ctx context.Context, id uint, accumulated, bookValue decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"accumulated_depreciation": accumulated,
			"book_value":               bookValue,
		}).Error
}

// ListActive lists all assets eligible for depreciation
func (r *GormAssetRepository) ListActive(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Order("code ASC").
		Find(&assets).Error
	return assets, err
}

// List lists assets with filters and pagination
func (r *GormAssetRepository) List(ctx context.Context, filter *AssetFilter) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Asset{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ? OR description LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&assets).Error

	return assets, total, err
}

// ListMaintenanceDueBefore lists Active assets whose next maintenance falls
// on or before the deadline, ordered by due date ascending
func (r *GormAssetRepository) ListMaintenanceDueBefore(ctx context.Context, deadline time.Time) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Where("next_maintenance_at IS NOT NULL AND next_maintenance_at <= ?", deadline).
		Order("next_maintenance_at ASC").
		Find(&assets).Error
	return assets, err
}

// IsNotFound reports whether err is a gorm record-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
