package repositories

import (
	"context"

	"clinicamia-assets/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// GormMaintenanceRepository handles maintenance record data access
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// Create creates a new maintenance record
func (r *GormMaintenanceRepository) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByAsset lists maintenance history of an asset, most recent first
func (r *GormMaintenanceRepository) ListByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	var records []*models.MaintenanceRecord
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
