package repositories

import (
	"context"
	"errors"
	"fmt"

	"clinicamia-assets/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// runLockName is the advisory lock key serializing depreciation runs
// across all instances sharing the database.
const runLockName = "asset-depreciation-run"

// GormDepreciationRepository handles depreciation record data access
type GormDepreciationRepository struct {
	db *gorm.DB
}

// NewDepreciationRepository creates a new depreciation repository
func NewDepreciationRepository(db *gorm.DB) *GormDepreciationRepository {
	return &GormDepreciationRepository{db: db}
}

// FindAnyByPeriod returns any single record for the period, or nil if the
// period has not been run yet
func (r *GormDepreciationRepository) FindAnyByPeriod(ctx context.Context, period string) (*models.DepreciationRecord, error) {
	var record models.DepreciationRecord
	err := r.db.WithContext(ctx).Where("period = ?", period).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// PostAssetDepreciation inserts the record and updates the owning asset's
// accumulated depreciation and book value in one transaction. Both writes
// succeed or both roll back.
func (r *GormDepreciationRepository) PostAssetDepreciation(ctx context.Context, record *models.DepreciationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Model(&models.Asset{}).
			Where("id = ?", record.AssetID).
			Updates(map[string]interface{}{
				"accumulated_depreciation": record.AccumulatedDepreciation,
				"book_value":               record.BookValue,
			}).Error
	})
}

// ListByPeriod lists all records of a period with their assets
func (r *GormDepreciationRepository) ListByPeriod(ctx context.Context, period string) ([]*models.DepreciationRecord, error) {
	var records []*models.DepreciationRecord
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("period = ?", period).
		Order("asset_id ASC").
		Find(&records).Error
	return records, err
}

// FindUnposted lists records of a period that have no posting reference yet
func (r *GormDepreciationRepository) FindUnposted(ctx context.Context, period string) ([]*models.DepreciationRecord, error) {
	var records []*models.DepreciationRecord
	err := r.db.WithContext(ctx).
		Preload("Asset").
		Where("period = ? AND posting_ref IS NULL", period).
		Order("asset_id ASC").
		Find(&records).Error
	return records, err
}

// MarkPosted attaches the posting reference to the given records.
// Already-posted records are left untouched, so re-invoking with the same
// reference is a no-op.
func (r *GormDepreciationRepository) MarkPosted(ctx context.Context, ids []uint, postingRef string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.DepreciationRecord{}).
		Where("id IN ? AND posting_ref IS NULL", ids).
		Update("posting_ref", postingRef).Error
}

// WithRunLock runs fn while holding a MySQL advisory lock. GET_LOCK is
// connection-scoped, so the lock is held on a pinned connection for the
// whole duration of fn.
func (r *GormDepreciationRepository) WithRunLock(ctx context.Context, fn func() error) error {
	return r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		var ok int
		if err := conn.Raw("SELECT GET_LOCK(?, 30)", runLockName).Scan(&ok).Error; err != nil {
			return err
		}
		if ok != 1 {
			return fmt.Errorf("could not acquire lock %s", runLockName)
		}
		defer func() {
			var released int
			_ = conn.Raw("SELECT RELEASE_LOCK(?)", runLockName).Scan(&released).Error
		}()
		return fn()
	})
}
