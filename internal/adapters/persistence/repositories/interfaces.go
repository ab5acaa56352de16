package repositories

import (
	"context"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

// AssetFilter holds optional filters for asset listing
type AssetFilter struct {
	Type   string
	Status string
	Search string
	Offset int
	Limit  int
}

// AssetRepository defines asset store access.
// Assets are never deleted; decommissioning goes through Update.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id uint) (*models.Asset, error)
	GetByCode(ctx context.Context, code string) (*models.Asset, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, asset *models.Asset) error
	UpdateFinancials(ctx context.Context, id uint, accumulated, bookValue decimal.Decimal) error
	ListActive(ctx context.Context) ([]*models.Asset, error)
	List(ctx context.Context, filter *AssetFilter) ([]*models.Asset, int64, error)
	ListMaintenanceDueBefore(ctx context.Context, deadline time.Time) ([]*models.Asset, error)
}

// DepreciationRepository defines depreciation record store access
type DepreciationRepository interface {
	// FindAnyByPeriod returns any single record for the period, or nil if none exists
	FindAnyByPeriod(ctx context.Context, period string) (*models.DepreciationRecord, error)
	// PostAssetDepreciation atomically inserts the record and updates the
	// owning asset's accumulated depreciation and book value to match
	PostAssetDepreciation(ctx context.Context, record *models.DepreciationRecord) error
	ListByPeriod(ctx context.Context, period string) ([]*models.DepreciationRecord, error)
	FindUnposted(ctx context.Context, period string) ([]*models.DepreciationRecord, error)
	MarkPosted(ctx context.Context, ids []uint, postingRef string) error
	// WithRunLock runs fn while holding the cross-instance depreciation-run lock
	WithRunLock(ctx context.Context, fn func() error) error
}

// MaintenanceRepository defines maintenance record store access
type MaintenanceRepository interface {
	Create(ctx context.Context, record *models.MaintenanceRecord) error
	ListByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
