package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeAssetRepo is an in-memory AssetRepository for service tests
type fakeAssetRepo struct {
	assets map[uint]*models.Asset
	nextID uint
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[uint]*models.Asset)}
}

func (r *fakeAssetRepo) Create(ctx context.Context, asset *models.Asset) error {
	for _, a := range r.assets {
		if a.Code == asset.Code {
			return fmt.Errorf("duplicate code %s", asset.Code)
		}
	}
	r.nextID++
	asset.ID = r.nextID
	r.assets[asset.ID] = asset
	return nil
}

func (r *fakeAssetRepo) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return asset, nil
}

func (r *fakeAssetRepo) GetByCode(ctx context.Context, code string) (*models.Asset, error) {
	for _, a := range r.assets {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssetRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	for _, a := range r.assets {
		if a.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssetRepo) Update(ctx context.Context, asset *models.Asset) error {
	if _, ok := r.assets[asset.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.assets[asset.ID] = asset
	return nil
}

func (r *fakeAssetRepo) UpdateFinancials(ctx context.Context, id uint, accumulated, bookValue decimal.Decimal) error {
	asset, ok := r.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	asset.AccumulatedDepreciation = accumulated
	asset.BookValue = bookValue
	return nil
}

func (r *fakeAssetRepo) ListActive(ctx context.Context) ([]*models.Asset, error) {
	var out []*models.Asset
	for id := uint(1); id <= r.nextID; id++ {
		if a, ok := r.assets[id]; ok && a.Status == models.StatusActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) List(ctx context.Context, filter *repositories.AssetFilter) ([]*models.Asset, int64, error) {
	var out []*models.Asset
	for id := uint(1); id <= r.nextID; id++ {
		a, ok := r.assets[id]
		if !ok {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(a.Name, filter.Search) && !strings.Contains(a.Code, filter.Search) {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAssetRepo) ListMaintenanceDueBefore(ctx context.Context, deadline time.Time) ([]*models.Asset, error) {
	var out []*models.Asset
	for id := uint(1); id <= r.nextID; id++ {
		a, ok := r.assets[id]
		if !ok || a.Status != models.StatusActive || a.NextMaintenanceAt == nil {
			continue
		}
		if !a.NextMaintenanceAt.After(deadline) {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeDepreciationRepo is an in-memory DepreciationRepository. Posting a
// record also updates the owning asset, mirroring the transactional gorm
// implementation.
type fakeDepreciationRepo struct {
	assets  *fakeAssetRepo
	records []*models.DepreciationRecord
	nextID  uint
}

func newFakeDepreciationRepo(assets *fakeAssetRepo) *fakeDepreciationRepo {
	return &fakeDepreciationRepo{assets: assets}
}

func (r *fakeDepreciationRepo) FindAnyByPeriod(ctx context.Context, period string) (*models.DepreciationRecord, error) {
	for _, rec := range r.records {
		if rec.Period == period {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeDepreciationRepo) PostAssetDepreciation(ctx context.Context, record *models.DepreciationRecord) error {
	for _, rec := range r.records {
		if rec.AssetID == record.AssetID && rec.Period == record.Period {
			return fmt.Errorf("duplicate depreciation for asset %d period %s", record.AssetID, record.Period)
		}
	}
	r.nextID++
	record.ID = r.nextID
	r.records = append(r.records, record)
	return r.assets.UpdateFinancials(ctx, record.AssetID, record.AccumulatedDepreciation, record.BookValue)
}

func (r *fakeDepreciationRepo) ListByPeriod(ctx context.Context, period string) ([]*models.DepreciationRecord, error) {
	var out []*models.DepreciationRecord
	for _, rec := range r.records {
		if rec.Period == period {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeDepreciationRepo) FindUnposted(ctx context.Context, period string) ([]*models.DepreciationRecord, error) {
	var out []*models.DepreciationRecord
	for _, rec := range r.records {
		if rec.Period == period && rec.PostingRef == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeDepreciationRepo) MarkPosted(ctx context.Context, ids []uint, postingRef string) error {
	wanted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, rec := range r.records {
		if wanted[rec.ID] && rec.PostingRef == nil {
			ref := postingRef
			rec.PostingRef = &ref
		}
	}
	return nil
}

func (r *fakeDepreciationRepo) WithRunLock(ctx context.Context, fn func() error) error {
	return fn()
}

// fakeMaintenanceRepo is an in-memory MaintenanceRepository
type fakeMaintenanceRepo struct {
	records []*models.MaintenanceRecord
	nextID  uint
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{}
}

func (r *fakeMaintenanceRepo) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	r.nextID++
	record.ID = r.nextID
	r.records = append(r.records, record)
	return nil
}

func (r *fakeMaintenanceRepo) ListByAsset(ctx context.Context, assetID uint) ([]*models.MaintenanceRecord, error) {
	var out []*models.MaintenanceRecord
	for _, rec := range r.records {
		if rec.AssetID == assetID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// mustDecimal parses a decimal literal or panics; test helper
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
