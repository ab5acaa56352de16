package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

func TestMonthlyDepreciation(t *testing.T) {
	tests := []struct {
		name        string
		acquisition string
		residual    string
		lifeYears   int
		accumulated string
		want        string
	}{
		{
			// Ultrasound scanner: 85M acquisition, 10% residual, 10 years
			name:        "standard_month",
			acquisition: "85000000",
			residual:    "8500000",
			lifeYears:   10,
			accumulated: "0",
			want:        "637500",
		},
		{
			name:        "fully_depreciated_yields_zero",
			acquisition: "10000000",
			residual:    "1000000",
			lifeYears:   5,
			accumulated: "9000000",
			want:        "0",
		},
		{
			name:        "mid_life",
			acquisition: "24000000",
			residual:    "2400000",
			lifeYears:   10,
			accumulated: "5400000",
			want:        "180000",
		},
		{
			// remaining base smaller than the monthly rate: clamp to remaining
			name:        "final_partial_month",
			acquisition: "24000000",
			residual:    "2400000",
			lifeYears:   10,
			accumulated: "21500000",
			want:        "100000",
		},
		{
			name:        "zero_residual",
			acquisition: "12000000",
			residual:    "0",
			lifeYears:   5,
			accumulated: "0",
			want:        "200000",
		},
		{
			name:        "over_depreciated_yields_zero",
			acquisition: "10000000",
			residual:    "1000000",
			lifeYears:   5,
			accumulated: "9500000",
			want:        "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyDepreciation(
				mustDecimal(tt.acquisition),
				mustDecimal(tt.residual),
				tt.lifeYears,
				mustDecimal(tt.accumulated),
			)
			if !got.Equal(mustDecimal(tt.want)) {
				t.Errorf("MonthlyDepreciation() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMonthlyDepreciation_Deterministic(t *testing.T) {
	acq := mustDecimal("85000000")
	res := mustDecimal("8500000")
	accum := mustDecimal("1275000")

	first := MonthlyDepreciation(acq, res, 10, accum)
	second := MonthlyDepreciation(acq, res, 10, accum)

	if !first.Equal(second) {
		t.Errorf("identical inputs produced %s and %s", first, second)
	}
}

func TestMonthlyDepreciation_NeverExceedsBase(t *testing.T) {
	acq := mustDecimal("10000000")
	res := mustDecimal("1000000")
	base := acq.Sub(res)
	lifeYears := 5

	accumulated := decimal.Zero
	for month := 0; month < lifeYears*12+6; month++ {
		amount := MonthlyDepreciation(acq, res, lifeYears, accumulated)
		if amount.IsNegative() {
			t.Fatalf("month %d: negative depreciation %s", month, amount)
		}
		accumulated = accumulated.Add(amount)
		if accumulated.GreaterThan(base) {
			t.Fatalf("month %d: accumulated %s exceeds base %s", month, accumulated, base)
		}
	}

	if !accumulated.Equal(base) {
		t.Errorf("accumulated = %s after full life, want %s", accumulated, base)
	}

	// Terminal state: further months stay at zero
	if got := MonthlyDepreciation(acq, res, lifeYears, accumulated); !got.IsZero() {
		t.Errorf("depreciation after full life = %s, want 0", got)
	}
}

func newTestAsset(code string, acq, res string, lifeYears int, accum string) *models.Asset {
	acquisition := mustDecimal(acq)
	accumulated := mustDecimal(accum)
	return &models.Asset{
		Code:                    code,
		Name:                    "Asset " + code,
		Type:                    string(domain.AssetTypeMedicalEquipment),
		AcquisitionValue:        acquisition,
		AcquisitionDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		UsefulLifeYears:         lifeYears,
		ResidualValue:           mustDecimal(res),
		AccumulatedDepreciation: accumulated,
		BookValue:               acquisition.Sub(accumulated),
		Status:                  models.StatusActive,
	}
}

func TestRunPeriod(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	scanner := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	desk := newTestAsset("MO-001", "2400000", "0", 10, "0")
	retired := newTestAsset("EQ-099", "5000000", "0", 5, "0")
	retired.Status = models.StatusDecommissioned

	for _, a := range []*models.Asset{scanner, desk, retired} {
		if err := assetRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	result, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if err != nil {
		t.Fatalf("RunPeriod() error: %v", err)
	}

	if result.Processed != 2 {
		t.Errorf("Processed = %d, want 2", result.Processed)
	}
	if result.Omitted != 0 {
		t.Errorf("Omitted = %d, want 0", result.Omitted)
	}
	wantTotal := mustDecimal("657500") // 637500 + 20000
	if !result.TotalDepreciation.Equal(wantTotal) {
		t.Errorf("TotalDepreciation = %s, want %s", result.TotalDepreciation, wantTotal)
	}
	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(result.Details) != 2 {
		t.Fatalf("Details = %d entries, want 2", len(result.Details))
	}

	// The asset's financials moved with the posting
	if !scanner.AccumulatedDepreciation.Equal(mustDecimal("637500")) {
		t.Errorf("scanner accumulated = %s, want 637500", scanner.AccumulatedDepreciation)
	}
	if !scanner.BookValue.Equal(mustDecimal("84362500")) {
		t.Errorf("scanner book value = %s, want 84362500", scanner.BookValue)
	}

	// Decommissioned asset got no record
	if len(depRepo.records) != 2 {
		t.Errorf("records = %d, want 2", len(depRepo.records))
	}
}

func TestRunPeriod_AlreadyRun(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	if err := assetRepo.Create(ctx, newTestAsset("EQ-001", "85000000", "8500000", 10, "0")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	if _, err := svc.RunPeriod(ctx, "2026-07", "tester"); err != nil {
		t.Fatalf("first RunPeriod() error: %v", err)
	}

	_, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if !errors.Is(err, domain.ErrPeriodAlreadyRun) {
		t.Fatalf("second RunPeriod() error = %v, want ErrPeriodAlreadyRun", err)
	}

	// No duplicate records, no double depreciation
	if len(depRepo.records) != 1 {
		t.Errorf("records = %d, want 1", len(depRepo.records))
	}
	asset, _ := assetRepo.GetByID(ctx, 1)
	if !asset.AccumulatedDepreciation.Equal(mustDecimal("637500")) {
		t.Errorf("accumulated = %s, want 637500", asset.AccumulatedDepreciation)
	}
}

func TestRunPeriod_InvalidPeriod(t *testing.T) {
	svc := NewDepreciationService(newFakeAssetRepo(), newFakeDepreciationRepo(newFakeAssetRepo()), 0)

	for _, period := range []string{"", "2026", "2026-7", "26-07", "2026/07", "julio-2026"} {
		if _, err := svc.RunPeriod(context.Background(), period, "tester"); !errors.Is(err, domain.ErrInvalidPeriodFormat) {
			t.Errorf("RunPeriod(%q) error = %v, want ErrInvalidPeriodFormat", period, err)
		}
	}
}

func TestRunPeriod_OmitsFullyDepreciated(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	done := newTestAsset("EQ-001", "10000000", "1000000", 5, "9000000")
	active := newTestAsset("EQ-002", "12000000", "0", 5, "0")
	for _, a := range []*models.Asset{done, active} {
		if err := assetRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	result, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if err != nil {
		t.Fatalf("RunPeriod() error: %v", err)
	}

	if result.Processed != 1 {
		t.Errorf("Processed = %d, want 1", result.Processed)
	}
	if result.Omitted != 1 {
		t.Errorf("Omitted = %d, want 1", result.Omitted)
	}
	// The fully depreciated asset is untouched
	if !done.AccumulatedDepreciation.Equal(mustDecimal("9000000")) {
		t.Errorf("fully depreciated asset accumulated = %s, want 9000000", done.AccumulatedDepreciation)
	}
}

func TestRunPeriod_BookValueFloorsAtResidual(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	// One final partial month left: remaining 100000 < monthly rate 180000
	asset := newTestAsset("EQ-001", "24000000", "2400000", 10, "21500000")
	if err := assetRepo.Create(ctx, asset); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	result, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if err != nil {
		t.Fatalf("RunPeriod() error: %v", err)
	}

	if !result.TotalDepreciation.Equal(mustDecimal("100000")) {
		t.Errorf("TotalDepreciation = %s, want 100000", result.TotalDepreciation)
	}
	if !asset.BookValue.Equal(asset.ResidualValue) {
		t.Errorf("book value = %s, want residual %s", asset.BookValue, asset.ResidualValue)
	}
	if !asset.IsFullyDepreciated() {
		t.Error("asset should be fully depreciated after the final month")
	}
}

func TestRunPeriod_CancelledContext(t *testing.T) {
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	if err := assetRepo.Create(context.Background(), newTestAsset("EQ-001", "85000000", "8500000", 10, "0")); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if !errors.Is(err, domain.ErrRunIncomplete) {
		t.Fatalf("RunPeriod() error = %v, want ErrRunIncomplete", err)
	}
	if len(depRepo.records) != 0 {
		t.Errorf("records = %d, want 0", len(depRepo.records))
	}
}

// failingDepRepo fails posting after a set number of successful posts
type failingDepRepo struct {
	*fakeDepreciationRepo
	failAfter int
	posted    int
}

func (r *failingDepRepo) PostAssetDepreciation(ctx context.Context, record *models.DepreciationRecord) error {
	if r.posted >= r.failAfter {
		return errors.New("connection lost")
	}
	r.posted++
	return r.fakeDepreciationRepo.PostAssetDepreciation(ctx, record)
}

func TestRunPeriod_StoreFailureKeepsCommittedAssets(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := &failingDepRepo{
		fakeDepreciationRepo: newFakeDepreciationRepo(assetRepo),
		failAfter:            1,
	}

	first := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	second := newTestAsset("EQ-002", "12000000", "0", 5, "0")
	for _, a := range []*models.Asset{first, second} {
		if err := assetRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	_, err := svc.RunPeriod(ctx, "2026-07", "tester")
	if err == nil {
		t.Fatal("RunPeriod() succeeded, want store failure")
	}

	// The first asset's posting survives; the failed one left no trace
	if len(depRepo.records) != 1 {
		t.Fatalf("records = %d, want 1", len(depRepo.records))
	}
	if !first.AccumulatedDepreciation.Equal(mustDecimal("637500")) {
		t.Errorf("first asset accumulated = %s, want 637500", first.AccumulatedDepreciation)
	}
	if !second.AccumulatedDepreciation.IsZero() {
		t.Errorf("second asset accumulated = %s, want 0", second.AccumulatedDepreciation)
	}
}

func TestGetPeriodSummary(t *testing.T) {
	ctx := context.Background()
	assetRepo := newFakeAssetRepo()
	depRepo := newFakeDepreciationRepo(assetRepo)

	equipment := newTestAsset("EQ-001", "85000000", "8500000", 10, "0")
	furniture := newTestAsset("MO-001", "2400000", "0", 10, "0")
	furniture.Type = string(domain.AssetTypeFurniture)
	for _, a := range []*models.Asset{equipment, furniture} {
		if err := assetRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	depRepo.records = []*models.DepreciationRecord{
		{ID: 1, AssetID: equipment.ID, Period: "2026-07", Amount: mustDecimal("637500"), Asset: equipment},
		{ID: 2, AssetID: furniture.ID, Period: "2026-07", Amount: mustDecimal("20000"), Asset: furniture},
		{ID: 3, AssetID: equipment.ID, Period: "2026-06", Amount: mustDecimal("637500"), Asset: equipment},
	}

	svc := NewDepreciationService(assetRepo, depRepo, 0)

	summary, err := svc.GetPeriodSummary(ctx, "2026-07")
	if err != nil {
		t.Fatalf("GetPeriodSummary() error: %v", err)
	}

	if summary.Count != 2 {
		t.Errorf("Count = %d, want 2", summary.Count)
	}
	if !summary.Total.Equal(mustDecimal("657500")) {
		t.Errorf("Total = %s, want 657500", summary.Total)
	}
	if len(summary.ByType) != 2 {
		t.Fatalf("ByType = %d groups, want 2", len(summary.ByType))
	}
	if summary.ByType[0].Type != string(domain.AssetTypeMedicalEquipment) {
		t.Errorf("first group = %s, want %s", summary.ByType[0].Type, domain.AssetTypeMedicalEquipment)
	}

	if _, err := svc.GetPeriodSummary(ctx, "bad"); !errors.Is(err, domain.ErrInvalidPeriodFormat) {
		t.Errorf("GetPeriodSummary(bad) error = %v, want ErrInvalidPeriodFormat", err)
	}
}
