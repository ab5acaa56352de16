package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// periodPattern validates the YYYY-MM period format
var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ValidPeriod reports whether period matches YYYY-MM
func ValidPeriod(period string) bool {
	return periodPattern.MatchString(period)
}

// MonthlyDepreciation computes one month of straight-line depreciation.
// Pure function: identical inputs always yield identical output.
//
// The result never takes the accumulated depreciation past the depreciable
// base (acquisition - residual), so the asset is never depreciated below its
// residual value, even on the final partial month. A fully depreciated asset
// yields zero, which is a terminal state, not an error.
func MonthlyDepreciation(acquisitionValue, residualValue decimal.Decimal, usefulLifeYears int, accumulated decimal.Decimal) decimal.Decimal {
	depreciableBase := acquisitionValue.Sub(residualValue)

	remaining := depreciableBase.Sub(accumulated)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(usefulLifeYears) * 12)
	monthlyRate := depreciableBase.Div(months)

	return decimal.Min(monthlyRate, remaining)
}

// DepreciationService orchestrates monthly depreciation runs
type DepreciationService struct {
	assetRepo  repositories.AssetRepository
	depRepo    repositories.DepreciationRepository
	runTimeout time.Duration
}

// NewDepreciationService creates a new depreciation service
func NewDepreciationService(assetRepo repositories.AssetRepository, depRepo repositories.DepreciationRepository, runTimeout time.Duration) *DepreciationService {
	return &DepreciationService{
		assetRepo:  assetRepo,
		depRepo:    depRepo,
		runTimeout: runTimeout,
	}
}

// RunPeriod executes the depreciation run for one period.
//
// Eligible assets are the Active ones. Each asset is posted in its own
// transaction (record insert + asset financial update); a failure mid-run
// keeps the already-committed assets and aborts the rest. The period-level
// guard makes the whole run execute at most once: any existing record for
// the period fails fast with ErrPeriodAlreadyRun.
func (s *DepreciationService) RunPeriod(ctx context.Context, period, actor string) (*domain.RunResult, error) {
	if !ValidPeriod(period) {
		return nil, domain.ErrInvalidPeriodFormat
	}

	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	result := &domain.RunResult{
		RunID:             uuid.NewString(),
		Period:            period,
		Actor:             actor,
		TotalDepreciation: decimal.Zero,
	}
	started := time.Now()

	err := s.depRepo.WithRunLock(ctx, func() error {
		existing, err := s.depRepo.FindAnyByPeriod(ctx, period)
		if err != nil {
			return fmt.Errorf("failed to check period %s: %w", period, err)
		}
		if existing != nil {
			return domain.ErrPeriodAlreadyRun
		}

		assets, err := s.assetRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to load active assets: %w", err)
		}

		for _, asset := range assets {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %d of %d assets processed", domain.ErrRunIncomplete, result.Processed, len(assets))
			}

			amount := MonthlyDepreciation(asset.AcquisitionValue, asset.ResidualValue, asset.UsefulLifeYears, asset.AccumulatedDepreciation)
			if amount.LessThanOrEqual(decimal.Zero) {
				result.Omitted++
				continue
			}

			newAccumulated := asset.AccumulatedDepreciation.Add(amount)
			newBookValue := decimal.Max(asset.AcquisitionValue.Sub(newAccumulated), asset.ResidualValue)

			record := &models.DepreciationRecord{
				AssetID:                 asset.ID,
				Period:                  period,
				Amount:                  amount,
				AccumulatedDepreciation: newAccumulated,
				BookValue:               newBookValue,
			}

			if err := s.depRepo.PostAssetDepreciation(ctx, record); err != nil {
				return fmt.Errorf("failed to post depreciation for asset %s: %w", asset.Code, err)
			}

			result.Processed++
			result.TotalDepreciation = result.TotalDepreciation.Add(amount)
			result.Details = append(result.Details, domain.RunDetail{
				AssetID:      asset.ID,
				Code:         asset.Code,
				Name:         asset.Name,
				Depreciation: amount,
				NewBookValue: newBookValue,
			})
		}

		return nil
	})

	result.Duration = time.Since(started)

	if err != nil {
		return nil, err
	}

	log.Printf("💰 Depreciation run %s completed: period=%s processed=%d omitted=%d total=%s duration=%s",
		result.RunID, period, result.Processed, result.Omitted,
		result.TotalDepreciation.String(), result.Duration)

	return result, nil
}

// PeriodTypeTotal aggregates records of one asset type within a period
type PeriodTypeTotal struct {
	Type  string          `json:"type"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// PeriodSummary is the depreciation history of one period
type PeriodSummary struct {
	Period  string                       `json:"period"`
	Count   int                          `json:"count"`
	Total   decimal.Decimal              `json:"total"`
	ByType  []PeriodTypeTotal            `json:"by_type"`
	Records []*models.DepreciationRecord `json:"records"`
}

// GetPeriodSummary returns the records of a period with per-type totals
func (s *DepreciationService) GetPeriodSummary(ctx context.Context, period string) (*PeriodSummary, error) {
	if !ValidPeriod(period) {
		return nil, domain.ErrInvalidPeriodFormat
	}

	records, err := s.depRepo.ListByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{
		Period:  period,
		Count:   len(records),
		Total:   decimal.Zero,
		Records: records,
	}

	totals := make(map[string]*PeriodTypeTotal)
	var order []string
	for _, rec := range records {
		summary.Total = summary.Total.Add(rec.Amount)

		assetType := ""
		if rec.Asset != nil {
			assetType = rec.Asset.Type
		}
		tt, ok := totals[assetType]
		if !ok {
			tt = &PeriodTypeTotal{Type: assetType, Total: decimal.Zero}
			totals[assetType] = tt
			order = append(order, assetType)
		}
		tt.Count++
		tt.Total = tt.Total.Add(rec.Amount)
	}

	for _, assetType := range order {
		summary.ByType = append(summary.ByType, *totals[assetType])
	}

	return summary, nil
}
