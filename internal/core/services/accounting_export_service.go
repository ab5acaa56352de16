package services

import (
	"context"
	"log"

	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/config"
	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AccountingExportService groups unposted depreciation records into
// ledger-ready aggregates and marks them posted once the external ledger
// confirms. The GL account mapping comes from configuration, with a fixed
// fallback pair for unknown asset types.
type AccountingExportService struct {
	depRepo  repositories.DepreciationRepository
	accounts config.AccountsConfig
}

// NewAccountingExportService creates a new accounting export service
func NewAccountingExportService(depRepo repositories.DepreciationRepository, accounts config.AccountsConfig) *AccountingExportService {
	return &AccountingExportService{
		depRepo:  depRepo,
		accounts: accounts,
	}
}

// SummarizeUnposted groups the period's unposted records by asset type and
// resolves the GL expense / accumulated-depreciation account pair per group
func (s *AccountingExportService) SummarizeUnposted(ctx context.Context, period string) (*domain.ExportSummary, error) {
	if !ValidPeriod(period) {
		return nil, domain.ErrInvalidPeriodFormat
	}

	records, err := s.depRepo.FindUnposted(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExportSummary{
		Period:  period,
		Pending: len(records),
		Total:   decimal.Zero,
	}

	groups := make(map[domain.AssetType]*domain.ExportGroup)
	var order []domain.AssetType
	for _, rec := range records {
		assetType := domain.AssetType("")
		if rec.Asset != nil {
			assetType = domain.AssetType(rec.Asset.Type)
		}

		group, ok := groups[assetType]
		if !ok {
			pair := s.accounts.Resolve(assetType)
			group = &domain.ExportGroup{
				Type:               assetType,
				ExpenseAccount:     pair.ExpenseAccount,
				AccumulatedAccount: pair.AccumulatedAccount,
				Total:              decimal.Zero,
			}
			groups[assetType] = group
			order = append(order, assetType)
		}

		group.Count++
		group.Total = group.Total.Add(rec.Amount)
		summary.Total = summary.Total.Add(rec.Amount)
	}

	for _, assetType := range order {
		summary.Groups = append(summary.Groups, *groups[assetType])
	}

	return summary, nil
}

// MarkPosted attaches the ledger's posting reference to every still-unposted
// record of the period. Re-invoking with the same reference is a no-op.
func (s *AccountingExportService) MarkPosted(ctx context.Context, period, postingRef string) (int, error) {
	if !ValidPeriod(period) {
		return 0, domain.ErrInvalidPeriodFormat
	}
	if postingRef == "" {
		return 0, domain.ErrInvalidInput
	}

	records, err := s.depRepo.FindUnposted(ctx, period)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	if err := s.depRepo.MarkPosted(ctx, ids, postingRef); err != nil {
		return 0, err
	}

	log.Printf("📒 Depreciation posted to ledger: period=%s records=%d ref=%s", period, len(ids), postingRef)
	return len(ids), nil
}
