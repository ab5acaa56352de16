package services

import (
	"context"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService handles asset dashboard aggregations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// TypeBreakdown aggregates assets of one type
type TypeBreakdown struct {
	Type                    string          `json:"type"`
	Count                   int64           `json:"count"`
	AcquisitionValue        decimal.Decimal `json:"acquisition_value"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `json:"book_value"`
}

// DashboardData represents the asset dashboard
type DashboardData struct {
	TotalAssets             int64                  `json:"total_assets"`
	TotalAcquisitionValue   decimal.Decimal        `json:"total_acquisition_value"`
	TotalAccumulated        decimal.Decimal        `json:"total_accumulated_depreciation"`
	TotalBookValue          decimal.Decimal        `json:"total_book_value"`
	AssetsByStatus          map[string]int64       `json:"assets_by_status"`
	AssetsByType            []TypeBreakdown        `json:"assets_by_type"`
	UpcomingMaintenances    []*models.AssetResponse `json:"upcoming_maintenances"`
	OverdueMaintenanceCount int                    `json:"overdue_maintenance_count"`
}

// GetDashboard returns the asset dashboard aggregates
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{
		AssetsByStatus:        make(map[string]int64),
		TotalAcquisitionValue: decimal.Zero,
		TotalAccumulated:      decimal.Zero,
		TotalBookValue:        decimal.Zero,
	}

	if err := s.db.WithContext(ctx).Model(&models.Asset{}).Count(&data.TotalAssets).Error; err != nil {
		return nil, err
	}

	// Counts by status
	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		data.AssetsByStatus[row.Status] = row.Count
	}

	// Sums by type
	var typeRows []struct {
		Type                    string
		Count                   int64
		AcquisitionValue        decimal.Decimal
		AccumulatedDepreciation decimal.Decimal
		BookValue               decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Model(&models.Asset{}).
		Select("type, COUNT(*) as count, SUM(acquisition_value) as acquisition_value, SUM(accumulated_depreciation) as accumulated_depreciation, SUM(book_value) as book_value").
		Group("type").
		Scan(&typeRows).Error; err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		data.AssetsByType = append(data.AssetsByType, TypeBreakdown{
			Type:                    row.Type,
			Count:                   row.Count,
			AcquisitionValue:        row.AcquisitionValue,
			AccumulatedDepreciation: row.AccumulatedDepreciation,
			BookValue:               row.BookValue,
		})
		data.TotalAcquisitionValue = data.TotalAcquisitionValue.Add(row.AcquisitionValue)
		data.TotalAccumulated = data.TotalAccumulated.Add(row.AccumulatedDepreciation)
		data.TotalBookValue = data.TotalBookValue.Add(row.BookValue)
	}

	// Upcoming maintenances within 30 days
	now := time.Now()
	deadline := now.AddDate(0, 0, 30)
	var upcoming []*models.Asset
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusActive).
		Where("next_maintenance_at IS NOT NULL AND next_maintenance_at <= ?", deadline).
		Order("next_maintenance_at ASC").
		Limit(10).
		Find(&upcoming).Error; err != nil {
		return nil, err
	}
	for _, asset := range upcoming {
		data.UpcomingMaintenances = append(data.UpcomingMaintenances, asset.ToResponse())
		if asset.NextMaintenanceAt != nil && asset.NextMaintenanceAt.Before(now) {
			data.OverdueMaintenanceCount++
		}
	}

	return data, nil
}
