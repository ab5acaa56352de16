package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AssetType classifies a fixed asset for depreciation and GL mapping
type AssetType string

const (
	AssetTypeMedicalEquipment AssetType = "EquipmentMedical"
	AssetTypeFurniture        AssetType = "Furniture"
	AssetTypeVehicle          AssetType = "Vehicle"
	AssetTypeRealEstate       AssetType = "RealEstate"
	AssetTypeTechnology       AssetType = "Technology"
)

// ValidAssetType reports whether t is one of the known asset types
func ValidAssetType(t AssetType) bool {
	switch t {
	case AssetTypeMedicalEquipment, AssetTypeFurniture, AssetTypeVehicle,
		AssetTypeRealEstate, AssetTypeTechnology:
		return true
	}
	return false
}

// AssetStatus is the lifecycle status of a fixed asset
type AssetStatus string

const (
	AssetStatusActive           AssetStatus = "Active"
	AssetStatusUnderMaintenance AssetStatus = "UnderMaintenance"
	AssetStatusDecommissioned   AssetStatus = "Decommissioned"
)

// MaintenanceKind is the kind of maintenance performed on an asset
type MaintenanceKind string

const (
	MaintenancePreventive  MaintenanceKind = "Preventive"
	MaintenanceCorrective  MaintenanceKind = "Corrective"
	MaintenanceCalibration MaintenanceKind = "Calibration"
)

// ValidMaintenanceKind reports whether k is a known maintenance kind
func ValidMaintenanceKind(k MaintenanceKind) bool {
	switch k {
	case MaintenancePreventive, MaintenanceCorrective, MaintenanceCalibration:
		return true
	}
	return false
}

// AssetTypeInfo describes an asset type in the static catalog
type AssetTypeInfo struct {
	Code               AssetType `json:"code"`
	Name               string    `json:"name"`
	SuggestedLifeYears int       `json:"suggested_life_years"`
}

// RunDetail is the per-asset outcome of a depreciation run
type RunDetail struct {
	AssetID      uint            `json:"asset_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Depreciation decimal.Decimal `json:"depreciation"`
	NewBookValue decimal.Decimal `json:"new_book_value"`
}

// RunResult summarizes one depreciation period run
type RunResult struct {
	RunID             string          `json:"run_id"`
	Period            string          `json:"period"`
	Actor             string          `json:"actor"`
	Processed         int             `json:"processed"`
	Omitted           int             `json:"omitted"`
	TotalDepreciation decimal.Decimal `json:"total_depreciation"`
	Details           []RunDetail     `json:"details"`
	Duration          time.Duration   `json:"duration_ns"`
}

// AccountPair is the GL account mapping for one asset type (PUC codes)
type AccountPair struct {
	ExpenseAccount     string `json:"expense_account"`
	AccumulatedAccount string `json:"accumulated_account"`
}

// ExportGroup aggregates unposted depreciation of one asset type for the ledger
type ExportGroup struct {
	Type               AssetType       `json:"type"`
	ExpenseAccount     string          `json:"expense_account"`
	AccumulatedAccount string          `json:"accumulated_account"`
	Count              int             `json:"count"`
	Total              decimal.Decimal `json:"total"`
}

// ExportSummary is the ledger hand-off contract for one period
type ExportSummary struct {
	Period  string          `json:"period"`
	Pending int             `json:"pending"`
	Total   decimal.Decimal `json:"total"`
	Groups  []ExportGroup   `json:"groups"`
}

// SchedulerStatus reports the scheduler state
type SchedulerStatus struct {
	Running          bool      `json:"running"`
	NextScheduledRun time.Time `json:"next_scheduled_run"`
}
