package models

import (
	"time"

	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ============================================================
// Fixed Assets
// ============================================================

// Asset represents the fixed_assets table.
// Assets are never physically deleted; decommissioning flips the status
// and appends an audit note to the description.
type Asset struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Code             string          `gorm:"uniqueIndex;size:30;not null" json:"code"`
	Name             string          `gorm:"size:150;not null" json:"name"`
	Description      string          `gorm:"type:text" json:"description"`
	Type             string          `gorm:"size:30;index;not null" json:"type"`
	Group            string          `gorm:"size:50" json:"group"`
	Department       string          `gorm:"size:100" json:"department"`
	PhysicalLocation string          `gorm:"size:150" json:"physical_location"`
	SupplierRef      string          `gorm:"size:50" json:"supplier_ref"`
	InvoiceNumber    string          `gorm:"size:50" json:"invoice_number"`

	AcquisitionValue        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"acquisition_value"`
	AcquisitionDate         time.Time       `gorm:"not null" json:"acquisition_date"`
	UsefulLifeYears         int             `gorm:"not null" json:"useful_life_years"`
	ResidualValue           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"residual_value"`
	DepreciationMethod      string          `gorm:"size:30;default:'STRAIGHT_LINE'" json:"depreciation_method"`
	AccumulatedDepreciation decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"book_value"`

	Status            string     `gorm:"size:30;index;default:'Active'" json:"status"`
	NextMaintenanceAt *time.Time `gorm:"index" json:"next_maintenance_at"`
	LastMaintenanceAt *time.Time `json:"last_maintenance_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Depreciations []DepreciationRecord `gorm:"foreignKey:AssetID" json:"depreciations,omitempty"`
	Maintenances  []MaintenanceRecord  `gorm:"foreignKey:AssetID" json:"maintenances,omitempty"`
}

func (Asset) TableName() string {
	return "fixed_assets"
}

// DepreciableBase returns acquisition value minus residual value
func (a *Asset) DepreciableBase() decimal.Decimal {
	return a.AcquisitionValue.Sub(a.ResidualValue)
}

// IsFullyDepreciated reports whether the asset reached its depreciable base
func (a *Asset) IsFullyDepreciated() bool {
	return a.AccumulatedDepreciation.GreaterThanOrEqual(a.DepreciableBase())
}

// DepreciationRecord represents one immutable monthly depreciation posting.
// At most one record may exist per (asset, period); the unique index enforces
// it even against concurrent runs. PostingRef stays NULL until the record is
// exported to the external ledger.
type DepreciationRecord struct {
	ID                      uint            `gorm:"primaryKey" json:"id"`
	AssetID                 uint            `gorm:"not null;uniqueIndex:idx_asset_period" json:"asset_id"`
	Period                  string          `gorm:"size:7;not null;index;uniqueIndex:idx_asset_period" json:"period"`
	Amount                  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	AccumulatedDepreciation decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"book_value"`
	PostingRef              *string         `gorm:"size:50;index" json:"posting_ref"`
	CreatedAt               time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (DepreciationRecord) TableName() string {
	return "asset_depreciations"
}

// IsPosted reports whether the record was exported to the ledger
func (r *DepreciationRecord) IsPosted() bool {
	return r.PostingRef != nil
}

// MaintenanceRecord represents one maintenance event against an asset
type MaintenanceRecord struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	AssetID      uint            `gorm:"index;not null" json:"asset_id"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Kind         string          `gorm:"size:20;not null" json:"kind"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Cost         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost"`
	Performer    string          `gorm:"size:100" json:"performer"`
	RegisteredBy uint            `gorm:"not null" json:"registered_by"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

func (MaintenanceRecord) TableName() string {
	return "asset_maintenances"
}

// ============================================================
// Response DTOs
// ============================================================

// AssetResponse DTO
type AssetResponse struct {
	ID                      uint            `json:"id"`
	Code                    string          `json:"code"`
	Name                    string          `json:"name"`
	Type                    string          `json:"type"`
	Group                   string          `json:"group"`
	Status                  string          `json:"status"`
	AcquisitionValue        decimal.Decimal `json:"acquisition_value"`
	AcquisitionDate         time.Time       `json:"acquisition_date"`
	UsefulLifeYears         int             `json:"useful_life_years"`
	ResidualValue           decimal.Decimal `json:"residual_value"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	BookValue               decimal.Decimal `json:"book_value"`
	NextMaintenanceAt       *time.Time      `json:"next_maintenance_at"`
	LastMaintenanceAt       *time.Time      `json:"last_maintenance_at"`
	CreatedAt               time.Time       `json:"created_at"`
}

func (a *Asset) ToResponse() *AssetResponse {
	return &AssetResponse{
		ID:                      a.ID,
		Code:                    a.Code,
		Name:                    a.Name,
		Type:                    a.Type,
		Group:                   a.Group,
		Status:                  a.Status,
		AcquisitionValue:        a.AcquisitionValue,
		AcquisitionDate:         a.AcquisitionDate,
		UsefulLifeYears:         a.UsefulLifeYears,
		ResidualValue:           a.ResidualValue,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		BookValue:               a.BookValue,
		NextMaintenanceAt:       a.NextMaintenanceAt,
		LastMaintenanceAt:       a.LastMaintenanceAt,
		CreatedAt:               a.CreatedAt,
	}
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// Status helpers
const (
	StatusActive           = string(domain.AssetStatusActive)
	StatusUnderMaintenance = string(domain.AssetStatusUnderMaintenance)
	StatusDecommissioned   = string(domain.AssetStatusDecommissioned)
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Asset{},
		&DepreciationRecord{},
		&MaintenanceRecord{},
	)
}
