package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinicamia-assets/internal/adapters/persistence/models"
	"clinicamia-assets/internal/adapters/persistence/repositories"
	"clinicamia-assets/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AssetService handles fixed asset business logic
type AssetService struct {
	assetRepo repositories.AssetRepository
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repositories.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// RegisterAssetInput represents asset registration input
type RegisterAssetInput struct {
	Code             string          `json:"code" validate:"required"`
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description,omitempty"`
	Type             string          `json:"type" validate:"required"`
	Group            string          `json:"group,omitempty"`
	Department       string          `json:"department,omitempty"`
	PhysicalLocation string          `json:"physical_location,omitempty"`
	SupplierRef      string          `json:"supplier_ref,omitempty"`
	InvoiceNumber    string          `json:"invoice_number,omitempty"`
	AcquisitionValue decimal.Decimal `json:"acquisition_value" validate:"required"`
	AcquisitionDate  time.Time       `json:"acquisition_date" validate:"required"`
	UsefulLifeYears  int             `json:"useful_life_years" validate:"required,gt=0"`
	ResidualValue    decimal.Decimal `json:"residual_value,omitempty"`
	NextMaintenance  *time.Time      `json:"next_maintenance,omitempty"`
}

// Register registers a new fixed asset. The initial book value equals the
// acquisition value and accumulated depreciation starts at zero.
func (s *AssetService) Register(ctx context.Context, input *RegisterAssetInput) (*models.Asset, error) {
	if !domain.ValidAssetType(domain.AssetType(input.Type)) {
		return nil, domain.ErrInvalidAssetType
	}

	// Financial invariants: acquisition > 0, 0 <= residual < acquisition, life > 0
	if input.AcquisitionValue.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAssetValues
	}
	if input.ResidualValue.IsNegative() || input.ResidualValue.GreaterThanOrEqual(input.AcquisitionValue) {
		return nil, domain.ErrInvalidAssetValues
	}
	if input.UsefulLifeYears <= 0 {
		return nil, domain.ErrInvalidAssetValues
	}

	exists, err := s.assetRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAssetCode
	}

	asset := &models.Asset{
		Code:                    input.Code,
		Name:                    input.Name,
		Description:             input.Description,
		Type:                    input.Type,
		Group:                   input.Group,
		Department:              input.Department,
		PhysicalLocation:        input.PhysicalLocation,
		SupplierRef:             input.SupplierRef,
		InvoiceNumber:           input.InvoiceNumber,
		AcquisitionValue:        input.AcquisitionValue,
		AcquisitionDate:         input.AcquisitionDate,
		UsefulLifeYears:         input.UsefulLifeYears,
		ResidualValue:           input.ResidualValue,
		DepreciationMethod:      "STRAIGHT_LINE",
		AccumulatedDepreciation: decimal.Zero,
		BookValue:               input.AcquisitionValue,
		Status:                  models.StatusActive,
		NextMaintenanceAt:       input.NextMaintenance,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	log.Printf("✅ Asset registered: %s (%s)", asset.Code, asset.Name)
	return asset, nil
}

// GetByID gets an asset with its recent depreciation and maintenance history
func (s *AssetService) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// UpdateAssetInput represents asset update input.
// Financial attributes are owned by the depreciation engine and cannot be
// changed here.
type UpdateAssetInput struct {
	Name             *string    `json:"name,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Group            *string    `json:"group,omitempty"`
	Department       *string    `json:"department,omitempty"`
	PhysicalLocation *string    `json:"physical_location,omitempty"`
	NextMaintenance  *time.Time `json:"next_maintenance,omitempty"`
}

// Update updates an asset's descriptive fields
func (s *AssetService) Update(ctx context.Context, id uint, input *UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.Group != nil {
		asset.Group = *input.Group
	}
	if input.Department != nil {
		asset.Department = *input.Department
	}
	if input.PhysicalLocation != nil {
		asset.PhysicalLocation = *input.PhysicalLocation
	}
	if input.NextMaintenance != nil {
		asset.NextMaintenanceAt = input.NextMaintenance
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Decommission takes an asset out of service. The asset row is kept forever;
// the reason is appended to the description as an audit note.
func (s *AssetService) Decommission(ctx context.Context, id uint, reason string) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	if asset.Status == models.StatusDecommissioned {
		return nil, domain.ErrAssetDecommissioned
	}

	note := fmt.Sprintf("[DECOMMISSIONED] %s: %s", time.Now().Format(time.RFC3339), reason)
	if asset.Description != "" {
		asset.Description = asset.Description + "\n\n" + note
	} else {
		asset.Description = note
	}
	asset.Status = models.StatusDecommissioned

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	log.Printf("🗑️ Asset decommissioned: %s (%s)", asset.Code, reason)
	return asset, nil
}

// ListInput represents asset listing input
type ListInput struct {
	Type   string
	Status string
	Search string
	Offset int
	Limit  int
}

// List lists assets with filters
func (s *AssetService) List(ctx context.Context, input *ListInput) ([]*models.Asset, int64, error) {
	filter := &repositories.AssetFilter{
		Type:   input.Type,
		Status: input.Status,
		Search: input.Search,
		Offset: input.Offset,
		Limit:  input.Limit,
	}
	return s.assetRepo.List(ctx, filter)
}

// AssetTypes returns the static asset type catalog with suggested useful lives
func (s *AssetService) AssetTypes() []domain.AssetTypeInfo {
	return []domain.AssetTypeInfo{
		{Code: domain.AssetTypeMedicalEquipment, Name: "Medical-Scientific Equipment", SuggestedLifeYears: 10},
		{Code: domain.AssetTypeFurniture, Name: "Furniture and Fixtures", SuggestedLifeYears: 10},
		{Code: domain.AssetTypeVehicle, Name: "Vehicles", SuggestedLifeYears: 5},
		{Code: domain.AssetTypeRealEstate, Name: "Buildings", SuggestedLifeYears: 20},
		{Code: domain.AssetTypeTechnology, Name: "Computer Equipment", SuggestedLifeYears: 5},
	}
}
