package handlers

import (
	"errors"
	"strconv"

	"clinicamia-assets/internal/core/domain"
	"clinicamia-assets/internal/core/services"
	"clinicamia-assets/internal/pkg/pagination"
	"clinicamia-assets/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles fixed asset endpoints
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Register registers a new fixed asset
// @Summary Register asset
// @Description Register a new fixed asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterAssetInput true "Asset data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assets [post]
func (h *AssetHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Code == "" {
		return response.BadRequest(c, "Asset code is required")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Asset name is required")
	}

	asset, err := h.assetService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAssetType):
			return response.BadRequest(c, "Invalid asset type")
		case errors.Is(err, domain.ErrInvalidAssetValues):
			return response.BadRequest(c, "Invalid financial values: acquisition must be > 0, residual in [0, acquisition), useful life > 0")
		case errors.Is(err, domain.ErrDuplicateAssetCode):
			return response.Conflict(c, "Asset code already exists")
		default:
			return response.InternalServerError(c, "Failed to register asset")
		}
	}

	return response.Created(c, "Asset registered successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// Get gets an asset by ID with recent history
// @Summary Get asset
// @Description Get an asset with its recent depreciations and maintenances
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	asset, err := h.assetService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to get asset")
	}

	return response.Success(c, "Asset retrieved successfully", fiber.Map{
		"asset": asset,
	})
}

// List lists assets with filters
// @Summary List assets
// @Description List assets with optional type/status/search filters
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param type query string false "Filter by asset type"
// @Param status query string false "Filter by status"
// @Param search query string false "Search in code, name, description"
// @Success 200 {object} response.Response
// @Router /assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	input := &services.ListInput{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	assets, total, err := h.assetService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}

	items := make([]interface{}, 0, len(assets))
	for _, asset := range assets {
		items = append(items, asset.ToResponse())
	}

	return response.Success(c, "Assets retrieved successfully", pagination.NewResponse(items, params, total))
}

// Update updates an asset's descriptive fields
// @Summary Update asset
// @Description Update descriptive fields of an asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.UpdateAssetInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.UpdateAssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to update asset")
	}

	return response.Success(c, "Asset updated successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// DecommissionRequest represents decommission request
type DecommissionRequest struct {
	Reason string `json:"reason"`
}

// Decommission takes an asset out of service (Admin only)
// @Summary Decommission asset
// @Description Decommission an asset with an audit reason; the asset row is never deleted
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body DecommissionRequest true "Decommission reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assets/{id} [delete]
func (h *AssetHandler) Decommission(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var req DecommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Reason == "" {
		return response.BadRequest(c, "Decommission reason is required")
	}

	asset, err := h.assetService.Decommission(c.Context(), uint(id), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrAssetDecommissioned):
			return response.Conflict(c, "Asset is already decommissioned")
		default:
			return response.InternalServerError(c, "Failed to decommission asset")
		}
	}

	return response.Success(c, "Asset decommissioned successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// Types returns the asset type catalog
// @Summary Asset types
// @Description List valid asset types with suggested useful lives
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /assets/types [get]
func (h *AssetHandler) Types(c *fiber.Ctx) error {
	return response.Success(c, "Asset types retrieved successfully", fiber.Map{
		"types": h.assetService.AssetTypes(),
	})
}
