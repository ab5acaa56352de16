package handlers

import (
	"errors"
	"strconv"

	"clinicamia-assets/internal/core/domain"
	"clinicamia-assets/internal/core/services"
	"clinicamia-assets/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MaintenanceHandler handles asset maintenance endpoints
type MaintenanceHandler struct {
	maintService *services.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintService: maintService}
}

// Register records a maintenance event against an asset
// @Summary Register maintenance
// @Description Record a maintenance event; updates the asset's maintenance dates and status
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.RegisterMaintenanceInput true "Maintenance data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id}/maintenances [post]
func (h *MaintenanceHandler) Register(c *fiber.Ctx) error {
	assetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.RegisterMaintenanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Description == "" {
		return response.BadRequest(c, "Description is required")
	}

	userID, _ := c.Locals("userID").(uint)

	record, err := h.maintService.Register(c.Context(), uint(assetID), &input, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, domain.ErrInvalidMaintenanceKind):
			return response.BadRequest(c, "Invalid maintenance kind (Preventive, Corrective, Calibration)")
		default:
			return response.InternalServerError(c, "Failed to register maintenance")
		}
	}

	return response.Created(c, "Maintenance registered successfully", fiber.Map{
		"maintenance": record,
	})
}

// ListByAsset lists maintenance history of an asset
// @Summary List asset maintenances
// @Description Maintenance history of an asset, most recent first
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id}/maintenances [get]
func (h *MaintenanceHandler) ListByAsset(c *fiber.Ctx) error {
	assetID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	records, err := h.maintService.ListByAsset(c.Context(), uint(assetID))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to list maintenances")
	}

	return response.Success(c, "Maintenances retrieved successfully", fiber.Map{
		"maintenances": records,
	})
}

// DueSoon lists assets with maintenance due within a window
// @Summary Maintenance due soon
// @Description Active assets whose next maintenance falls within the window
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param window_days query int false "Window in days" default(30)
// @Success 200 {object} response.Response
// @Router /maintenances/due-soon [get]
func (h *MaintenanceHandler) DueSoon(c *fiber.Ctx) error {
	windowDays, _ := strconv.Atoi(c.Query("window_days", "30"))
	if windowDays < 1 {
		windowDays = 30
	}

	assets, err := h.maintService.ListDueSoon(c.Context(), windowDays)
	if err != nil {
		return response.InternalServerError(c, "Failed to list due maintenances")
	}

	items := make([]interface{}, 0, len(assets))
	for _, asset := range assets {
		items = append(items, asset.ToResponse())
	}

	return response.Success(c, "Due maintenances retrieved successfully", fiber.Map{
		"assets": items,
	})
}

// Overdue lists assets with maintenance strictly past due
// @Summary Overdue maintenance
// @Description Active assets whose next maintenance date is in the past
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /maintenances/overdue [get]
func (h *MaintenanceHandler) Overdue(c *fiber.Ctx) error {
	assets, err := h.maintService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue maintenances")
	}

	items := make([]interface{}, 0, len(assets))
	for _, asset := range assets {
		items = append(items, asset.ToResponse())
	}

	return response.Success(c, "Overdue maintenances retrieved successfully", fiber.Map{
		"assets": items,
	})
}
