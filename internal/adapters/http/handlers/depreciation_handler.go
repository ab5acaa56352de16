package handlers

import (
	"errors"

	"clinicamia-assets/internal/core/domain"
	"clinicamia-assets/internal/core/services"
	"clinicamia-assets/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DepreciationHandler handles depreciation run and export endpoints
type DepreciationHandler struct {
	scheduler     *services.SchedulerService
	depService    *services.DepreciationService
	exportService *services.AccountingExportService
}

// NewDepreciationHandler creates a new depreciation handler
func NewDepreciationHandler(
	scheduler *services.SchedulerService,
	depService *services.DepreciationService,
	exportService *services.AccountingExportService,
) *DepreciationHandler {
	return &DepreciationHandler{
		scheduler:     scheduler,
		depService:    depService,
		exportService: exportService,
	}
}

// RunRequest represents a manual depreciation run request
type RunRequest struct {
	Period string `json:"period,omitempty"` // YYYY-MM, defaults to the current month
}

// Run triggers a manual depreciation run (Admin only)
// @Summary Run depreciation
// @Description Execute the monthly depreciation run for a period (defaults to current month)
// @Tags Depreciation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RunRequest false "Run parameters"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /depreciation/run [post]
func (h *DepreciationHandler) Run(c *fiber.Ctx) error {
	var req RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	actor, _ := c.Locals("username").(string)

	result, err := h.scheduler.RunManual(c.Context(), req.Period, actor)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPeriodFormat):
			return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
		case errors.Is(err, domain.ErrPeriodAlreadyRun):
			return response.Conflict(c, "Depreciation already executed for this period")
		case errors.Is(err, domain.ErrRunInProgress):
			return response.Conflict(c, "A depreciation run is already in progress")
		case errors.Is(err, domain.ErrRunIncomplete):
			return response.Error(c, fiber.StatusGatewayTimeout, "Depreciation run did not complete; committed assets remain posted")
		default:
			return response.InternalServerError(c, "Depreciation run failed")
		}
	}

	return response.Success(c, "Depreciation run completed", fiber.Map{
		"result": result,
	})
}

// Status reports scheduler state
// @Summary Scheduler status
// @Description Whether a run is executing and when the next automatic run fires
// @Tags Depreciation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /depreciation/status [get]
func (h *DepreciationHandler) Status(c *fiber.Ctx) error {
	return response.Success(c, "Scheduler status retrieved", fiber.Map{
		"status": h.scheduler.Status(),
	})
}

// PeriodSummary returns the depreciation history of a period
// @Summary Period summary
// @Description Depreciation records of a period with per-type totals
// @Tags Depreciation
// @Produce json
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /depreciation/periods/{period} [get]
func (h *DepreciationHandler) PeriodSummary(c *fiber.Ctx) error {
	period := c.Params("period")

	summary, err := h.depService.GetPeriodSummary(c.Context(), period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodFormat) {
			return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to get period summary")
	}

	return response.Success(c, "Period summary retrieved", fiber.Map{
		"summary": summary,
	})
}

// UnpostedSummary returns ledger-ready grouped totals for a period
// @Summary Unposted export summary
// @Description Unposted depreciation grouped by asset type with GL account pairs
// @Tags Accounting
// @Produce json
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /depreciation/periods/{period}/unposted [get]
func (h *DepreciationHandler) UnpostedSummary(c *fiber.Ctx) error {
	period := c.Params("period")

	summary, err := h.exportService.SummarizeUnposted(c.Context(), period)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodFormat) {
			return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to summarize unposted depreciation")
	}

	return response.Success(c, "Unposted summary retrieved", fiber.Map{
		"summary": summary,
	})
}

// MarkPostedRequest represents a ledger confirmation
type MarkPostedRequest struct {
	PostingRef string `json:"posting_ref"`
}

// MarkPosted attaches the ledger posting reference to a period (Admin only)
// @Summary Mark period posted
// @Description Attach the external ledger reference to all unposted records of a period (idempotent)
// @Tags Accounting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param period path string true "Period (YYYY-MM)"
// @Param body body MarkPostedRequest true "Posting reference"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /depreciation/periods/{period}/posted [post]
func (h *DepreciationHandler) MarkPosted(c *fiber.Ctx) error {
	period := c.Params("period")

	var req MarkPostedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.PostingRef == "" {
		return response.BadRequest(c, "Posting reference is required")
	}

	count, err := h.exportService.MarkPosted(c.Context(), period, req.PostingRef)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriodFormat) {
			return response.BadRequest(c, "Invalid period format, expected YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to mark depreciation as posted")
	}

	return response.Success(c, "Depreciation marked as posted", fiber.Map{
		"period":      period,
		"posting_ref": req.PostingRef,
		"records":     count,
	})
}
