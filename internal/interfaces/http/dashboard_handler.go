package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jeyostore/pos-api/internal/application/analytics"
	"github.com/jeyostore/pos-api/internal/application/dto"
	"github.com/jeyostore/pos-api/internal/domain"
)

// DashboardHandler handles the dashboard endpoints.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Dashboard KPIs: totals, top-5 sellers, low stock
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        metric  query  string  false  "Top-sellers ranking metric"  Enums(qty, revenue)  default(qty)
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context(), c.Query("metric"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "metric must be qty or revenue"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}

// GetRevenue godoc
// @Summary      Revenue chart buckets for a time window
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        window  query  string  true  "Time window"  Enums(today, 7d, month, year)
// @Success      200  {object}  dto.RevenueChartDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/revenue [get]
func (h *DashboardHandler) GetRevenue(c *fiber.Ctx) error {
	chart, err := h.uc.GetRevenueChart(c.Context(), c.Query("window"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "window must be today, 7d, month or year"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(chart)
}
