package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/usecase"
)

// DashboardHandler lecturas agregadas (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Totales del tablero
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/analytics/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// ConsumptionSummary godoc
// @Summary      Consumo acumulado por componente
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConsumptionSummaryDTO
// @Router       /api/analytics/consumption-summary [get]
func (h *DashboardHandler) ConsumptionSummary(c *fiber.Ctx) error {
	rows, err := h.uc.ConsumptionSummary()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// TopConsumed godoc
// @Summary      Componentes más consumidos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de componentes (default 10)"
// @Success      200  {array}  dto.ConsumptionSummaryDTO
// @Router       /api/analytics/top-consumed [get]
func (h *DashboardHandler) TopConsumed(c *fiber.Ctx) error {
	rows, err := h.uc.TopConsumed(c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// ConsumptionTimeline godoc
// @Summary      Consumo agregado por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días con actividad a devolver (default 30)"
// @Success      200  {array}  dto.TimelineDTO
// @Router       /api/analytics/consumption-timeline [get]
func (h *DashboardHandler) ConsumptionTimeline(c *fiber.Ctx) error {
	rows, err := h.uc.ConsumptionTimeline(c.QueryInt("days"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// LowStock godoc
// @Summary      Componentes bajo el punto de reorden
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockDTO
// @Router       /api/analytics/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.uc.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}
