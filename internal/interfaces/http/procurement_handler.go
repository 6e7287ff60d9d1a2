package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
)

// ProcurementHandler maneja los disparadores de compra (protegido).
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// List godoc
// @Summary      Listar disparadores de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProcurementTriggerResponse
// @Router       /api/procurement [get]
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	triggers, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProcurementTriggerResponse, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, toTriggerResponse(t))
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver disparador de compra
// @Description  Suma la cantidad recibida al stock del componente y cierra el
//
//	disparador. Resolver un disparador inexistente o ya resuelto
//	responde 404: la transición es de una sola vía.
//
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Trigger ID"
// @Param        body  body  dto.ResolveTriggerRequest  true  "quantity_received, po_reference"
// @Success      200   {object}  dto.ProcurementTriggerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement/{id}/resolve [post]
func (h *ProcurementHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveTriggerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	trigger, err := h.uc.Resolve(c.Context(), c.Params("id"), procurement.ResolveInput{
		QuantityReceived: in.QuantityReceived,
		POReference:      in.POReference,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity_received > 0 y po_reference son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "disparador no encontrado o ya resuelto"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toTriggerResponse(trigger))
}

func toTriggerResponse(t *entity.ProcurementTrigger) dto.ProcurementTriggerResponse {
	resp := dto.ProcurementTriggerResponse{
		ID:                      t.ID,
		ComponentID:             t.ComponentID,
		ComponentName:           t.ComponentName,
		PartNumber:              t.PartNumber,
		CurrentStockAtTrigger:   t.CurrentStockAtTrigger,
		MonthlyRequiredQuantity: t.MonthlyRequiredQuantity,
		Threshold:               t.Threshold,
		Status:                  string(t.Status),
		POReference:             t.POReference,
		CreatedAt:               t.CreatedAt,
		ResolvedAt:              t.ResolvedAt,
	}
	if t.Status == entity.TriggerResolved {
		stock := t.StockAtResolution
		resp.StockAtResolution = &stock
	}
	return resp
}
