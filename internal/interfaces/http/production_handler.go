package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/production"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
)

// ProductionHandler maneja el motor de producción (protegido).
type ProductionHandler struct {
	uc *production.ProduceUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProduceUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Registrar producción
// @Description  Deduce el stock de todo el BOM de forma atómica. Si alguna
//
//	línea tiene faltante responde 409 con la lista completa de
//	faltantes y no muta nada; el cliente puede reintentar con
//	substitutions para usar alternos aprobados.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "pcb_id, quantity_produced, substitutions (opcional)"
// @Success      201   {object}  dto.ProduceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Produce(c.Context(), production.ProduceInput{
		PCBID:            in.PCBID,
		QuantityProduced: in.QuantityProduced,
		Substitutions:    in.Substitutions,
		ActorID:          GetUserID(c),
	})
	if err != nil {
		if insufficient, ok := domain.AsInsufficientStock(err); ok {
			return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
				Code:                   "INSUFFICIENT_STOCK",
				Message:                "stock insuficiente para la producción solicitada",
				InsufficientComponents: dto.ShortfallsToDTO(insufficient.Shortfalls),
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pcb_id y quantity_produced > 0 son requeridos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pcb no encontrada"})
		}
		if errors.Is(err, domain.ErrEmptyBOM) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "EMPTY_BOM", Message: "la pcb no tiene BOM definido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProduceResponse(result))
}

// History godoc
// @Summary      Historial de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de corridas (default 100)"
// @Success      200  {array}  dto.ProductionEntryResponse
// @Router       /api/production [get]
func (h *ProductionHandler) History(c *fiber.Ctx) error {
	entries, err := h.uc.History(c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProductionEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return c.JSON(out)
}

// Consumption godoc
// @Summary      Consumo de una corrida de producción
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Production entry ID"
// @Success      200  {array}  dto.ConsumptionRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/production/{id}/consumption [get]
func (h *ProductionHandler) Consumption(c *fiber.Ctx) error {
	records, err := h.uc.ConsumptionByEntry(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ConsumptionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toConsumptionResponse(r))
	}
	return c.JSON(out)
}

func toProduceResponse(r *production.ProduceResult) dto.ProduceResponse {
	resp := dto.ProduceResponse{ProductionEntry: toEntryResponse(r.Entry)}
	for _, rec := range r.Consumption {
		resp.Consumption = append(resp.Consumption, toConsumptionResponse(rec))
	}
	return resp
}

func toEntryResponse(e *entity.ProductionEntry) dto.ProductionEntryResponse {
	return dto.ProductionEntryResponse{
		ID:               e.ID,
		PCBID:            e.PCBID,
		PCBName:          e.PCBName,
		PCBCode:          e.PCBCode,
		QuantityProduced: e.QuantityProduced,
		ProducedBy:       e.ProducedBy,
		ProducedByName:   e.ProducedByName,
		CreatedAt:        e.CreatedAt,
	}
}

func toConsumptionResponse(r *entity.ConsumptionRecord) dto.ConsumptionRecordResponse {
	return dto.ConsumptionRecordResponse{
		ID:                r.ID,
		ProductionEntryID: r.ProductionEntryID,
		ComponentID:       r.ComponentID,
		ComponentName:     r.ComponentName,
		PartNumber:        r.PartNumber,
		QuantityConsumed:  r.QuantityConsumed,
		StockBefore:       r.StockBefore,
		StockAfter:        r.StockAfter,
		CreatedAt:         r.CreatedAt,
	}
}
