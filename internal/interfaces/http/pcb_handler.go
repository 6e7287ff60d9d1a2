package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/usecase"
	"github.com/jhoicas/pcbstock-api/internal/domain"
)

// PCBHandler maneja el maestro de PCBs y su BOM (protegido).
type PCBHandler struct {
	uc *usecase.PCBUseCase
}

// NewPCBHandler construye el handler.
func NewPCBHandler(uc *usecase.PCBUseCase) *PCBHandler {
	return &PCBHandler{uc: uc}
}

// Create godoc
// @Summary      Crear PCB
// @Tags         pcbs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePCBRequest  true  "name, code, description"
// @Success      201   {object}  dto.PCBResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pcbs [post]
func (h *PCBHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePCBRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pcb, err := h.uc.Create(in)
	if err != nil {
		return pcbError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pcb)
}

// List godoc
// @Summary      Listar PCBs
// @Tags         pcbs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PCBResponse
// @Router       /api/pcbs [get]
func (h *PCBHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener PCB con su BOM
// @Tags         pcbs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "PCB ID"
// @Success      200  {object}  dto.PCBResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pcbs/{id} [get]
func (h *PCBHandler) GetByID(c *fiber.Ctx) error {
	pcb, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return pcbError(c, err)
	}
	return c.JSON(pcb)
}

// Update godoc
// @Summary      Actualizar PCB (parche explícito)
// @Tags         pcbs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "PCB ID"
// @Param        body  body  dto.UpdatePCBRequest  true  "Solo los campos presentes se aplican"
// @Success      200   {object}  dto.PCBResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pcbs/{id} [put]
func (h *PCBHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePCBRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pcb, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return pcbError(c, err)
	}
	return c.JSON(pcb)
}

// Delete godoc
// @Summary      Eliminar PCB
// @Tags         pcbs
// @Security     Bearer
// @Param        id  path  string  true  "PCB ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pcbs/{id} [delete]
func (h *PCBHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return pcbError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertBOMLine godoc
// @Summary      Crear o actualizar una línea del BOM
// @Tags         pcbs
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "PCB ID"
// @Param        body  body  dto.UpsertBOMLineRequest  true  "component_id, quantity_per_pcb, alternative_component_id (opcional)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pcbs/{id}/components [put]
func (h *PCBHandler) UpsertBOMLine(c *fiber.Ctx) error {
	var in dto.UpsertBOMLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpsertBOMLine(c.Params("id"), in); err != nil {
		return pcbError(c, err)
	}
	return c.JSON(fiber.Map{"message": "línea de BOM guardada"})
}

// DeleteBOMLine godoc
// @Summary      Eliminar una línea del BOM
// @Tags         pcbs
// @Security     Bearer
// @Param        id            path  string  true  "PCB ID"
// @Param        component_id  path  string  true  "Component ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pcbs/{id}/components/{component_id} [delete]
func (h *PCBHandler) DeleteBOMLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteBOMLine(c.Params("id"), c.Params("component_id")); err != nil {
		return pcbError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pcbError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pcb o componente no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "código de PCB ya registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
