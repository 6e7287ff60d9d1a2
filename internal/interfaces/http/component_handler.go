package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/usecase"
	"github.com/jhoicas/pcbstock-api/internal/domain"
)

// ComponentHandler maneja el maestro de componentes (protegido).
type ComponentHandler struct {
	uc *usecase.ComponentUseCase
}

// NewComponentHandler construye el handler.
func NewComponentHandler(uc *usecase.ComponentUseCase) *ComponentHandler {
	return &ComponentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear componente
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "name, part_number, current_stock, monthly_required_quantity"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/components [post]
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	comp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return componentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comp)
}

// List godoc
// @Summary      Listar componentes
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        search     query  string  false  "Buscar por nombre o part number"
// @Param        low_stock  query  bool    false  "Solo componentes bajo el punto de reorden"
// @Success      200  {array}  dto.ComponentResponse
// @Router       /api/components [get]
func (h *ComponentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Query("search"), c.QueryBool("low_stock"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener componente
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Component ID"
// @Success      200  {object}  dto.ComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id} [get]
func (h *ComponentHandler) GetByID(c *fiber.Ctx) error {
	comp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return componentError(c, err)
	}
	return c.JSON(comp)
}

// Update godoc
// @Summary      Actualizar componente (parche explícito)
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Component ID"
// @Param        body  body  dto.UpdateComponentRequest  true  "Solo los campos presentes se aplican"
// @Success      200   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/components/{id} [put]
func (h *ComponentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	comp, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return componentError(c, err)
	}
	return c.JSON(comp)
}

// Delete godoc
// @Summary      Eliminar componente
// @Tags         components
// @Security     Bearer
// @Param        id  path  string  true  "Component ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id} [delete]
func (h *ComponentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return componentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func componentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "componente no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "part number ya registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
