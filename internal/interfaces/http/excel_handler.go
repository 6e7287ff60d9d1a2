package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/excel"
)

// ExcelHandler import/export masivo de componentes vía hoja de cálculo (protegido).
type ExcelHandler struct {
	uc *excel.UseCase
}

// NewExcelHandler construye el handler.
func NewExcelHandler(uc *excel.UseCase) *ExcelHandler {
	return &ExcelHandler{uc: uc}
}

// Import godoc
// @Summary      Importar componentes desde .xlsx
// @Description  Multipart con el campo "file". Crea o actualiza por part
//
//	number; los errores de fila se reportan sin abortar el import.
//
// @Tags         excel
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Libro .xlsx: name, part_number, stock, monthly_required_quantity"
// @Success      200   {object}  dto.ExcelImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/excel/import [post]
func (h *ExcelHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'file' requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	result, err := h.uc.ImportComponents(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_WORKBOOK", Message: err.Error()})
	}
	return c.JSON(result)
}

// Export godoc
// @Summary      Exportar componentes a .xlsx
// @Tags         excel
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/excel/export [get]
func (h *ExcelHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportComponents()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="components.xlsx"`)
	return c.Send(data)
}

// ExportConsumption godoc
// @Summary      Exportar el reporte de consumo a .xlsx
// @Description  Libro mayor completo: corrida, PCB y componente por renglón.
// @Tags         excel
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/excel/export/consumption [get]
func (h *ExcelHandler) ExportConsumption(c *fiber.Ctx) error {
	data, err := h.uc.ExportConsumption()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="consumption_report.xlsx"`)
	return c.Send(data)
}
