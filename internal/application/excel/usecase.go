package excel

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Columnas esperadas en el import: nombre, part number, stock, requerido mensual.
var exportHeaders = []string{"Component Name", "Part Number", "Current Stock", "Monthly Required Quantity"}

// Columnas del reporte de consumo.
var consumptionHeaders = []string{"Date", "PCB Name", "Qty Produced", "Component", "Part Number", "Qty Consumed", "Stock Before", "Stock After"}

// UseCase import/export masivo vía hoja de cálculo: maestro de componentes y
// reporte de consumo.
type UseCase struct {
	componentRepo repository.ComponentRepository
	analyticsRepo repository.AnalyticsRepository
	monitor       *procurement.UseCase
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(componentRepo repository.ComponentRepository, analyticsRepo repository.AnalyticsRepository, monitor *procurement.UseCase, log *logger.Logger) *UseCase {
	return &UseCase{componentRepo: componentRepo, analyticsRepo: analyticsRepo, monitor: monitor, log: log}
}

// ImportComponents lee la primera hoja del libro: una fila por componente
// (encabezado en la fila 1). Crea o actualiza por part_number. Los errores de
// fila no abortan el import: se reportan por renglón.
func (uc *UseCase) ImportComponents(ctx context.Context, r io.Reader) (*dto.ExcelImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}

	result := &dto.ExcelImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // encabezado
		}
		rowNum := i + 1

		name := cellAt(row, 0)
		partNumber := cellAt(row, 1)
		if name == "" || partNumber == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: faltan nombre o part number", rowNum))
			continue
		}
		stock, err := intCellAt(row, 2)
		if err != nil || stock < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: stock inválido", rowNum))
			continue
		}
		monthly, err := intCellAt(row, 3)
		if err != nil || monthly < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: requerido mensual inválido", rowNum))
			continue
		}

		existing, err := uc.componentRepo.GetByPartNumber(partNumber)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", rowNum, err))
			continue
		}
		now := time.Now()
		if existing == nil {
			comp := &entity.Component{
				ID:                      uuid.New().String(),
				Name:                    name,
				PartNumber:              partNumber,
				CurrentStock:            stock,
				MonthlyRequiredQuantity: monthly,
				CreatedAt:               now,
				UpdatedAt:               now,
			}
			if err := uc.componentRepo.Create(comp); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", rowNum, err))
				continue
			}
			result.Created++
			uc.checkTrigger(ctx, comp.ID)
			continue
		}

		existing.Name = name
		existing.CurrentStock = stock
		existing.MonthlyRequiredQuantity = monthly
		existing.UpdatedAt = now
		if err := uc.componentRepo.Update(existing); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", rowNum, err))
			continue
		}
		result.Updated++
		uc.checkTrigger(ctx, existing.ID)
	}

	uc.log.Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("import de componentes finalizado")
	return result, nil
}

// ExportComponents escribe el maestro completo en un libro xlsx y devuelve
// sus bytes.
func (uc *UseCase) ExportComponents() ([]byte, error) {
	list, err := uc.componentRepo.List(repository.ComponentFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Components"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, c := range list {
		rowNum := i + 2
		values := []interface{}{c.Name, c.PartNumber, c.CurrentStock, c.MonthlyRequiredQuantity}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportConsumption escribe el libro mayor de consumo completo (corrida, PCB
// y componente por renglón, más reciente primero) en un libro xlsx.
func (uc *UseCase) ExportConsumption() ([]byte, error) {
	report, err := uc.analyticsRepo.ConsumptionReport()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Consumption Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, h := range consumptionHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range report {
		rowNum := i + 2
		values := []interface{}{
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.PCBName, r.QuantityProduced,
			r.ComponentName, r.PartNumber,
			r.QuantityConsumed, r.StockBefore, r.StockAfter,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// checkTrigger revisión de reorden best-effort tras el import.
func (uc *UseCase) checkTrigger(ctx context.Context, componentID string) {
	if uc.monitor == nil {
		return
	}
	if err := uc.monitor.CheckComponent(ctx, componentID); err != nil {
		uc.log.Error().Err(err).Str("component_id", componentID).Msg("revisión de reorden tras import")
	}
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intCellAt(row []string, idx int) (int, error) {
	s := cellAt(row, idx)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
