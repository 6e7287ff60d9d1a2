package usecase

import (
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// DashboardUseCase lecturas agregadas para el tablero y reportes de consumo.
// Solo lee: los caminos de escritura viven en el motor de producción.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Dashboard totales generales.
func (uc *DashboardUseCase) Dashboard() (*dto.DashboardResponse, error) {
	counts, err := uc.repo.Dashboard()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalComponents:  counts.TotalComponents,
		TotalPCBs:        counts.TotalPCBs,
		LowStockCount:    counts.LowStockCount,
		TotalProductions: counts.TotalProductions,
		PendingTriggers:  counts.PendingTriggers,
	}, nil
}

// ConsumptionSummary consumo acumulado por componente, mayor primero.
func (uc *DashboardUseCase) ConsumptionSummary() ([]dto.ConsumptionSummaryDTO, error) {
	rows, err := uc.repo.ConsumptionSummary()
	if err != nil {
		return nil, err
	}
	return toSummaryDTOs(rows), nil
}

// TopConsumed los N componentes más consumidos.
func (uc *DashboardUseCase) TopConsumed(limit int) ([]dto.ConsumptionSummaryDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := uc.repo.TopConsumed(limit)
	if err != nil {
		return nil, err
	}
	return toSummaryDTOs(rows), nil
}

// ConsumptionTimeline consumo agregado por día calendario, hasta `days` días
// con actividad (default 30).
func (uc *DashboardUseCase) ConsumptionTimeline(days int) ([]dto.TimelineDTO, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	rows, err := uc.repo.ConsumptionTimeline(days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimelineDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TimelineDTO{
			Date:           r.Date.Format("2006-01-02"),
			TotalConsumed:  r.TotalConsumed,
			ProductionRuns: r.ProductionRuns,
		})
	}
	return out, nil
}

// LowStock componentes bajo el punto de reorden.
func (uc *DashboardUseCase) LowStock() ([]dto.LowStockDTO, error) {
	rows, err := uc.repo.LowStockComponents()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{
			ComponentID:             r.ComponentID,
			ComponentName:           r.ComponentName,
			PartNumber:              r.PartNumber,
			CurrentStock:            r.CurrentStock,
			MonthlyRequiredQuantity: r.MonthlyRequiredQuantity,
			Threshold:               r.Threshold,
		})
	}
	return out, nil
}

func toSummaryDTOs(rows []*repository.ConsumptionSummaryRow) []dto.ConsumptionSummaryDTO {
	out := make([]dto.ConsumptionSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsumptionSummaryDTO{
			ComponentID:      r.ComponentID,
			ComponentName:    r.ComponentName,
			PartNumber:       r.PartNumber,
			TotalConsumed:    r.TotalConsumed,
			ConsumptionCount: r.ConsumptionCount,
		})
	}
	return out
}
