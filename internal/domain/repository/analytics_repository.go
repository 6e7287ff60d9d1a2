package repository

import "time"

// DashboardCounts totales para el dashboard.
type DashboardCounts struct {
	TotalComponents  int
	TotalPCBs        int
	LowStockCount    int
	TotalProductions int
	PendingTriggers  int
}

// ConsumptionSummaryRow consumo acumulado por componente.
type ConsumptionSummaryRow struct {
	ComponentID      string
	ComponentName    string
	PartNumber       string
	TotalConsumed    int
	ConsumptionCount int
}

// TimelineRow consumo agregado de un día calendario.
type TimelineRow struct {
	Date           time.Time
	TotalConsumed  int
	ProductionRuns int
}

// ConsumptionReportRow renglón del reporte de consumo: cada registro del
// libro mayor con la identidad de su corrida, PCB y componente.
type ConsumptionReportRow struct {
	CreatedAt        time.Time
	PCBName          string
	QuantityProduced int
	ComponentName    string
	PartNumber       string
	QuantityConsumed int
	StockBefore      int
	StockAfter       int
}

// LowStockRow componente bajo el punto de reorden.
type LowStockRow struct {
	ComponentID             string
	ComponentName           string
	PartNumber              string
	CurrentStock            int
	MonthlyRequiredQuantity int
	Threshold               int
}

// AnalyticsRepository puerto de lecturas agregadas (dashboard y reportes).
// Solo lee; nunca muta el libro mayor.
type AnalyticsRepository interface {
	Dashboard() (*DashboardCounts, error)
	ConsumptionSummary() ([]*ConsumptionSummaryRow, error)
	TopConsumed(limit int) ([]*ConsumptionSummaryRow, error)
	LowStockComponents() ([]*LowStockRow, error)
	// ConsumptionTimeline consumo por día calendario, más reciente primero.
	ConsumptionTimeline(days int) ([]*TimelineRow, error)
	// ConsumptionReport libro mayor completo, más reciente primero.
	ConsumptionReport() ([]*ConsumptionReportRow, error)
}
