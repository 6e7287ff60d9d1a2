package dto

// DashboardResponse totales del tablero.
type DashboardResponse struct {
	TotalComponents  int `json:"total_components"`
	TotalPCBs        int `json:"total_pcbs"`
	LowStockCount    int `json:"low_stock_count"`
	TotalProductions int `json:"total_productions"`
	PendingTriggers  int `json:"pending_procurement_triggers"`
}

// ConsumptionSummaryDTO consumo acumulado por componente.
type ConsumptionSummaryDTO struct {
	ComponentID      string `json:"component_id"`
	ComponentName    string `json:"component_name"`
	PartNumber       string `json:"part_number"`
	TotalConsumed    int    `json:"total_consumed"`
	ConsumptionCount int    `json:"consumption_count"`
}

// TimelineDTO consumo agregado por día, más reciente primero.
type TimelineDTO struct {
	Date           string `json:"date"`
	TotalConsumed  int    `json:"total_consumed"`
	ProductionRuns int    `json:"production_runs"`
}

// LowStockDTO componente bajo punto de reorden.
type LowStockDTO struct {
	ComponentID             string `json:"component_id"`
	ComponentName           string `json:"component_name"`
	PartNumber              string `json:"part_number"`
	CurrentStock            int    `json:"current_stock"`
	MonthlyRequiredQuantity int    `json:"monthly_required_quantity"`
	Threshold               int    `json:"threshold"`
}
