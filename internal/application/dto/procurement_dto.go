package dto

import "time"

// ResolveTriggerRequest cierre de un disparador de compra.
type ResolveTriggerRequest struct {
	QuantityReceived int    `json:"quantity_received"`
	POReference      string `json:"po_reference"`
}

// ProcurementTriggerResponse disparador con identidad del componente.
type ProcurementTriggerResponse struct {
	ID                      string     `json:"id"`
	ComponentID             string     `json:"component_id"`
	ComponentName           string     `json:"component_name,omitempty"`
	PartNumber              string     `json:"part_number,omitempty"`
	CurrentStockAtTrigger   int        `json:"current_stock_at_trigger"`
	MonthlyRequiredQuantity int        `json:"monthly_required_quantity"`
	Threshold               int        `json:"threshold"`
	Status                  string     `json:"status"`
	POReference             string     `json:"po_reference,omitempty"`
	StockAtResolution       *int       `json:"stock_at_resolution,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	ResolvedAt              *time.Time `json:"resolved_at,omitempty"`
}
