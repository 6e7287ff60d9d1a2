package dto

import "time"

// CreatePCBRequest alta de PCB.
type CreatePCBRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// UpdatePCBRequest parche explícito de PCB.
type UpdatePCBRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// UpsertBOMLineRequest crea o actualiza la línea (pcb, componente) del BOM.
type UpsertBOMLineRequest struct {
	ComponentID            string `json:"component_id"`
	QuantityPerPCB         int    `json:"quantity_per_pcb"`
	AlternativeComponentID string `json:"alternative_component_id"`
}

// BOMLineResponse línea del BOM con identidad del primario y del alterno.
type BOMLineResponse struct {
	ComponentID            string `json:"component_id"`
	ComponentName          string `json:"component_name"`
	PartNumber             string `json:"part_number"`
	CurrentStock           int    `json:"current_stock"`
	QuantityPerPCB         int    `json:"quantity_per_pcb"`
	AlternativeComponentID string `json:"alternative_component_id,omitempty"`
	AlternativeName        string `json:"alternative_name,omitempty"`
	AlternativePartNumber  string `json:"alternative_part_number,omitempty"`
	AlternativeStock       int    `json:"alternative_stock,omitempty"`
}

// PCBResponse PCB con su BOM opcionalmente cargado.
type PCBResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Code        string            `json:"code"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"created_at"`
	Components  []BOMLineResponse `json:"components,omitempty"`
}
