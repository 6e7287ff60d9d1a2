package dto

import (
	"time"

	"github.com/jhoicas/pcbstock-api/internal/domain"
)

// ProduceRequest solicitud de producción.
// Substitutions mapea component_id primario -> preferir el alterno aprobado.
type ProduceRequest struct {
	PCBID            string          `json:"pcb_id"`
	QuantityProduced int             `json:"quantity_produced"`
	Substitutions    map[string]bool `json:"substitutions"`
}

// AlternativeSuggestionDTO alterno sugerido dentro de un faltante.
type AlternativeSuggestionDTO struct {
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	PartNumber    string `json:"part_number"`
	CurrentStock  int    `json:"current_stock"`
	Sufficient    bool   `json:"sufficient"`
}

// ShortfallDTO faltante de stock de una línea del BOM. ComponentID es el
// primario de la línea para que el cliente reintente con substitutions.
type ShortfallDTO struct {
	ComponentID   string                    `json:"component_id"`
	ComponentName string                    `json:"component_name"`
	PartNumber    string                    `json:"part_number"`
	CurrentStock  int                       `json:"current_stock"`
	Required      int                       `json:"required"`
	Shortfall     int                       `json:"shortfall"`
	Alternative   *AlternativeSuggestionDTO `json:"alternative,omitempty"`
}

// InsufficientStockResponse rechazo de producción con la lista completa de
// faltantes, apta para re-enviar con sustituciones.
type InsufficientStockResponse struct {
	Code                   string         `json:"code"`
	Message                string         `json:"message"`
	InsufficientComponents []ShortfallDTO `json:"insufficient_components"`
}

// ConsumptionRecordResponse renglón del historial de consumo.
type ConsumptionRecordResponse struct {
	ID                string    `json:"id"`
	ProductionEntryID string    `json:"production_entry_id"`
	ComponentID       string    `json:"component_id"`
	ComponentName     string    `json:"component_name,omitempty"`
	PartNumber        string    `json:"part_number,omitempty"`
	QuantityConsumed  int       `json:"quantity_consumed"`
	StockBefore       int       `json:"stock_before"`
	StockAfter        int       `json:"stock_after"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductionEntryResponse corrida de producción.
type ProductionEntryResponse struct {
	ID               string    `json:"id"`
	PCBID            string    `json:"pcb_id"`
	PCBName          string    `json:"pcb_name,omitempty"`
	PCBCode          string    `json:"pcb_code,omitempty"`
	QuantityProduced int       `json:"quantity_produced"`
	ProducedBy       string    `json:"produced_by"`
	ProducedByName   string    `json:"produced_by_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProduceResponse producción confirmada.
type ProduceResponse struct {
	ProductionEntry ProductionEntryResponse     `json:"production_entry"`
	Consumption     []ConsumptionRecordResponse `json:"consumption"`
}

// ShortfallsToDTO convierte los faltantes del dominio al payload HTTP.
func ShortfallsToDTO(shortfalls []domain.Shortfall) []ShortfallDTO {
	out := make([]ShortfallDTO, 0, len(shortfalls))
	for _, sf := range shortfalls {
		item := ShortfallDTO{
			ComponentID:   sf.ComponentID,
			ComponentName: sf.ComponentName,
			PartNumber:    sf.PartNumber,
			CurrentStock:  sf.CurrentStock,
			Required:      sf.Required,
			Shortfall:     sf.Missing,
		}
		if sf.Alternative != nil {
			item.Alternative = &AlternativeSuggestionDTO{
				ComponentID:   sf.Alternative.ComponentID,
				ComponentName: sf.Alternative.ComponentName,
				PartNumber:    sf.Alternative.PartNumber,
				CurrentStock:  sf.Alternative.CurrentStock,
				Sufficient:    sf.Alternative.Sufficient,
			}
		}
		out = append(out, item)
	}
	return out
}
