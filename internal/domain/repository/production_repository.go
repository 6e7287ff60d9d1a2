package repository

import "github.com/jhoicas/pcbstock-api/internal/domain/entity"

// ProductionRepository puerto de corridas de producción y de su historial de
// consumo. consumption_history es append-only: no hay Update ni Delete.
type ProductionRepository interface {
	CreateEntry(e *entity.ProductionEntry) error
	AppendConsumption(r *entity.ConsumptionRecord) error

	// ListEntries historial de producción, más reciente primero, con
	// identidad de PCB y operario.
	ListEntries(limit int) ([]*entity.ProductionEntry, error)
	// ConsumptionByEntry detalle de lo consumido por una corrida.
	ConsumptionByEntry(productionEntryID string) ([]*entity.ConsumptionRecord, error)
}
