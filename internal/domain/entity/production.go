package entity

import "time"

// ProductionEntry registro de una corrida de producción exitosa. Se crea
// exactamente una vez por solicitud confirmada; el núcleo nunca lo muta ni
// lo borra.
type ProductionEntry struct {
	ID               string
	PCBID            string
	QuantityProduced int
	ProducedBy       string
	CreatedAt        time.Time

	// Identidad de la PCB y del operario, cargadas por el join en listados.
	PCBName        string
	PCBCode        string
	ProducedByName string
}

// ConsumptionRecord bitácora inmutable de una deducción de stock.
// Invariante: StockAfter = StockBefore - QuantityConsumed, y StockBefore es el
// stock del componente inmediatamente antes de la deducción dentro de la misma
// transacción.
type ConsumptionRecord struct {
	ID                string
	ProductionEntryID string
	ComponentID       string
	QuantityConsumed  int
	StockBefore       int
	StockAfter        int
	CreatedAt         time.Time

	// Identidad del componente para vistas de detalle.
	ComponentName string
	PartNumber    string
}
