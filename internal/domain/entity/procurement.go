package entity

import (
	"time"

	"github.com/jhoicas/pcbstock-api/internal/domain"
)

// TriggerStatus estado cerrado de un disparador de compra.
// Transición única y de una sola vía: PENDING → RESOLVED.
type TriggerStatus string

const (
	TriggerPending  TriggerStatus = "PENDING"
	TriggerResolved TriggerStatus = "RESOLVED"
)

// Valid indica si el valor corresponde a un estado conocido.
func (s TriggerStatus) Valid() bool {
	return s == TriggerPending || s == TriggerResolved
}

// ProcurementTrigger necesidad de reorden abierta o cerrada para un
// componente. A lo sumo existe un disparador PENDING por componente
// (índice único parcial en la BD).
type ProcurementTrigger struct {
	ID                      string
	ComponentID             string
	CurrentStockAtTrigger   int
	MonthlyRequiredQuantity int
	Threshold               int
	Status                  TriggerStatus
	POReference             string
	StockAtResolution       int
	CreatedAt               time.Time
	ResolvedAt              *time.Time

	// Identidad del componente para listados.
	ComponentName string
	PartNumber    string
}

// Resolve aplica la transición PENDING → RESOLVED. stockAtResolution es el
// stock del componente antes de sumar la cantidad recibida.
func (t *ProcurementTrigger) Resolve(stockAtResolution int, poReference string, at time.Time) error {
	if t.Status != TriggerPending {
		return domain.ErrTriggerNotPending
	}
	t.Status = TriggerResolved
	t.StockAtResolution = stockAtResolution
	t.POReference = poReference
	t.ResolvedAt = &at
	return nil
}

// ProcurementOutboxEntry fila del outbox transaccional: se encola dentro de la
// transacción de producción y el monitor la procesa después del commit. Los
// fallos quedan visibles en Attempts/LastError en lugar de tragarse en un log.
type ProcurementOutboxEntry struct {
	ID          string
	ComponentID string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	Attempts    int
	LastError   string
}
