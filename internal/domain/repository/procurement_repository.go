package repository

import "github.com/jhoicas/pcbstock-api/internal/domain/entity"

// ProcurementRepository puerto de disparadores de compra y de su outbox.
type ProcurementRepository interface {
	// CreateTrigger inserta un disparador PENDING. El índice único parcial de
	// la BD garantiza a lo sumo un PENDING por componente; una violación se
	// reporta como domain.ErrDuplicate.
	CreateTrigger(t *entity.ProcurementTrigger) error
	// HasPending indica si el componente ya tiene un disparador PENDING.
	HasPending(componentID string) (bool, error)
	// GetPendingForUpdate bloquea el disparador si existe y está PENDING
	// (SELECT FOR UPDATE). Devuelve nil si no existe o ya fue resuelto.
	GetPendingForUpdate(id string) (*entity.ProcurementTrigger, error)
	// MarkResolved persiste la transición ya aplicada sobre la entidad.
	MarkResolved(t *entity.ProcurementTrigger) error
	// List disparadores más recientes primero, con identidad del componente.
	List() ([]*entity.ProcurementTrigger, error)
	GetByID(id string) (*entity.ProcurementTrigger, error)

	// Outbox transaccional del monitor de compras.
	EnqueueOutbox(e *entity.ProcurementOutboxEntry) error
	PendingOutbox(limit int) ([]*entity.ProcurementOutboxEntry, error)
	MarkOutboxProcessed(id string) error
	MarkOutboxFailed(id string, lastError string) error
}
