package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// TxRunner ejecuta la resolución de un disparador dentro de una transacción,
// con repositorios atados a esa tx.
type TxRunner interface {
	RunResolve(ctx context.Context, fn func(
		componentRepo repository.ComponentRepository,
		procurementRepo repository.ProcurementRepository,
	) error) error
}

// UseCase monitor de compras: creación idempotente de disparadores de reorden
// y su resolución transaccional.
type UseCase struct {
	txRunner      TxRunner
	componentRepo repository.ComponentRepository
	procRepo      repository.ProcurementRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	componentRepo repository.ComponentRepository,
	procRepo repository.ProcurementRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, componentRepo: componentRepo, procRepo: procRepo, log: log}
}

// CheckComponent evalúa el punto de reorden de un componente y crea un
// disparador PENDING si el stock está por debajo del umbral y no existe ya
// uno pendiente. Idempotente: llamadas repetidas bajo condiciones iguales no
// duplican nada (el índice único parcial de la BD respalda la verificación).
func (uc *UseCase) CheckComponent(ctx context.Context, componentID string) error {
	comp, err := uc.componentRepo.GetByID(componentID)
	if err != nil {
		return err
	}
	if comp == nil {
		// Componente borrado entre el commit y la revisión: nada que hacer
		return nil
	}

	threshold := comp.ReorderThreshold()
	if comp.CurrentStock >= threshold {
		return nil
	}

	pending, err := uc.procRepo.HasPending(componentID)
	if err != nil {
		return err
	}
	if pending {
		return nil
	}

	trigger := &entity.ProcurementTrigger{
		ID:                      uuid.New().String(),
		ComponentID:             componentID,
		CurrentStockAtTrigger:   comp.CurrentStock,
		MonthlyRequiredQuantity: comp.MonthlyRequiredQuantity,
		Threshold:               threshold,
		Status:                  entity.TriggerPending,
		CreatedAt:               time.Now(),
	}
	if err := uc.procRepo.CreateTrigger(trigger); err != nil {
		// Otra revisión concurrente ganó la carrera: el invariante se mantiene
		if errors.Is(err, domain.ErrDuplicate) {
			return nil
		}
		return err
	}

	uc.log.Warn().
		Str("component_id", componentID).
		Str("part_number", comp.PartNumber).
		Int("current_stock", comp.CurrentStock).
		Int("threshold", threshold).
		Msg("disparador de compra creado")
	return nil
}

// ResolveInput entrada para resolver un disparador.
type ResolveInput struct {
	QuantityReceived int
	POReference      string
}

// Resolve cierra un disparador PENDING: suma la cantidad recibida al stock del
// componente y marca el disparador RESOLVED con el stock previo al ingreso.
// Resolver un disparador inexistente o ya resuelto retorna
// domain.ErrNotFound: la transición es de una sola vía.
func (uc *UseCase) Resolve(ctx context.Context, triggerID string, in ResolveInput) (*entity.ProcurementTrigger, error) {
	if triggerID == "" || in.QuantityReceived <= 0 || in.POReference == "" {
		return nil, domain.ErrInvalidInput
	}

	var resolved *entity.ProcurementTrigger
	err := uc.txRunner.RunResolve(ctx, func(
		componentRepo repository.ComponentRepository,
		procurementRepo repository.ProcurementRepository,
	) error {
		// Bloquea primero el disparador, luego su único componente
		trigger, err := procurementRepo.GetPendingForUpdate(triggerID)
		if err != nil {
			return err
		}
		if trigger == nil {
			return domain.ErrNotFound
		}

		comp, err := componentRepo.GetForUpdate(trigger.ComponentID)
		if err != nil {
			return err
		}
		if comp == nil {
			return domain.ErrNotFound
		}

		stockBefore := comp.CurrentStock
		if err := componentRepo.SetStock(comp.ID, stockBefore+in.QuantityReceived); err != nil {
			return err
		}
		if err := trigger.Resolve(stockBefore, in.POReference, time.Now()); err != nil {
			return err
		}
		if err := procurementRepo.MarkResolved(trigger); err != nil {
			return err
		}
		trigger.ComponentName = comp.Name
		trigger.PartNumber = comp.PartNumber
		resolved = trigger
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("trigger_id", resolved.ID).
		Str("component_id", resolved.ComponentID).
		Str("po_reference", in.POReference).
		Int("quantity_received", in.QuantityReceived).
		Msg("disparador de compra resuelto")
	return resolved, nil
}

// List disparadores más recientes primero, con identidad del componente.
func (uc *UseCase) List() ([]*entity.ProcurementTrigger, error) {
	return uc.procRepo.List()
}
