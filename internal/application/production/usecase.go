package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// ProduceUseCase registra una corrida de producción de forma transaccional:
// verifica TODO el BOM con las filas bloqueadas (SELECT FOR UPDATE), y solo si
// ninguna línea tiene faltante deduce stock, inserta la entrada de producción,
// el historial de consumo y las filas del outbox de compras. Todo o nada a
// granularidad de la solicitud: nunca se registra producción parcial.
type ProduceUseCase struct {
	txRunner TxRunner
	pcbRepo  repository.PCBRepository
	prodRepo repository.ProductionRepository
	notifier ProcurementNotifier // opcional; nil = solo barrido por ticker
	log      *logger.Logger
}

// NewProduceUseCase construye el caso de uso.
func NewProduceUseCase(
	txRunner TxRunner,
	pcbRepo repository.PCBRepository,
	prodRepo repository.ProductionRepository,
	notifier ProcurementNotifier,
	log *logger.Logger,
) *ProduceUseCase {
	return &ProduceUseCase{
		txRunner: txRunner,
		pcbRepo:  pcbRepo,
		prodRepo: prodRepo,
		notifier: notifier,
		log:      log,
	}
}

// ProduceInput entrada para registrar una producción.
// Substitutions mapea componentId primario -> preferir alterno.
type ProduceInput struct {
	PCBID            string
	QuantityProduced int
	Substitutions    map[string]bool
	ActorID          string
}

// ProduceResult producción confirmada: entrada más su consumo.
type ProduceResult struct {
	Entry       *entity.ProductionEntry
	Consumption []*entity.ConsumptionRecord
}

// Produce ejecuta una solicitud de producción.
//
// Rechazos esperados: domain.ErrInvalidInput (pcb/cantidad inválidos),
// domain.ErrNotFound (PCB inexistente), domain.ErrEmptyBOM (sin líneas de
// BOM) y *domain.InsufficientStockError con la lista completa de faltantes.
// Cualquier otra falla dentro de la transacción hace rollback completo.
func (uc *ProduceUseCase) Produce(ctx context.Context, in ProduceInput) (*ProduceResult, error) {
	if in.PCBID == "" || in.QuantityProduced <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validar existencia de la PCB antes de abrir la transacción
	pcb, err := uc.pcbRepo.GetByID(in.PCBID)
	if err != nil {
		return nil, err
	}
	if pcb == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	result := &ProduceResult{}

	err = uc.txRunner.Run(ctx, func(
		componentRepo repository.ComponentRepository,
		pcbRepo repository.PCBRepository,
		productionRepo repository.ProductionRepository,
		procurementRepo repository.ProcurementRepository,
	) error {
		lines, err := pcbRepo.GetBOM(in.PCBID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyBOM
		}

		// Fase 1: bloquear y verificar todas las líneas
		plan, shortfalls, err := resolveBOM(lines, in.QuantityProduced, in.Substitutions, componentRepo)
		if err != nil {
			return err
		}
		if len(shortfalls) > 0 {
			// Aborta la transacción: ninguna fila queda creada ni mutada
			return &domain.InsufficientStockError{Shortfalls: shortfalls}
		}

		// Fase 2: confirmar dentro de la misma transacción
		entry := &entity.ProductionEntry{
			ID:               uuid.New().String(),
			PCBID:            in.PCBID,
			QuantityProduced: in.QuantityProduced,
			ProducedBy:       in.ActorID,
			CreatedAt:        now,
		}
		if err := productionRepo.CreateEntry(entry); err != nil {
			return err
		}

		consumed := make(map[string]struct{}, len(plan))
		for _, item := range plan {
			stockAfter := item.StockBefore - item.Required
			if err := componentRepo.SetStock(item.ComponentID, stockAfter); err != nil {
				return err
			}
			rec := &entity.ConsumptionRecord{
				ID:                uuid.New().String(),
				ProductionEntryID: entry.ID,
				ComponentID:       item.ComponentID,
				QuantityConsumed:  item.Required,
				StockBefore:       item.StockBefore,
				StockAfter:        stockAfter,
				CreatedAt:         now,
			}
			if err := productionRepo.AppendConsumption(rec); err != nil {
				return err
			}
			result.Consumption = append(result.Consumption, rec)
			consumed[item.ComponentID] = struct{}{}
		}

		// Encolar la revisión de compras en el outbox, dentro de la misma
		// transacción: un crash después del commit no pierde la revisión.
		for componentID := range consumed {
			if err := procurementRepo.EnqueueOutbox(&entity.ProcurementOutboxEntry{
				ID:          uuid.New().String(),
				ComponentID: componentID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("production_entry_id", result.Entry.ID).
		Str("pcb_id", in.PCBID).
		Int("quantity", in.QuantityProduced).
		Int("components_consumed", len(result.Consumption)).
		Msg("producción registrada")

	// Despertar al monitor después del commit. La evaluación de disparadores
	// es no-transaccional respecto a la producción: su falla jamás la revierte.
	if uc.notifier != nil {
		uc.notifier.Kick()
	}

	return result, nil
}

// History historial de producción, más reciente primero.
func (uc *ProduceUseCase) History(limit int) ([]*entity.ProductionEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return uc.prodRepo.ListEntries(limit)
}

// ConsumptionByEntry detalle de lo consumido por una corrida.
func (uc *ProduceUseCase) ConsumptionByEntry(productionEntryID string) ([]*entity.ConsumptionRecord, error) {
	if productionEntryID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.prodRepo.ConsumptionByEntry(productionEntryID)
}
