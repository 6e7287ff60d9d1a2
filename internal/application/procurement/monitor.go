package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// Monitor drena el outbox de compras: por cada fila pendiente evalúa el punto
// de reorden del componente y marca la fila procesada, o registra el fallo en
// la misma fila (attempts, last_error) para que sea inspeccionable.
//
// Corre como goroutine propia: un ticker periódico más un canal de "kick" que
// los commits de producción usan para despertarlo de inmediato. Es
// explícitamente no-transaccional respecto a la producción.
type Monitor struct {
	uc       *UseCase
	procRepo repository.ProcurementRepository
	interval time.Duration
	batch    int
	kick     chan struct{}
	log      *logger.Logger
}

// NewMonitor construye el monitor. interval es el periodo del barrido y batch
// el máximo de filas del outbox por pasada.
func NewMonitor(uc *UseCase, procRepo repository.ProcurementRepository, interval time.Duration, batch int, log *logger.Logger) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if batch <= 0 {
		batch = 50
	}
	return &Monitor{
		uc:       uc,
		procRepo: procRepo,
		interval: interval,
		batch:    batch,
		kick:     make(chan struct{}, 1),
		log:      log,
	}
}

// Kick despierta al monitor sin bloquear. Si ya hay un kick encolado, la
// señal se colapsa con él.
func (m *Monitor) Kick() {
	select {
	case m.kick <- struct{}{}:
	default:
	}
}

// Run procesa el outbox hasta que ctx se cancele.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Msg("monitor de compras iniciado")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Barrido inicial: filas que quedaron pendientes de una corrida anterior
	m.drain(ctx)

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor de compras detenido")
			return
		case <-ticker.C:
			m.drain(ctx)
		case <-m.kick:
			m.drain(ctx)
		}
	}
}

// drain procesa un lote de filas pendientes del outbox.
func (m *Monitor) drain(ctx context.Context) {
	entries, err := m.procRepo.PendingOutbox(m.batch)
	if err != nil {
		m.log.Error().Err(err).Msg("leer outbox de compras")
		return
	}

	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		if err := m.uc.CheckComponent(ctx, e.ComponentID); err != nil {
			m.log.Error().Err(err).
				Str("outbox_id", e.ID).
				Str("component_id", e.ComponentID).
				Msg("revisión de disparador fallida; queda en el outbox")
			if markErr := m.procRepo.MarkOutboxFailed(e.ID, err.Error()); markErr != nil {
				m.log.Error().Err(markErr).Str("outbox_id", e.ID).Msg("marcar fallo en outbox")
			}
			continue
		}
		if err := m.procRepo.MarkOutboxProcessed(e.ID); err != nil {
			m.log.Error().Err(err).Str("outbox_id", e.ID).Msg("marcar outbox procesado")
		}
	}
}
