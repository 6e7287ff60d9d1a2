package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

var _ repository.ProcurementRepository = (*ProcurementRepo)(nil)

// ProcurementRepo implementación de ProcurementRepository sobre PostgreSQL
// (usable con pool o tx).
type ProcurementRepo struct {
	q Querier
}

// NewProcurementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcurementRepository(q Querier) *ProcurementRepo {
	return &ProcurementRepo{q: q}
}

// CreateTrigger inserta un disparador PENDING. El índice único parcial
// (component_id WHERE status = 'PENDING') convierte la carrera entre
// revisiones concurrentes en ErrDuplicate.
func (r *ProcurementRepo) CreateTrigger(t *entity.ProcurementTrigger) error {
	query := `
		INSERT INTO procurement_triggers
			(id, component_id, current_stock, monthly_required_quantity, threshold, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ComponentID, t.CurrentStockAtTrigger, t.MonthlyRequiredQuantity,
		t.Threshold, string(t.Status), t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert trigger: %w", err)
	}
	return nil
}

// HasPending indica si el componente ya tiene un disparador PENDING.
func (r *ProcurementRepo) HasPending(componentID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM procurement_triggers WHERE component_id = $1 AND status = 'PENDING')`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, componentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has pending trigger: %w", err)
	}
	return exists, nil
}

// GetPendingForUpdate bloquea el disparador si existe y está PENDING
// (SELECT FOR UPDATE). Devuelve nil si no existe o ya fue resuelto: la
// resolución es de una sola vía.
func (r *ProcurementRepo) GetPendingForUpdate(id string) (*entity.ProcurementTrigger, error) {
	query := `
		SELECT id, component_id, current_stock, monthly_required_quantity, threshold, status, created_at
		FROM procurement_triggers
		WHERE id = $1 AND status = 'PENDING'
		FOR UPDATE`
	var t entity.ProcurementTrigger
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ComponentID, &t.CurrentStockAtTrigger, &t.MonthlyRequiredQuantity,
		&t.Threshold, &status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending trigger for update: %w", err)
	}
	t.Status = entity.TriggerStatus(status)
	return &t, nil
}

// MarkResolved persiste la transición PENDING -> RESOLVED ya aplicada sobre
// la entidad.
func (r *ProcurementRepo) MarkResolved(t *entity.ProcurementTrigger) error {
	query := `
		UPDATE procurement_triggers
		SET status = $1, stock_at_resolution = $2, po_reference = $3, resolved_at = $4
		WHERE id = $5`
	tag, err := r.q.Exec(context.Background(), query,
		string(t.Status), t.StockAtResolution, t.POReference, t.ResolvedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("mark trigger resolved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List disparadores más recientes primero, con identidad del componente.
func (r *ProcurementRepo) List() ([]*entity.ProcurementTrigger, error) {
	query := `
		SELECT pt.id, pt.component_id, pt.current_stock, pt.monthly_required_quantity,
		       pt.threshold, pt.status, pt.po_reference, pt.stock_at_resolution,
		       pt.created_at, pt.resolved_at,
		       c.component_name, c.part_number
		FROM procurement_triggers pt
		JOIN components c ON c.id = pt.component_id
		ORDER BY pt.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcurementTrigger
	for rows.Next() {
		t, err := scanTrigger(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID obtiene un disparador con identidad del componente. Devuelve nil si
// no existe.
func (r *ProcurementRepo) GetByID(id string) (*entity.ProcurementTrigger, error) {
	query := `
		SELECT pt.id, pt.component_id, pt.current_stock, pt.monthly_required_quantity,
		       pt.threshold, pt.status, pt.po_reference, pt.stock_at_resolution,
		       pt.created_at, pt.resolved_at,
		       c.component_name, c.part_number
		FROM procurement_triggers pt
		JOIN components c ON c.id = pt.component_id
		WHERE pt.id = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get trigger: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanTrigger(rows)
}

func scanTrigger(rows pgx.Rows) (*entity.ProcurementTrigger, error) {
	var t entity.ProcurementTrigger
	var status string
	var poRef *string
	var stockAtResolution *int
	if err := rows.Scan(
		&t.ID, &t.ComponentID, &t.CurrentStockAtTrigger, &t.MonthlyRequiredQuantity,
		&t.Threshold, &status, &poRef, &stockAtResolution,
		&t.CreatedAt, &t.ResolvedAt,
		&t.ComponentName, &t.PartNumber,
	); err != nil {
		return nil, fmt.Errorf("scan trigger: %w", err)
	}
	t.Status = entity.TriggerStatus(status)
	if poRef != nil {
		t.POReference = *poRef
	}
	if stockAtResolution != nil {
		t.StockAtResolution = *stockAtResolution
	}
	return &t, nil
}

// EnqueueOutbox encola una revisión de reorden dentro de la transacción de
// producción.
func (r *ProcurementRepo) EnqueueOutbox(e *entity.ProcurementOutboxEntry) error {
	query := `
		INSERT INTO procurement_outbox (id, component_id, created_at, attempts)
		VALUES ($1, $2, $3, 0)`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.ComponentID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("enqueue outbox: %w", err)
	}
	return nil
}

// PendingOutbox filas no procesadas, más antiguas primero.
func (r *ProcurementRepo) PendingOutbox(limit int) ([]*entity.ProcurementOutboxEntry, error) {
	query := `
		SELECT id, component_id, created_at, processed_at, attempts, COALESCE(last_error, '')
		FROM procurement_outbox
		WHERE processed_at IS NULL
		ORDER BY created_at
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("pending outbox: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcurementOutboxEntry
	for rows.Next() {
		var e entity.ProcurementOutboxEntry
		if err := rows.Scan(&e.ID, &e.ComponentID, &e.CreatedAt, &e.ProcessedAt, &e.Attempts, &e.LastError); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// MarkOutboxProcessed marca la fila como procesada.
func (r *ProcurementRepo) MarkOutboxProcessed(id string) error {
	query := `UPDATE procurement_outbox SET processed_at = now(), attempts = attempts + 1, last_error = NULL WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("mark outbox processed: %w", err)
	}
	return nil
}

// MarkOutboxFailed registra el fallo y deja la fila pendiente para reintento.
func (r *ProcurementRepo) MarkOutboxFailed(id string, lastError string) error {
	query := `UPDATE procurement_outbox SET attempts = attempts + 1, last_error = $1 WHERE id = $2`
	if _, err := r.q.Exec(context.Background(), query, lastError, id); err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}
