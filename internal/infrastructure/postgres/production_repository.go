package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL
// (usable con pool o tx). consumption_history es append-only: el repositorio
// no expone UPDATE ni DELETE sobre esas tablas.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// CreateEntry persiste una corrida de producción.
func (r *ProductionRepo) CreateEntry(e *entity.ProductionEntry) error {
	query := `
		INSERT INTO production_entries (id, pcb_id, quantity_produced, produced_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	producedBy := (*string)(nil)
	if e.ProducedBy != "" {
		producedBy = &e.ProducedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.PCBID, e.QuantityProduced, producedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production entry: %w", err)
	}
	return nil
}

// AppendConsumption agrega un renglón inmutable al historial de consumo.
func (r *ProductionRepo) AppendConsumption(rec *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumption_history (id, production_entry_id, component_id, quantity_consumed, stock_before, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductionEntryID, rec.ComponentID,
		rec.QuantityConsumed, rec.StockBefore, rec.StockAfter, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption record: %w", err)
	}
	return nil
}

// ListEntries historial de producción, más reciente primero, con identidad de
// PCB y operario.
func (r *ProductionRepo) ListEntries(limit int) ([]*entity.ProductionEntry, error) {
	query := `
		SELECT pe.id, pe.pcb_id, pe.quantity_produced, pe.produced_by, pe.created_at,
		       p.pcb_name, p.pcb_code, u.username
		FROM production_entries pe
		JOIN pcbs p ON p.id = pe.pcb_id
		LEFT JOIN users u ON u.id = pe.produced_by
		ORDER BY pe.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list production entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductionEntry
	for rows.Next() {
		var e entity.ProductionEntry
		var producedBy, username *string
		if err := rows.Scan(&e.ID, &e.PCBID, &e.QuantityProduced, &producedBy, &e.CreatedAt,
			&e.PCBName, &e.PCBCode, &username); err != nil {
			return nil, fmt.Errorf("scan production entry: %w", err)
		}
		if producedBy != nil {
			e.ProducedBy = *producedBy
		}
		if username != nil {
			e.ProducedByName = *username
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ConsumptionByEntry detalle de lo consumido por una corrida, por nombre de
// componente.
func (r *ProductionRepo) ConsumptionByEntry(productionEntryID string) ([]*entity.ConsumptionRecord, error) {
	query := `
		SELECT ch.id, ch.production_entry_id, ch.component_id, ch.quantity_consumed,
		       ch.stock_before, ch.stock_after, ch.created_at,
		       c.component_name, c.part_number
		FROM consumption_history ch
		JOIN components c ON c.id = ch.component_id
		WHERE ch.production_entry_id = $1
		ORDER BY c.component_name`
	rows, err := r.q.Query(context.Background(), query, productionEntryID)
	if err != nil {
		return nil, fmt.Errorf("consumption by entry: %w", err)
	}
	defer rows.Close()

	var list []*entity.ConsumptionRecord
	for rows.Next() {
		var rec entity.ConsumptionRecord
		if err := rows.Scan(&rec.ID, &rec.ProductionEntryID, &rec.ComponentID, &rec.QuantityConsumed,
			&rec.StockBefore, &rec.StockAfter, &rec.CreatedAt,
			&rec.ComponentName, &rec.PartNumber); err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
