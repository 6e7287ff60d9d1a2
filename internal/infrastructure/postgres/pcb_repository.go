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

var _ repository.PCBRepository = (*PCBRepo)(nil)

// PCBRepo implementación de PCBRepository sobre PostgreSQL (usable con pool o tx).
type PCBRepo struct {
	q Querier
}

// NewPCBRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPCBRepository(q Querier) *PCBRepo {
	return &PCBRepo{q: q}
}

// Create persiste una PCB nueva. Código duplicado -> ErrDuplicate.
func (r *PCBRepo) Create(p *entity.PCB) error {
	query := `
		INSERT INTO pcbs (id, pcb_name, pcb_code, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.Code, p.Description, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pcb: %w", err)
	}
	return nil
}

// GetByID obtiene una PCB por ID. Devuelve nil si no existe.
func (r *PCBRepo) GetByID(id string) (*entity.PCB, error) {
	query := `SELECT id, pcb_name, pcb_code, description, created_at FROM pcbs WHERE id = $1`
	var p entity.PCB
	var description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.Name, &p.Code, &description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pcb: %w", err)
	}
	if description != nil {
		p.Description = *description
	}
	return &p, nil
}

// List lista las PCBs por nombre.
func (r *PCBRepo) List() ([]*entity.PCB, error) {
	query := `SELECT id, pcb_name, pcb_code, description, created_at FROM pcbs ORDER BY pcb_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pcbs: %w", err)
	}
	defer rows.Close()

	var list []*entity.PCB
	for rows.Next() {
		var p entity.PCB
		var description *string
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pcb: %w", err)
		}
		if description != nil {
			p.Description = *description
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza el maestro de la PCB.
func (r *PCBRepo) Update(p *entity.PCB) error {
	query := `UPDATE pcbs SET pcb_name = $1, pcb_code = $2, description = $3 WHERE id = $4`
	tag, err := r.q.Exec(context.Background(), query, p.Name, p.Code, p.Description, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update pcb: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una PCB; sus líneas de BOM caen en cascada.
func (r *PCBRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM pcbs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pcb: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetBOM devuelve las líneas del BOM con identidad y stock del primario y del
// alterno configurado, en orden estable por nombre del primario.
func (r *PCBRepo) GetBOM(pcbID string) ([]*entity.BOMLine, error) {
	query := `
		SELECT pc.id, pc.pcb_id, pc.component_id, pc.quantity_per_pcb,
		       c.component_name, c.part_number, c.current_stock,
		       alt.id, alt.component_name, alt.part_number, alt.current_stock
		FROM pcb_components pc
		JOIN components c ON c.id = pc.component_id
		LEFT JOIN components alt ON alt.id = pc.alternative_component_id
		WHERE pc.pcb_id = $1
		ORDER BY c.component_name`
	rows, err := r.q.Query(context.Background(), query, pcbID)
	if err != nil {
		return nil, fmt.Errorf("get bom: %w", err)
	}
	defer rows.Close()

	var lines []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		var altID, altName, altPN *string
		var altStock *int
		if err := rows.Scan(
			&l.ID, &l.PCBID, &l.ComponentID, &l.QuantityPerPCB,
			&l.ComponentName, &l.PartNumber, &l.CurrentStock,
			&altID, &altName, &altPN, &altStock,
		); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		if altID != nil {
			l.AlternativeComponentID = *altID
			l.AlternativeName = *altName
			l.AlternativePartNumber = *altPN
			l.AlternativeStock = *altStock
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpsertBOMLine inserta o actualiza la línea (pcb, componente) del BOM.
func (r *PCBRepo) UpsertBOMLine(line *entity.BOMLine) error {
	altID := (*string)(nil)
	if line.AlternativeComponentID != "" {
		altID = &line.AlternativeComponentID
	}
	query := `
		INSERT INTO pcb_components (id, pcb_id, component_id, quantity_per_pcb, alternative_component_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pcb_id, component_id)
		DO UPDATE SET quantity_per_pcb = EXCLUDED.quantity_per_pcb,
		              alternative_component_id = EXCLUDED.alternative_component_id`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.PCBID, line.ComponentID, line.QuantityPerPCB, altID,
	)
	if err != nil {
		return fmt.Errorf("upsert bom line: %w", err)
	}
	return nil
}

// DeleteBOMLine elimina la línea (pcb, componente) del BOM.
func (r *PCBRepo) DeleteBOMLine(pcbID, componentID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM pcb_components WHERE pcb_id = $1 AND component_id = $2`, pcbID, componentID)
	if err != nil {
		return fmt.Errorf("delete bom line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
