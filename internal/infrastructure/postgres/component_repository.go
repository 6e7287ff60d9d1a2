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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL
// (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, component_name, part_number, current_stock, monthly_required_quantity, created_at, updated_at`

// Create persiste un componente nuevo. Part number duplicado -> ErrDuplicate.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO components (id, component_name, part_number, current_stock, monthly_required_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.PartNumber, c.CurrentStock, c.MonthlyRequiredQuantity, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID. Devuelve nil si no existe.
func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get component")
}

// GetByPartNumber obtiene un componente por part number. Devuelve nil si no existe.
func (r *ComponentRepo) GetByPartNumber(partNumber string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE part_number = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, partNumber), "get component by part number")
}

// List lista componentes con búsqueda opcional (nombre o part number) y
// filtro de bajo stock. Orden estable por nombre.
func (r *ComponentRepo) List(filter repository.ComponentFilter) ([]*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE 1=1`
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (component_name ILIKE $%d OR part_number ILIKE $%d)", len(args), len(args))
	}
	if filter.LowStockOnly {
		query += " AND current_stock < CEIL(monthly_required_quantity * 0.2)"
	}
	query += " ORDER BY component_name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var list []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(&c.ID, &c.Name, &c.PartNumber, &c.CurrentStock, &c.MonthlyRequiredQuantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza el maestro completo del componente (el parche se resuelve
// en el caso de uso, campo por campo; aquí no hay COALESCE).
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `
		UPDATE components
		SET component_name = $1, part_number = $2, current_stock = $3,
		    monthly_required_quantity = $4, updated_at = $5
		WHERE id = $6`
	tag, err := r.q.Exec(context.Background(), query,
		c.Name, c.PartNumber, c.CurrentStock, c.MonthlyRequiredQuantity, c.UpdatedAt, c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un componente.
func (r *ComponentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM components WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate obtiene el componente y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si no existe.
func (r *ComponentRepo) GetForUpdate(id string) (*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get component for update")
}

// SetStock escribe el stock absoluto de un componente ya bloqueado. El CHECK
// de la BD (current_stock >= 0) respalda el invariante del libro mayor.
func (r *ComponentRepo) SetStock(id string, stock int) error {
	query := `UPDATE components SET current_stock = $1, updated_at = now() WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, stock, id)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ComponentRepo) scanOne(row pgx.Row, op string) (*entity.Component, error) {
	var c entity.Component
	err := row.Scan(&c.ID, &c.Name, &c.PartNumber, &c.CurrentStock, &c.MonthlyRequiredQuantity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
