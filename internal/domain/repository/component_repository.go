package repository

import "github.com/jhoicas/pcbstock-api/internal/domain/entity"

// ComponentFilter filtros de listado del maestro de componentes.
type ComponentFilter struct {
	Search       string // busca en nombre y part number (ILIKE)
	LowStockOnly bool
}

// ComponentRepository puerto del libro mayor de stock y maestro de
// componentes. CurrentStock solo se escribe vía SetStock dentro de una
// transacción con la fila bloqueada.
type ComponentRepository interface {
	Create(c *entity.Component) error
	GetByID(id string) (*entity.Component, error)
	GetByPartNumber(partNumber string) (*entity.Component, error)
	List(filter ComponentFilter) ([]*entity.Component, error)
	Update(c *entity.Component) error
	Delete(id string) error

	// GetForUpdate bloquea la fila del componente (SELECT FOR UPDATE).
	// Devuelve nil si no existe.
	GetForUpdate(id string) (*entity.Component, error)
	// SetStock escribe el stock absoluto de un componente ya bloqueado.
	SetStock(id string, stock int) error
}
