package entity

import (
	"math"
	"time"
)

// Component componente electrónico del maestro de materiales.
// CurrentStock solo se muta dentro de las transacciones del motor
// (producción, resolución de compras) o por edición del maestro.
type Component struct {
	ID                      string
	Name                    string
	PartNumber              string
	CurrentStock            int
	MonthlyRequiredQuantity int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// ReorderThreshold punto de reorden: 20% del requerido mensual, redondeado
// hacia arriba.
func (c *Component) ReorderThreshold() int {
	return ReorderThreshold(c.MonthlyRequiredQuantity)
}

// IsLowStock indica si el stock actual está por debajo del punto de reorden.
func (c *Component) IsLowStock() bool {
	return c.CurrentStock < c.ReorderThreshold()
}

// ReorderThreshold calcula ceil(monthlyRequired * 0.2).
func ReorderThreshold(monthlyRequired int) int {
	return int(math.Ceil(float64(monthlyRequired) * 0.2))
}
