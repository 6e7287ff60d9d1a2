package dto

import "time"

// CreateComponentRequest alta de componente en el maestro.
type CreateComponentRequest struct {
	Name                    string `json:"name"`
	PartNumber              string `json:"part_number"`
	CurrentStock            int    `json:"current_stock"`
	MonthlyRequiredQuantity int    `json:"monthly_required_quantity"`
}

// UpdateComponentRequest parche explícito de componente: solo los campos
// presentes se aplican, cada uno validado individualmente. Nada de COALESCE.
type UpdateComponentRequest struct {
	Name                    *string `json:"name"`
	PartNumber              *string `json:"part_number"`
	CurrentStock            *int    `json:"current_stock"`
	MonthlyRequiredQuantity *int    `json:"monthly_required_quantity"`
}

// ComponentResponse componente con su estado de reorden derivado.
type ComponentResponse struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	PartNumber              string    `json:"part_number"`
	CurrentStock            int       `json:"current_stock"`
	MonthlyRequiredQuantity int       `json:"monthly_required_quantity"`
	Threshold               int       `json:"threshold"`
	IsLowStock              bool      `json:"is_low_stock"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
