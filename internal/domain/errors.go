package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrEmptyBOM          = errors.New("la PCB no tiene componentes mapeados")
	ErrTriggerNotPending = errors.New("el disparador no está pendiente")
)

// Shortfall describe un faltante de stock para una línea del BOM.
// ComponentID es siempre el componente primario de la línea, para que el
// cliente pueda correlacionar y reintentar con sustitución.
type Shortfall struct {
	ComponentID   string
	ComponentName string
	PartNumber    string
	CurrentStock  int
	Required      int
	Missing       int
	// Sugerencia de alterno aprobado (si la línea lo tiene configurado y el
	// faltante ocurrió sobre el primario). Se adjunta aunque el alterno
	// tampoco alcance: el cliente decide.
	Alternative *AlternativeSuggestion
}

// AlternativeSuggestion identidad y stock del componente alterno sugerido.
type AlternativeSuggestion struct {
	ComponentID   string
	ComponentName string
	PartNumber    string
	CurrentStock  int
	Sufficient    bool
}

// InsufficientStockError rechazo de una producción por stock insuficiente.
// Es un resultado de negocio esperado, no una falla del sistema: lleva la
// lista completa de faltantes para que el cliente reintente con sustituciones.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producción: %d componente(s) con faltante", len(e.Shortfalls))
}

// AsInsufficientStock devuelve el error tipado si err (o su cadena) lo es.
func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
