package entity

import "time"

// PCB tarjeta de circuito impreso del maestro. El motor de producción solo la
// lee; su edición vive fuera del núcleo transaccional.
type PCB struct {
	ID          string
	Name        string
	Code        string
	Description string
	CreatedAt   time.Time
}

// BOMLine línea del BOM: cuántas unidades de un componente consume una unidad
// de la PCB, y qué alterno aprobado (si alguno) puede sustituirlo.
// El par (PCBID, ComponentID) es único.
type BOMLine struct {
	ID             string
	PCBID          string
	ComponentID    string
	QuantityPerPCB int

	// Identidad y stock del primario, cargados por el join del repositorio.
	ComponentName string
	PartNumber    string
	CurrentStock  int

	// Alterno aprobado opcional.
	AlternativeComponentID string
	AlternativeName        string
	AlternativePartNumber  string
	AlternativeStock       int
}

// HasAlternative indica si la línea tiene un alterno aprobado configurado.
func (l *BOMLine) HasAlternative() bool {
	return l.AlternativeComponentID != ""
}
