package repository

import "github.com/jhoicas/pcbstock-api/internal/domain/entity"

// PCBRepository puerto del maestro de PCBs y de sus líneas de BOM.
// El motor de producción solo usa GetBOM; el resto es CRUD del maestro.
type PCBRepository interface {
	Create(p *entity.PCB) error
	GetByID(id string) (*entity.PCB, error)
	List() ([]*entity.PCB, error)
	Update(p *entity.PCB) error
	Delete(id string) error

	// GetBOM devuelve las líneas del BOM con identidad y stock del primario
	// y del alterno (join con components). Orden estable por nombre.
	GetBOM(pcbID string) ([]*entity.BOMLine, error)
	UpsertBOMLine(line *entity.BOMLine) error
	DeleteBOMLine(pcbID, componentID string) error
}
