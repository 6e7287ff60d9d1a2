package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// PCBUseCase CRUD del maestro de PCBs y gestión de su BOM.
type PCBUseCase struct {
	repo          repository.PCBRepository
	componentRepo repository.ComponentRepository
}

// NewPCBUseCase construye el caso de uso.
func NewPCBUseCase(repo repository.PCBRepository, componentRepo repository.ComponentRepository) *PCBUseCase {
	return &PCBUseCase{repo: repo, componentRepo: componentRepo}
}

// Create crea una PCB. Code debe ser único (ErrDuplicate).
func (uc *PCBUseCase) Create(in dto.CreatePCBRequest) (*dto.PCBResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	pcb := &entity.PCB{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(pcb); err != nil {
		return nil, err
	}
	return toPCBResponse(pcb, nil), nil
}

// GetByID obtiene una PCB con su BOM.
func (uc *PCBUseCase) GetByID(id string) (*dto.PCBResponse, error) {
	pcb, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pcb == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repo.GetBOM(id)
	if err != nil {
		return nil, err
	}
	return toPCBResponse(pcb, lines), nil
}

// List lista las PCBs sin BOM.
func (uc *PCBUseCase) List() ([]dto.PCBResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PCBResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPCBResponse(p, nil))
	}
	return items, nil
}

// Update aplica un parche explícito sobre la PCB.
func (uc *PCBUseCase) Update(id string, in dto.UpdatePCBRequest) (*dto.PCBResponse, error) {
	pcb, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pcb == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		pcb.Name = *in.Name
	}
	if in.Code != nil {
		if *in.Code == "" {
			return nil, domain.ErrInvalidInput
		}
		pcb.Code = *in.Code
	}
	if in.Description != nil {
		pcb.Description = *in.Description
	}
	if err := uc.repo.Update(pcb); err != nil {
		return nil, err
	}
	return toPCBResponse(pcb, nil), nil
}

// Delete elimina una PCB (las líneas del BOM caen en cascada).
func (uc *PCBUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// UpsertBOMLine crea o actualiza la línea (pcb, componente) del BOM.
// El alterno, si se indica, debe existir y ser distinto del primario.
func (uc *PCBUseCase) UpsertBOMLine(pcbID string, in dto.UpsertBOMLineRequest) error {
	if pcbID == "" || in.ComponentID == "" || in.QuantityPerPCB <= 0 {
		return domain.ErrInvalidInput
	}
	if in.AlternativeComponentID == in.ComponentID {
		return domain.ErrInvalidInput
	}
	pcb, err := uc.repo.GetByID(pcbID)
	if err != nil {
		return err
	}
	if pcb == nil {
		return domain.ErrNotFound
	}
	comp, err := uc.componentRepo.GetByID(in.ComponentID)
	if err != nil {
		return err
	}
	if comp == nil {
		return domain.ErrNotFound
	}
	if in.AlternativeComponentID != "" {
		alt, err := uc.componentRepo.GetByID(in.AlternativeComponentID)
		if err != nil {
			return err
		}
		if alt == nil {
			return domain.ErrNotFound
		}
	}
	return uc.repo.UpsertBOMLine(&entity.BOMLine{
		ID:                     uuid.New().String(),
		PCBID:                  pcbID,
		ComponentID:            in.ComponentID,
		QuantityPerPCB:         in.QuantityPerPCB,
		AlternativeComponentID: in.AlternativeComponentID,
	})
}

// DeleteBOMLine elimina la línea (pcb, componente) del BOM.
func (uc *PCBUseCase) DeleteBOMLine(pcbID, componentID string) error {
	if pcbID == "" || componentID == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.DeleteBOMLine(pcbID, componentID)
}

func toPCBResponse(p *entity.PCB, lines []*entity.BOMLine) *dto.PCBResponse {
	if p == nil {
		return nil
	}
	resp := &dto.PCBResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
	for _, l := range lines {
		resp.Components = append(resp.Components, dto.BOMLineResponse{
			ComponentID:            l.ComponentID,
			ComponentName:          l.ComponentName,
			PartNumber:             l.PartNumber,
			CurrentStock:           l.CurrentStock,
			QuantityPerPCB:         l.QuantityPerPCB,
			AlternativeComponentID: l.AlternativeComponentID,
			AlternativeName:        l.AlternativeName,
			AlternativePartNumber:  l.AlternativePartNumber,
			AlternativeStock:       l.AlternativeStock,
		})
	}
	return resp
}
