package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pcbstock-api/internal/application/dto"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// ComponentUseCase CRUD del maestro de componentes. La edición de stock por
// esta vía es una corrección del maestro, no una operación del motor; aún así
// dispara la revisión de reorden (best-effort) como el resto de mutaciones.
type ComponentUseCase struct {
	repo    repository.ComponentRepository
	monitor *procurement.UseCase
	log     *logger.Logger
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(repo repository.ComponentRepository, monitor *procurement.UseCase, log *logger.Logger) *ComponentUseCase {
	return &ComponentUseCase{repo: repo, monitor: monitor, log: log}
}

// Create crea un componente. PartNumber debe ser único (ErrDuplicate).
func (uc *ComponentUseCase) Create(ctx context.Context, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if in.Name == "" || in.PartNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MonthlyRequiredQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	comp := &entity.Component{
		ID:                      uuid.New().String(),
		Name:                    in.Name,
		PartNumber:              in.PartNumber,
		CurrentStock:            in.CurrentStock,
		MonthlyRequiredQuantity: in.MonthlyRequiredQuantity,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.repo.Create(comp); err != nil {
		return nil, err
	}
	uc.checkTrigger(ctx, comp.ID)
	return toComponentResponse(comp), nil
}

// GetByID obtiene un componente por ID.
func (uc *ComponentUseCase) GetByID(id string) (*dto.ComponentResponse, error) {
	comp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, domain.ErrNotFound
	}
	return toComponentResponse(comp), nil
}

// List lista componentes con búsqueda y filtro de bajo stock.
func (uc *ComponentUseCase) List(search string, lowStockOnly bool) ([]dto.ComponentResponse, error) {
	list, err := uc.repo.List(repository.ComponentFilter{Search: search, LowStockOnly: lowStockOnly})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ComponentResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toComponentResponse(c))
	}
	return items, nil
}

// Update aplica un parche explícito: solo los campos presentes se tocan, cada
// uno validado por separado.
func (uc *ComponentUseCase) Update(ctx context.Context, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	comp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		comp.Name = *in.Name
	}
	if in.PartNumber != nil {
		if *in.PartNumber == "" {
			return nil, domain.ErrInvalidInput
		}
		comp.PartNumber = *in.PartNumber
	}
	if in.CurrentStock != nil {
		if *in.CurrentStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		comp.CurrentStock = *in.CurrentStock
	}
	if in.MonthlyRequiredQuantity != nil {
		if *in.MonthlyRequiredQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		comp.MonthlyRequiredQuantity = *in.MonthlyRequiredQuantity
	}
	comp.UpdatedAt = time.Now()
	if err := uc.repo.Update(comp); err != nil {
		return nil, err
	}
	uc.checkTrigger(ctx, comp.ID)
	return toComponentResponse(comp), nil
}

// Delete elimina un componente por ID.
func (uc *ComponentUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// checkTrigger revisa el punto de reorden tras una mutación del maestro.
// Best-effort: un fallo se registra y no invalida la edición ya persistida.
func (uc *ComponentUseCase) checkTrigger(ctx context.Context, componentID string) {
	if uc.monitor == nil {
		return
	}
	if err := uc.monitor.CheckComponent(ctx, componentID); err != nil {
		uc.log.Error().Err(err).Str("component_id", componentID).Msg("revisión de reorden tras edición del maestro")
	}
}

func toComponentResponse(c *entity.Component) *dto.ComponentResponse {
	if c == nil {
		return nil
	}
	return &dto.ComponentResponse{
		ID:                      c.ID,
		Name:                    c.Name,
		PartNumber:              c.PartNumber,
		CurrentStock:            c.CurrentStock,
		MonthlyRequiredQuantity: c.MonthlyRequiredQuantity,
		Threshold:               c.ReorderThreshold(),
		IsLowStock:              c.IsLowStock(),
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}
