package production

import (
	"fmt"
	"sort"

	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// planItem deducción planificada sobre el componente objetivo de una línea.
type planItem struct {
	ComponentID string
	Required    int
	StockBefore int
}

// resolveBOM expande las líneas del BOM para una cantidad solicitada y decide,
// por línea, un ítem de plan de consumo o un descriptor de faltante.
//
// Corre DENTRO de la transacción de producción: bloquea las filas de los
// componentes objetivo (SELECT FOR UPDATE) en orden ascendente de id para
// evitar deadlocks entre producciones concurrentes, de modo que la
// verificación de suficiencia y la deducción posterior sean una sola sección
// crítica por componente.
//
// La sustitución se aplica solo si el caller la pidió para el primario de la
// línea Y la línea tiene alterno configurado; pedirla sin alterno es un no-op.
// Si dos líneas terminan apuntando al mismo componente, el stock disponible se
// descuenta de forma corrida para que la trayectoria quede serial.
func resolveBOM(
	lines []*entity.BOMLine,
	quantityProduced int,
	substitutions map[string]bool,
	componentRepo repository.ComponentRepository,
) ([]planItem, []domain.Shortfall, error) {
	// Componente objetivo por línea
	targets := make([]string, len(lines))
	targetSet := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		target := line.ComponentID
		if substitutions[line.ComponentID] && line.HasAlternative() {
			target = line.AlternativeComponentID
		}
		targets[i] = target
		targetSet[target] = struct{}{}
	}

	// Bloquear las filas objetivo en orden estable (ascendente por id)
	ids := make([]string, 0, len(targetSet))
	for id := range targetSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Component, len(ids))
	available := make(map[string]int, len(ids))
	for _, id := range ids {
		comp, err := componentRepo.GetForUpdate(id)
		if err != nil {
			return nil, nil, fmt.Errorf("bloquear componente %s: %w", id, err)
		}
		if comp == nil {
			return nil, nil, domain.ErrNotFound
		}
		locked[id] = comp
		available[id] = comp.CurrentStock
	}

	var plan []planItem
	var shortfalls []domain.Shortfall
	for i, line := range lines {
		target := targets[i]
		comp := locked[target]
		required := line.QuantityPerPCB * quantityProduced

		if available[target] >= required {
			plan = append(plan, planItem{
				ComponentID: target,
				Required:    required,
				StockBefore: available[target],
			})
			available[target] -= required
			continue
		}

		// La identidad del faltante es la del componente objetivo de la
		// línea: con sustitución aplicada, el alterno que quedó corto.
		sf := domain.Shortfall{
			ComponentID:   comp.ID,
			ComponentName: comp.Name,
			PartNumber:    comp.PartNumber,
			CurrentStock:  available[target],
			Required:      required,
			Missing:       required - available[target],
		}
		// Sugerir el alterno solo si el faltante fue sobre el primario y la
		// línea tiene alterno configurado, alcance o no su stock.
		if target == line.ComponentID && line.HasAlternative() {
			altStock := line.AlternativeStock
			if alt, ok := locked[line.AlternativeComponentID]; ok {
				altStock = alt.CurrentStock
			}
			sf.Alternative = &domain.AlternativeSuggestion{
				ComponentID:   line.AlternativeComponentID,
				ComponentName: line.AlternativeName,
				PartNumber:    line.AlternativePartNumber,
				CurrentStock:  altStock,
				Sufficient:    altStock >= required,
			}
		}
		shortfalls = append(shortfalls, sf)
	}

	return plan, shortfalls, nil
}
