package production

import (
	"context"

	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// producción: o se confirma todo (entrada, deducciones, consumo, outbox) o
// nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		componentRepo repository.ComponentRepository,
		pcbRepo repository.PCBRepository,
		productionRepo repository.ProductionRepository,
		procurementRepo repository.ProcurementRepository,
	) error) error
}

// ProcurementNotifier despierta al monitor de compras después de un commit
// para que drene el outbox sin esperar al próximo tick. Best-effort: nunca
// puede afectar la producción ya confirmada.
type ProcurementNotifier interface {
	Kick()
}
