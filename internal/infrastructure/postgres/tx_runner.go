package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pcbstock-api/internal/application/procurement"
	"github.com/jhoicas/pcbstock-api/internal/application/production"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// Ensure TxRunner implements production.TxRunner and procurement.TxRunner.
var _ production.TxRunner = (*TxRunner)(nil)
var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción de una producción: ejecuta fn con repos atados a
// la tx y hace Commit o Rollback. El Rollback diferido cubre todo camino de
// salida, incluidos los de error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	componentRepo repository.ComponentRepository,
	pcbRepo repository.PCBRepository,
	productionRepo repository.ProductionRepository,
	procurementRepo repository.ProcurementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	componentRepo := NewComponentRepository(tx)
	pcbRepo := NewPCBRepository(tx)
	productionRepo := NewProductionRepository(tx)
	procurementRepo := NewProcurementRepository(tx)

	if err := fn(componentRepo, pcbRepo, productionRepo, procurementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunResolve inicia la transacción de resolución de un disparador de compra.
func (r *TxRunner) RunResolve(ctx context.Context, fn func(
	componentRepo repository.ComponentRepository,
	procurementRepo repository.ProcurementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	componentRepo := NewComponentRepository(tx)
	procurementRepo := NewProcurementRepository(tx)

	if err := fn(componentRepo, procurementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
