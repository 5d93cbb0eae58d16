package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
	"github.com/tu-usuario/almacen-pro/internal/application/staging"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)
var _ staging.TxRunner = (*StagingTxRunner)(nil)
var _ usecase.StockTxRunner = (*StockTxRunner)(nil)

// TxRunner ejecuta callbacks del motor de asignación dentro de una
// transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLineRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockLineRepository(tx)
	batchRepo := NewBatchRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(stockRepo, batchRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StagingTxRunner ejecuta callbacks de staging (recordQC, putaway) dentro de
// una transacción PostgreSQL.
type StagingTxRunner struct {
	pool *pgxpool.Pool
}

// NewStagingTxRunner construye el runner con el pool.
func NewStagingTxRunner(pool *pgxpool.Pool) *StagingTxRunner {
	return &StagingTxRunner{pool: pool}
}

// Run inicia una transacción con los repos que el putaway necesita.
func (r *StagingTxRunner) Run(ctx context.Context, fn func(
	stagingRepo repository.StagingRepository,
	batchRepo repository.BatchRepository,
	stockRepo repository.StockLineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stagingRepo := NewStagingRepository(tx)
	batchRepo := NewBatchRepository(tx)
	stockRepo := NewStockLineRepository(tx)

	if err := fn(stagingRepo, batchRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StockTxRunner ejecuta callbacks de ajuste del libro de stock (línea + lote)
// dentro de una transacción PostgreSQL.
type StockTxRunner struct {
	pool *pgxpool.Pool
}

// NewStockTxRunner construye el runner con el pool.
func NewStockTxRunner(pool *pgxpool.Pool) *StockTxRunner {
	return &StockTxRunner{pool: pool}
}

// Run inicia una transacción con los repos que el ajuste de líneas necesita.
func (r *StockTxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	stockRepo repository.StockLineRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)
	stockRepo := NewStockLineRepository(tx)

	if err := fn(batchRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
