package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pentasoft/pims-api/internal/application/assets"
	"github.com/pentasoft/pims-api/internal/application/inventory"
	"github.com/pentasoft/pims-api/internal/application/product"
	"github.com/pentasoft/pims-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos transaccionales de la aplicación.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ product.TxRunner = (*TxRunner)(nil)
var _ assets.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := NewTransactionRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(txRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAssets inicia una transacción con los repos de activos y asignaciones
// (transiciones del ciclo de vida y alta atómica de activos).
func (r *TxRunner) RunAssets(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	assignmentRepo repository.AssignmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	assetRepo := NewAssetRepository(tx)
	assignmentRepo := NewAssignmentRepository(tx)

	if err := fn(assetRepo, assignmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
