package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stockpro-api/internal/application/legacy"
	"github.com/jhoicas/stockpro-api/internal/application/sales"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var (
	_ sales.TxRunner        = (*TxRunner)(nil)
	_ legacy.ImportTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(NewProductRepository(tx), NewCustomerRepository(tx), NewSaleRepository(tx))
	})
}

func (r *TxRunner) RunImport(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(NewUserRepository(tx), NewProductRepository(tx), NewCustomerRepository(tx), NewSaleRepository(tx))
	})
}
