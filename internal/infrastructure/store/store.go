// Package store abre el backend de persistencia elegido en la configuración.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro-api/internal/application/legacy"
	"github.com/jhoicas/stockpro-api/internal/application/sales"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockpro-api/pkg/config"
)

// TxRunner transacciones de ventas e importación.
type TxRunner interface {
	sales.TxRunner
	legacy.ImportTxRunner
}

// Store repositorios listos para usar más su cierre.
type Store struct {
	Driver    string
	Users     repository.UserRepository
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
	Tx        TxRunner

	close func()
}

// Close libera las conexiones.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta y aplica el esquema. PostgreSQL usa las migraciones embebidas;
// SQLite crea las tablas al abrir.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.StoreDriverSQLite,
			Users:     sqlite.NewUserRepository(db),
			Products:  sqlite.NewProductRepository(db),
			Customers: sqlite.NewCustomerRepository(db),
			Sales:     sqlite.NewSaleRepository(db),
			Tx:        sqlite.NewTxRunner(db),
			close:     func() { _ = db.Close() },
		}, nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Driver:    config.StoreDriverPostgres,
			Users:     postgres.NewUserRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Customers: postgres.NewCustomerRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("store: driver no soportado %q", cfg.Store.Driver)
}
