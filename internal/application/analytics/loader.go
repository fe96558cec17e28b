package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// tenantData colecciones completas de un tenant.
type tenantData struct {
	sales     []*entity.Sale
	products  []*entity.Product
	customers []*entity.Customer
}

// Repos lecturas que necesitan los casos de uso de analítica.
type Repos struct {
	Sales     repository.SaleRepository
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
}

// load lee las tres colecciones en paralelo.
func (r Repos) load(ctx context.Context, tenantID string) (*tenantData, error) {
	type salesResult struct {
		list []*entity.Sale
		err  error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type customersResult struct {
		list []*entity.Customer
		err  error
	}

	salesCh := make(chan salesResult, 1)
	productsCh := make(chan productsResult, 1)
	customersCh := make(chan customersResult, 1)

	go func() {
		list, err := r.Sales.ListByTenant(ctx, tenantID)
		salesCh <- salesResult{list, err}
	}()
	go func() {
		list, err := r.Products.ListByTenant(ctx, tenantID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := r.Customers.ListByTenant(ctx, tenantID)
		customersCh <- customersResult{list, err}
	}()

	sales := <-salesCh
	products := <-productsCh
	customers := <-customersCh

	if sales.err != nil {
		return nil, fmt.Errorf("analytics: ventas: %w", sales.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("analytics: productos: %w", products.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("analytics: clientes: %w", customers.err)
	}
	return &tenantData{sales: sales.list, products: products.list, customers: customers.list}, nil
}
