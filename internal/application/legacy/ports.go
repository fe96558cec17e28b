package legacy

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

// ImportTxRunner ejecuta la importación completa en una sola transacción.
type ImportTxRunner interface {
	RunImport(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
