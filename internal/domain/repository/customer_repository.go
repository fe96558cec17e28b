package repository

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, tenantID, id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Customer, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	ReplaceAll(ctx context.Context, tenantID string, customers []*entity.Customer) error
}
