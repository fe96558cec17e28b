package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, tenantID, id, status string, updatedAt time.Time) error
	// Delete no restaura stock.
	Delete(ctx context.Context, tenantID, id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error)
	ReplaceAll(ctx context.Context, tenantID string, sales []*entity.Sale) error
}
