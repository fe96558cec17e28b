package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas al tenant.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity fija el stock (usado por la confirmación de ventas).
	UpdateQuantity(ctx context.Context, tenantID, id string, quantity int, updatedAt time.Time) error
	Delete(ctx context.Context, tenantID, id string) error
	// ListByTenant devuelve la colección completa; slice vacío (no nil) si no hay datos.
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	// ReplaceAll sustituye la colección completa del tenant.
	ReplaceAll(ctx context.Context, tenantID string, products []*entity.Product) error
}
