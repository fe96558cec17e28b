package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, name, category, description, price, quantity, min_stock, created_at, updated_at`

type productRow struct {
	ID          string          `db:"id"`
	TenantID    string          `db:"tenant_id"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Quantity    int             `db:"quantity"`
	MinStock    int             `db:"min_stock"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          r.ID,
		TenantID:    r.TenantID,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		MinStock:    r.MinStock,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// ProductRepo implementación de ProductRepository sobre SQLite.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el repositorio. Pasar *sqlx.DB o *sqlx.Tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Name, p.Category, p.Description,
		p.Price.String(), p.Quantity, p.MinStock, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity()
}

// GetForUpdate equivale a GetByID: con una sola conexión abierta las
// transacciones ya se ejecutan en serie.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, category = ?, description = ?, price = ?,
			quantity = ?, min_stock = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`,
		p.Name, p.Category, p.Description, p.Price.String(), p.Quantity, p.MinStock,
		formatTime(p.UpdatedAt), p.TenantID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *ProductRepo) UpdateQuantity(ctx context.Context, tenantID, id string, quantity int, updatedAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET quantity = ?, updated_at = ? WHERE tenant_id = ? AND id = ?`,
		quantity, formatTime(updatedAt), tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *ProductRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	var rows []productRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = ? ORDER BY created_at, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, nil
}

func (r *ProductRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM products WHERE tenant_id = ?`, tenantID); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ReplaceAll borra e inserta la colección completa. Usar dentro de una tx.
func (r *ProductRepo) ReplaceAll(ctx context.Context, tenantID string, products []*entity.Product) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE tenant_id = ?`, tenantID); err != nil {
		return fmt.Errorf("replace products: %w", err)
	}
	for _, p := range products {
		row := *p
		row.TenantID = tenantID
		if err := r.Create(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}
