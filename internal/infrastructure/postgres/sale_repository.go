package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, tenant_id, customer_id, product_id, customer_name, product_name, unit_price,
	quantity, total, status, sale_date, created_at, updated_at`

// SaleRepo implementación de SaleRepository en PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TenantID, &s.CustomerID, &s.ProductID,
		&s.Snapshot.CustomerName, &s.Snapshot.ProductName, &s.Snapshot.UnitPrice,
		&s.Quantity, &s.Total, &s.Status, &s.Date, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una venta con su snapshot.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.TenantID, s.CustomerID, s.ProductID,
		s.Snapshot.CustomerName, s.Snapshot.ProductName, s.Snapshot.UnitPrice,
		s.Quantity, s.Total, s.Status, s.Date, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta del tenant; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update reescribe la venta completa salvo created_at.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET customer_id = $3, product_id = $4, customer_name = $5, product_name = $6,
			unit_price = $7, quantity = $8, total = $9, status = $10, sale_date = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.CustomerID, s.ProductID, s.Snapshot.CustomerName, s.Snapshot.ProductName,
		s.Snapshot.UnitPrice, s.Quantity, s.Total, s.Status, s.Date, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *SaleRepo) UpdateStatus(ctx context.Context, tenantID, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la venta sin restaurar stock.
func (r *SaleRepo) Delete(ctx context.Context, tenantID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista las ventas del tenant, más recientes primero.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ReplaceAll borra e inserta la colección completa. Usar dentro de una tx.
func (r *SaleRepo) ReplaceAll(ctx context.Context, tenantID string, sales []*entity.Sale) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE tenant_id = $1`, tenantID); err != nil {
		return fmt.Errorf("replace sales: %w", err)
	}
	for _, s := range sales {
		row := *s
		row.TenantID = tenantID
		if err := r.Create(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}
