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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, tenant_id, customer_id, product_id, customer_name, product_name, unit_price,
	quantity, total, status, sale_date, created_at, updated_at`

type saleRow struct {
	ID           string          `db:"id"`
	TenantID     string          `db:"tenant_id"`
	CustomerID   string          `db:"customer_id"`
	ProductID    string          `db:"product_id"`
	CustomerName string          `db:"customer_name"`
	ProductName  string          `db:"product_name"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Quantity     int             `db:"quantity"`
	Total        decimal.Decimal `db:"total"`
	Status       string          `db:"status"`
	SaleDate     string          `db:"sale_date"`
	CreatedAt    string          `db:"created_at"`
	UpdatedAt    string          `db:"updated_at"`
}

func (r saleRow) toEntity() (*entity.Sale, error) {
	var (
		s   entity.Sale
		err error
	)
	if s.Date, err = parseTime(r.SaleDate); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	s.ID, s.TenantID = r.ID, r.TenantID
	s.CustomerID, s.ProductID = r.CustomerID, r.ProductID
	s.Snapshot = entity.SaleSnapshot{
		CustomerName: r.CustomerName,
		ProductName:  r.ProductName,
		UnitPrice:    r.UnitPrice,
	}
	s.Quantity, s.Total, s.Status = r.Quantity, r.Total, r.Status
	return &s, nil
}

// SaleRepo implementación de SaleRepository sobre SQLite.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio. Pasar *sqlx.DB o *sqlx.Tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TenantID, s.CustomerID, s.ProductID,
		s.Snapshot.CustomerName, s.Snapshot.ProductName, s.Snapshot.UnitPrice.String(),
		s.Quantity, s.Total.String(), s.Status,
		formatTime(s.Date), formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	var row saleRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return row.toEntity()
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sales SET customer_id = ?, product_id = ?, customer_name = ?, product_name = ?,
			unit_price = ?, quantity = ?, total = ?, status = ?, sale_date = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`,
		s.CustomerID, s.ProductID, s.Snapshot.CustomerName, s.Snapshot.ProductName,
		s.Snapshot.UnitPrice.String(), s.Quantity, s.Total.String(), s.Status,
		formatTime(s.Date), formatTime(s.UpdatedAt), s.TenantID, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, tenantID, id, status string, updatedAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales SET status = ?, updated_at = ? WHERE tenant_id = ? AND id = ?`,
		status, formatTime(updatedAt), tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *SaleRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sales WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

// ListByTenant lista las ventas del tenant, más recientes primero.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Sale, error) {
	var rows []saleRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = ? ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := make([]*entity.Sale, 0, len(rows))
	for _, row := range rows {
		s, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, nil
}

func (r *SaleRepo) ReplaceAll(ctx context.Context, tenantID string, sales []*entity.Sale) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM sales WHERE tenant_id = ?`, tenantID); err != nil {
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
