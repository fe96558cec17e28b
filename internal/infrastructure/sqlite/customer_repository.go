package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, tenant_id, name, email, phone, address, city, state, zip_code, created_at, updated_at`

type customerRow struct {
	ID        string `db:"id"`
	TenantID  string `db:"tenant_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	City      string `db:"city"`
	State     string `db:"state"`
	ZipCode   string `db:"zip_code"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func (r customerRow) toEntity() (*entity.Customer, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Customer{
		ID: r.ID, TenantID: r.TenantID, Name: r.Name, Email: r.Email, Phone: r.Phone,
		Address: r.Address, City: r.City, State: r.State, ZipCode: r.ZipCode,
		CreatedAt: created, UpdatedAt: updated,
	}, nil
}

// CustomerRepo implementación de CustomerRepository sobre SQLite.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el repositorio. Pasar *sqlx.DB o *sqlx.Tx.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.ZipCode,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	var row customerRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return row.toEntity()
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE customers SET name = ?, email = ?, phone = ?, address = ?, city = ?, state = ?,
			zip_code = ?, updated_at = ?
		WHERE tenant_id = ? AND id = ?`,
		c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.ZipCode, formatTime(c.UpdatedAt),
		c.TenantID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *CustomerRepo) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return checkAffected(res, domain.ErrNotFound)
}

func (r *CustomerRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Customer, error) {
	var rows []customerRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = ? ORDER BY created_at, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	list := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := row.toEntity()
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, nil
}

func (r *CustomerRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM customers WHERE tenant_id = ?`, tenantID); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *CustomerRepo) ReplaceAll(ctx context.Context, tenantID string, customers []*entity.Customer) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM customers WHERE tenant_id = ?`, tenantID); err != nil {
		return fmt.Errorf("replace customers: %w", err)
	}
	for _, c := range customers {
		row := *c
		row.TenantID = tenantID
		if err := r.Create(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}
