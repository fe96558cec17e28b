package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var (
	commitNow  = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	saleDate   = time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	fixedNewID = func() string { return "sale-new" }
)

func fixtures() ([]*entity.Product, []*entity.Customer) {
	products := []*entity.Product{
		{ID: "p0", Name: "Camiseta", Price: decimal.RequireFromString("39.90"), Quantity: 3},
		{ID: "p1", Name: "Caneca", Price: decimal.RequireFromString("2.50"), Quantity: 10},
	}
	customers := []*entity.Customer{{ID: "c1", Name: "Maria"}}
	return products, customers
}

func draft(qty int) inventory.SaleDraft {
	return inventory.SaleDraft{
		TenantID:   "t1",
		CustomerID: "c1",
		ProductID:  "p1",
		Quantity:   qty,
		Status:     entity.SaleStatusPaid,
		Date:       saleDate,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_AltaDescuentaStock(t *testing.T) {
	products, customers := fixtures()

	res, err := inventory.CommitSale(draft(4), products, customers, nil, commitNow, fixedNewID)
	require.NoError(t, err)

	assert.Equal(t, "sale-new", res.Sale.ID)
	assert.True(t, decimal.RequireFromString("10.00").Equal(res.Sale.Total), "total=%s", res.Sale.Total)
	assert.Equal(t, entity.SaleSnapshot{
		CustomerName: "Maria",
		ProductName:  "Caneca",
		UnitPrice:    decimal.RequireFromString("2.50"),
	}, res.Sale.Snapshot)
	assert.Equal(t, commitNow, res.Sale.CreatedAt)
	assert.Equal(t, commitNow, res.Sale.UpdatedAt)
	assert.Equal(t, saleDate, res.Sale.Date)
	assert.Equal(t, "t1", res.Sale.TenantID)

	assert.True(t, res.StockChanged)
	require.Len(t, res.Products, 2)
	assert.Equal(t, 6, res.Products[1].Quantity)
	assert.Equal(t, 6, res.Product.Quantity)
	// la colección de entrada queda intacta
	assert.Equal(t, 10, products[1].Quantity)
	assert.Same(t, products[0], res.Products[0])
}

func TestCommitSale_AltaConsumeTodoElStock(t *testing.T) {
	products, customers := fixtures()
	res, err := inventory.CommitSale(draft(10), products, customers, nil, commitNow, fixedNewID)
	require.NoError(t, err)
	assert.Zero(t, res.Products[1].Quantity)
}

func TestCommitSale_StockInsuficiente(t *testing.T) {
	products, customers := fixtures()

	res, err := inventory.CommitSale(draft(11), products, customers, nil, commitNow, fixedNewID)

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Requested)
	assert.Equal(t, 10, products[1].Quantity)
}

func TestCommitSale_ReferenciaInvalida(t *testing.T) {
	products, customers := fixtures()

	d := draft(1)
	d.ProductID = "nope"
	_, err := inventory.CommitSale(d, products, customers, nil, commitNow, fixedNewID)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	d = draft(1)
	d.CustomerID = "nope"
	_, err = inventory.CommitSale(d, products, customers, nil, commitNow, fixedNewID)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestCommitSale_EntradaInvalida(t *testing.T) {
	products, customers := fixtures()

	_, err := inventory.CommitSale(draft(0), products, customers, nil, commitNow, fixedNewID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d := draft(1)
	d.Status = "cancelled"
	_, err = inventory.CommitSale(d, products, customers, nil, commitNow, fixedNewID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_EdicionNoTocaStock(t *testing.T) {
	products, customers := fixtures()
	created := commitNow.Add(-72 * time.Hour)
	existing := &entity.Sale{ID: "s-1", TenantID: "t1", Quantity: 2, CreatedAt: created}

	// más unidades que el stock disponible: en edición no se valida ni se descuenta
	res, err := inventory.CommitSale(draft(25), products, customers, existing, commitNow, fixedNewID)
	require.NoError(t, err)

	assert.Equal(t, "s-1", res.Sale.ID)
	assert.Equal(t, created, res.Sale.CreatedAt)
	assert.Equal(t, commitNow, res.Sale.UpdatedAt)
	assert.True(t, decimal.RequireFromString("62.5").Equal(res.Sale.Total))
	assert.False(t, res.StockChanged)
	assert.Equal(t, 10, res.Products[1].Quantity)
	assert.Same(t, products[1], res.Products[1])
}
