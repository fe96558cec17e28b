// Package inventory contiene la lógica pura de confirmación de ventas contra el stock.
package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// SaleDraft datos de venta enviados por el usuario, antes de resolver referencias.
type SaleDraft struct {
	TenantID   string
	CustomerID string
	ProductID  string
	Quantity   int
	Status     string
	Date       time.Time
}

// CommitResult venta confirmada y colección de productos resultante.
// Products es un slice nuevo; el producto descontado es una copia.
type CommitResult struct {
	Sale         *entity.Sale
	Products     []*entity.Product
	Product      *entity.Product // producto resuelto (copia con el stock final)
	StockChanged bool
}

// CommitSale valida el borrador contra las colecciones del tenant y construye la venta.
//
// existing nil indica alta: se exige stock suficiente y se descuenta Quantity del producto.
// Con existing se trata de una edición: se recalcula el snapshot pero nunca se toca el stock.
// Toda validación ocurre antes de modificar nada; las entradas no se mutan.
func CommitSale(
	draft SaleDraft,
	products []*entity.Product,
	customers []*entity.Customer,
	existing *entity.Sale,
	now time.Time,
	newID func() string,
) (*CommitResult, error) {
	if draft.Quantity < 1 || !entity.IsValidSaleStatus(draft.Status) {
		return nil, domain.ErrInvalidInput
	}

	customer := findCustomer(customers, draft.CustomerID)
	productIdx := findProduct(products, draft.ProductID)
	if customer == nil || productIdx < 0 {
		return nil, domain.ErrInvalidReference
	}
	product := products[productIdx]

	if existing == nil && draft.Quantity > product.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: draft.Quantity,
			Available: product.Quantity,
		}
	}

	sale := &entity.Sale{
		TenantID:   draft.TenantID,
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Snapshot: entity.SaleSnapshot{
			CustomerName: customer.Name,
			ProductName:  product.Name,
			UnitPrice:    product.Price,
		},
		Quantity:  draft.Quantity,
		Total:     product.Price.Mul(decimal.NewFromInt(int64(draft.Quantity))),
		Status:    draft.Status,
		Date:      draft.Date,
		UpdatedAt: now,
	}
	if existing != nil {
		sale.ID = existing.ID
		sale.CreatedAt = existing.CreatedAt
		if sale.TenantID == "" {
			sale.TenantID = existing.TenantID
		}
	} else {
		sale.ID = newID()
		sale.CreatedAt = now
	}

	updated := make([]*entity.Product, len(products))
	copy(updated, products)
	res := &CommitResult{Sale: sale, Products: updated, Product: product}
	if existing == nil {
		p := *product
		p.Quantity -= draft.Quantity
		p.UpdatedAt = now
		updated[productIdx] = &p
		res.Product = &p
		res.StockChanged = true
	}
	return res, nil
}

func findCustomer(customers []*entity.Customer, id string) *entity.Customer {
	for _, c := range customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func findProduct(products []*entity.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
