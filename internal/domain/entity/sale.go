package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusPaid    = "paid"
	SaleStatusPending = "pending"
	SaleStatusOverdue = "overdue"
)

// IsValidSaleStatus informa si s es uno de los estados Sale*.
func IsValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPaid, SaleStatusPending, SaleStatusOverdue:
		return true
	}
	return false
}

// SaleSnapshot copia de los datos de cliente y producto en el momento de la venta.
// No se sincroniza con Product ni Customer: conserva el valor histórico aunque
// el producto se renombre, cambie de precio o se elimine.
type SaleSnapshot struct {
	CustomerName string
	ProductName  string
	UnitPrice    decimal.Decimal
}

// Sale representa una venta registrada contra el stock de un producto.
// CustomerID y ProductID son referencias blandas (sin FK): solo se resuelven al confirmar.
type Sale struct {
	ID         string
	TenantID   string
	CustomerID string
	ProductID  string
	Snapshot   SaleSnapshot
	Quantity   int             // >= 1
	Total      decimal.Decimal // Snapshot.UnitPrice * Quantity
	Status     string          // paid, pending, overdue
	Date       time.Time       // fecha de negocio, editable
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
