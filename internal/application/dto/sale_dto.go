package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de la fecha de negocio de una venta.
const DateLayout = "2006-01-02"

// SaleRequest entrada para registrar o editar una venta. Date en formato YYYY-MM-DD.
type SaleRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	ProductID  string `json:"product_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	Status     string `json:"status" validate:"required,oneof=paid pending overdue"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateSaleStatusRequest cambio de estado de una venta.
type UpdateSaleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid pending overdue"`
}

// SaleFilter filtros del listado. Status "all" o vacío no filtra.
type SaleFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

// SaleResponse salida de una venta con su snapshot histórico.
type SaleResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	ProductID    string          `json:"product_id"`
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SaleListResponse listado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
