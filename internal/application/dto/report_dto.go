package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportResponse respuesta de GET /api/reports.
//
// sales, revenue, total_sales, new_customers, new_products, top_products y status_counts
// dependen del periodo; recent_sales y low_stock_products son globales.
type ReportResponse struct {
	Period           string            `json:"period"`
	PeriodStart      time.Time         `json:"period_start"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Sales            []SaleResponse    `json:"sales"`
	Revenue          decimal.Decimal   `json:"revenue"`
	TotalSales       int               `json:"total_sales"`
	NewCustomers     int               `json:"new_customers"`
	NewProducts      int               `json:"new_products"`
	TopProducts      []TopProductDTO   `json:"top_products"`
	RecentSales      []SaleResponse    `json:"recent_sales"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
	StatusCounts     StatusCountsDTO   `json:"status_counts"`
}

// TopProductDTO acumulado de un producto en el ranking del periodo.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// StatusCountsDTO ventas del periodo por estado.
type StatusCountsDTO struct {
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}
