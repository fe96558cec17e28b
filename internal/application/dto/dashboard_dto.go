package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts  int             `json:"total_products"`
	TotalCustomers int             `json:"total_customers"`
	TotalSales     int             `json:"total_sales"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"` // ventas pagadas del mes calendario
	LowStock       int             `json:"low_stock_products"`
	PendingSales   int             `json:"pending_sales"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
