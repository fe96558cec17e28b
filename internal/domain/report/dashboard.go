package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

// dashboardLowStockThreshold umbral fijo del widget del dashboard; no usa MinStock.
const dashboardLowStockThreshold = 10

// Dashboard KPIs del tablero principal.
type Dashboard struct {
	TotalProducts  int
	TotalCustomers int
	TotalSales     int
	MonthlyRevenue decimal.Decimal // ventas pagadas con fecha en el mes calendario de now
	LowStock       int
	PendingSales   int
}

// BuildDashboard calcula los KPIs del tablero.
func BuildDashboard(sales []*entity.Sale, products []*entity.Product, customers []*entity.Customer, now time.Time) Dashboard {
	d := Dashboard{
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
		TotalSales:     len(sales),
		MonthlyRevenue: decimal.Zero,
	}
	loc := now.Location()
	for _, s := range sales {
		if s.Status == entity.SaleStatusPending {
			d.PendingSales++
		}
		if s.Status != entity.SaleStatusPaid {
			continue
		}
		date := s.Date.In(loc)
		if date.Year() == now.Year() && date.Month() == now.Month() {
			d.MonthlyRevenue = d.MonthlyRevenue.Add(s.Total)
		}
	}
	for _, p := range products {
		if p.Quantity <= dashboardLowStockThreshold {
			d.LowStock++
		}
	}
	return d
}
