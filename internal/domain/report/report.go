package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
)

const (
	topProductsLimit = 5
	recentSalesLimit = 5
)

// ProductSales acumulado de ventas de un producto dentro del periodo.
// ProductName proviene del snapshot de la primera venta del grupo.
type ProductSales struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// StatusCounts ventas del periodo por estado.
type StatusCounts struct {
	Paid    int
	Pending int
	Overdue int
}

// Report resultado del motor de agregación.
//
// PeriodSales, Revenue, TotalSales, NewCustomers, NewProducts, TopProducts y StatusCounts
// dependen del periodo. RecentSales y LowStockProducts son globales.
type Report struct {
	Period           Period
	Start            time.Time
	PeriodSales      []*entity.Sale
	Revenue          decimal.Decimal
	TotalSales       int
	NewCustomers     int
	NewProducts      int
	TopProducts      []ProductSales
	RecentSales      []*entity.Sale
	LowStockProducts []*entity.Product
	StatusCounts     StatusCounts
}

// Build calcula el informe de un tenant. No modifica los slices de entrada
// y es determinista: mismas entradas, mismo informe.
func Build(sales []*entity.Sale, products []*entity.Product, customers []*entity.Customer, period Period, now time.Time) Report {
	start := ResolvePeriodStart(period, now)

	r := Report{
		Period:      period,
		Start:       start,
		PeriodSales: make([]*entity.Sale, 0),
		Revenue:     decimal.Zero,
		TopProducts: make([]ProductSales, 0),
	}

	groups := make([]ProductSales, 0)
	index := make(map[string]int)
	for _, s := range sales {
		if s.Date.Before(start) {
			continue
		}
		r.PeriodSales = append(r.PeriodSales, s)
		switch s.Status {
		case entity.SaleStatusPaid:
			r.Revenue = r.Revenue.Add(s.Total)
			r.StatusCounts.Paid++
		case entity.SaleStatusPending:
			r.StatusCounts.Pending++
		case entity.SaleStatusOverdue:
			r.StatusCounts.Overdue++
		}

		if i, ok := index[s.ProductID]; ok {
			groups[i].Quantity += s.Quantity
			groups[i].Revenue = groups[i].Revenue.Add(s.Total)
			continue
		}
		index[s.ProductID] = len(groups)
		groups = append(groups, ProductSales{
			ProductID:   s.ProductID,
			ProductName: s.Snapshot.ProductName,
			Quantity:    s.Quantity,
			Revenue:     s.Total,
		})
	}
	r.TotalSales = len(r.PeriodSales)

	for _, c := range customers {
		if !c.CreatedAt.Before(start) {
			r.NewCustomers++
		}
	}
	for _, p := range products {
		if !p.CreatedAt.Before(start) {
			r.NewProducts++
		}
	}
	r.LowStockProducts = LowStock(products)

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Quantity > groups[j].Quantity
	})
	r.TopProducts = append(r.TopProducts, groups[:min(len(groups), topProductsLimit)]...)

	r.RecentSales = RecentSales(sales, recentSalesLimit)
	return r
}

// RecentSales devuelve hasta limit ventas ordenadas por CreatedAt descendente,
// sin filtrar por periodo. Empates conservan el orden de entrada.
func RecentSales(sales []*entity.Sale, limit int) []*entity.Sale {
	sorted := make([]*entity.Sale, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// LowStock filtra los productos con Quantity <= MinStock.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
