package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/report"
)

func TestBuildDashboard(t *testing.T) {
	thisMonth := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2023, time.May, 2, 0, 0, 0, 0, time.UTC)
	sales := []*entity.Sale{
		newSale("1", "p", "P", 1, "10", entity.SaleStatusPaid, thisMonth, thisMonth),
		newSale("2", "p", "P", 1, "20", entity.SaleStatusPending, thisMonth, thisMonth),
		newSale("3", "p", "P", 1, "40", entity.SaleStatusPaid, lastYear, lastYear),
		newSale("4", "p", "P", 1, "80", entity.SaleStatusPending, lastYear, lastYear),
	}
	// el widget usa un umbral fijo de 10 unidades, no MinStock
	products := []*entity.Product{
		{ID: "a", Quantity: 10, MinStock: 0},
		{ID: "b", Quantity: 11, MinStock: 50},
		{ID: "c", Quantity: 0, MinStock: 0},
	}
	customers := []*entity.Customer{{ID: "x"}}

	d := report.BuildDashboard(sales, products, customers, testNow)

	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 1, d.TotalCustomers)
	assert.Equal(t, 4, d.TotalSales)
	assert.True(t, decimal.NewFromInt(10).Equal(d.MonthlyRevenue), "monthly=%s", d.MonthlyRevenue)
	assert.Equal(t, 2, d.LowStock)
	assert.Equal(t, 2, d.PendingSales)
}

func TestBuildDashboard_Vacio(t *testing.T) {
	d := report.BuildDashboard(nil, nil, nil, testNow)
	assert.Equal(t, report.Dashboard{MonthlyRevenue: decimal.Zero}, d)
}
