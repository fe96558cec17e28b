package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "R$ 0,00",
		"2.5":     "R$ 2,50",
		"1234.5":  "R$ 1.234,50",
		"1000000": "R$ 1.000.000,00",
		"-3":      "-R$ 3,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReportPDF(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	r := &dto.ReportResponse{
		Period:      "month",
		PeriodStart: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		GeneratedAt: now,
		Revenue:     decimal.RequireFromString("1234.50"),
		TotalSales:  2,
		TopProducts: []dto.TopProductDTO{{ProductID: "p1", ProductName: "Caneca", Quantity: 3, Revenue: decimal.RequireFromString("7.50")}},
		RecentSales: []dto.SaleResponse{{ID: "s1", CustomerName: "Maria", ProductName: "Caneca", Total: decimal.RequireFromString("5"), Status: "paid", Date: "2024-05-19"}},
		LowStockProducts: []dto.ProductResponse{{ID: "p1", Name: "Caneca", Quantity: 2, MinStock: 5}},
		StatusCounts:     dto.StatusCountsDTO{Paid: 1, Pending: 1},
	}

	b, err := NewMarotoReportGenerator().GenerateReportPDF(analytics.ReportDocument{TenantName: "Loja da Ana", Report: r})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateReportPDF_SinDatos(t *testing.T) {
	b, err := NewMarotoReportGenerator().GenerateReportPDF(analytics.ReportDocument{Report: &dto.ReportResponse{Period: "week"}})
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	_, err = NewMarotoReportGenerator().GenerateReportPDF(analytics.ReportDocument{})
	assert.Error(t, err)
}
