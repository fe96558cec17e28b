package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/xmlexport"
)

func TestExportReportXML(t *testing.T) {
	sale := dto.SaleResponse{
		ID: "s1", CustomerName: "Maria & Filhos", ProductName: "Caneca",
		UnitPrice: decimal.RequireFromString("2.5"), Quantity: 2, Total: decimal.RequireFromString("5"),
		Status: "paid", Date: "2024-05-19",
	}
	r := &dto.ReportResponse{
		Period:       "month",
		PeriodStart:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		GeneratedAt:  time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC),
		Sales:        []dto.SaleResponse{sale},
		Revenue:      decimal.RequireFromString("5"),
		TotalSales:   1,
		TopProducts:  []dto.TopProductDTO{{ProductID: "p1", ProductName: "Caneca", Quantity: 2, Revenue: decimal.RequireFromString("5")}},
		RecentSales:  []dto.SaleResponse{sale},
		StatusCounts: dto.StatusCountsDTO{Paid: 1},
	}

	b, err := xmlexport.NewReportExporter().ExportReportXML(analytics.ReportDocument{TenantName: "Loja", Report: r})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Report", root.Tag)
	assert.Equal(t, "month", root.SelectAttrValue("period", ""))
	assert.Equal(t, "Loja", root.SelectElement("Tenant").Text())
	assert.Equal(t, "5.00", doc.FindElement("/Report/Summary/Revenue").Text())
	assert.Equal(t, "1", doc.FindElement("/Report/Summary/StatusCounts").SelectAttrValue("paid", ""))
	assert.Equal(t, "Maria & Filhos", doc.FindElement("/Report/Sales/Sale/Customer").Text())
	assert.Equal(t, "1", doc.FindElement("/Report/TopProducts/Product").SelectAttrValue("rank", ""))
	assert.Empty(t, doc.FindElements("/Report/LowStockProducts/Product"))
}

func TestExportReportXML_SinInforme(t *testing.T) {
	_, err := xmlexport.NewReportExporter().ExportReportXML(analytics.ReportDocument{})
	assert.Error(t, err)
}
