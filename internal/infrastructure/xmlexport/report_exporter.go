// Package xmlexport serializa el informe de periodo a XML con etree.
package xmlexport

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

var _ analytics.ReportXMLExporter = (*ReportExporter)(nil)

// ReportExporter implementa analytics.ReportXMLExporter.
type ReportExporter struct{}

func NewReportExporter() *ReportExporter { return &ReportExporter{} }

// ExportReportXML produce un documento <Report> con resumen, ranking,
// ventas del periodo, ventas recientes y stock bajo.
func (e *ReportExporter) ExportReportXML(doc analytics.ReportDocument) ([]byte, error) {
	if doc.Report == nil {
		return nil, fmt.Errorf("xmlexport: informe vacío")
	}
	r := doc.Report

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("Report")
	root.CreateAttr("period", r.Period)
	root.CreateAttr("periodStart", r.PeriodStart.Format(time.RFC3339))
	root.CreateAttr("generatedAt", r.GeneratedAt.Format(time.RFC3339))
	if doc.TenantName != "" {
		root.CreateElement("Tenant").SetText(doc.TenantName)
	}

	summary := root.CreateElement("Summary")
	summary.CreateElement("Revenue").SetText(r.Revenue.StringFixed(2))
	summary.CreateElement("TotalSales").SetText(strconv.Itoa(r.TotalSales))
	summary.CreateElement("NewCustomers").SetText(strconv.Itoa(r.NewCustomers))
	summary.CreateElement("NewProducts").SetText(strconv.Itoa(r.NewProducts))
	status := summary.CreateElement("StatusCounts")
	status.CreateAttr("paid", strconv.Itoa(r.StatusCounts.Paid))
	status.CreateAttr("pending", strconv.Itoa(r.StatusCounts.Pending))
	status.CreateAttr("overdue", strconv.Itoa(r.StatusCounts.Overdue))

	top := root.CreateElement("TopProducts")
	for i, p := range r.TopProducts {
		el := top.CreateElement("Product")
		el.CreateAttr("rank", strconv.Itoa(i+1))
		el.CreateAttr("id", p.ProductID)
		el.CreateElement("Name").SetText(p.ProductName)
		el.CreateElement("Quantity").SetText(strconv.Itoa(p.Quantity))
		el.CreateElement("Revenue").SetText(p.Revenue.StringFixed(2))
	}

	addSales(root.CreateElement("Sales"), r.Sales)
	addSales(root.CreateElement("RecentSales"), r.RecentSales)

	low := root.CreateElement("LowStockProducts")
	for _, p := range r.LowStockProducts {
		el := low.CreateElement("Product")
		el.CreateAttr("id", p.ID)
		el.CreateElement("Name").SetText(p.Name)
		el.CreateElement("Category").SetText(p.Category)
		el.CreateElement("Quantity").SetText(strconv.Itoa(p.Quantity))
		el.CreateElement("MinStock").SetText(strconv.Itoa(p.MinStock))
	}

	x.Indent(2)
	var out bytes.Buffer
	if _, err := x.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func addSales(parent *etree.Element, sales []dto.SaleResponse) {
	parent.CreateAttr("count", strconv.Itoa(len(sales)))
	for _, s := range sales {
		el := parent.CreateElement("Sale")
		el.CreateAttr("id", s.ID)
		el.CreateAttr("status", s.Status)
		el.CreateAttr("date", s.Date)
		el.CreateElement("Customer").SetText(s.CustomerName)
		el.CreateElement("Product").SetText(s.ProductName)
		el.CreateElement("UnitPrice").SetText(s.UnitPrice.StringFixed(2))
		el.CreateElement("Quantity").SetText(strconv.Itoa(s.Quantity))
		el.CreateElement("Total").SetText(s.Total.StringFixed(2))
	}
}
