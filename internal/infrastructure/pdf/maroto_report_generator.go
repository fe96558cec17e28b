// Package pdf genera el informe de periodo en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tenant + periodo    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingresos | Ventas | Clientes nuevos | Productos nuevos│
//	│  ESTADOS: pagadas / pendientes / vencidas                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP PRODUCTOS: # | Producto | Cant. | Ingresos              │
//	│  VENTAS RECIENTES: Fecha | Cliente | Producto | Total | Est. │
//	│  STOCK BAJO: Producto | Stock | Mínimo                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

var _ analytics.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var periodLabels = map[string]string{
	"week":    "Últimos 7 días",
	"month":   "Mes actual",
	"quarter": "Trimestre actual",
	"year":    "Año actual",
}

var statusLabels = map[string]string{
	"paid":    "Pagada",
	"pending": "Pendiente",
	"overdue": "Vencida",
}

// MarotoReportGenerator implementa analytics.ReportPDFGenerator.
type MarotoReportGenerator struct{}

func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(doc analytics.ReportDocument) ([]byte, error) {
	if doc.Report == nil {
		return nil, fmt.Errorf("pdf: informe vacío")
	}
	r := doc.Report
	tenant := nonEmpty(doc.TenantName, "StockPro")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de ventas", true).
		WithAuthor(tenant, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tenant, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r))
	m.AddRows(statusRow(r.StatusCounts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(topProductRows(r.TopProducts)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("VENTAS RECIENTES"))
	m.AddRows(recentSaleRows(r.RecentSales)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("PRODUCTOS CON STOCK BAJO"))
	m.AddRows(lowStockRows(r.LowStockProducts)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(tenant string, r *dto.ReportResponse) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe: "+nonEmpty(periodLabels[r.Period], r.Period), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Desde: "+r.PeriodStart.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func kpiRow(r *dto.ReportResponse) core.Row {
	kpi := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		kpi("Ingresos (pagadas)", formatMoney(r.Revenue)),
		kpi("Ventas", fmt.Sprint(r.TotalSales)),
		kpi("Clientes nuevos", fmt.Sprint(r.NewCustomers)),
		kpi("Productos nuevos", fmt.Sprint(r.NewProducts)),
	)
}

func statusRow(c dto.StatusCountsDTO) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Pagadas: %d   |   Pendientes: %d   |   Vencidas: %d", c.Paid, c.Pending, c.Overdue),
			props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
	))
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

// tableHeader arma una cabecera con los tamaños de columna dados (suman 12).
func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Left
		if i > 0 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Left
		if i > 0 {
			a = align.Right
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func topProductRows(items []dto.TopProductDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin ventas en el periodo.")}
	}
	sizes := []int{6, 3, 3}
	rows := []core.Row{tableHeader([]string{"Producto", "Cantidad", "Ingresos"}, sizes)}
	for i, p := range items {
		rows = append(rows, tableRow([]string{
			fmt.Sprintf("%d. %s", i+1, p.ProductName),
			fmt.Sprint(p.Quantity),
			formatMoney(p.Revenue),
		}, sizes, nil))
	}
	return rows
}

func recentSaleRows(items []dto.SaleResponse) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin ventas registradas.")}
	}
	sizes := []int{2, 3, 3, 2, 2}
	rows := []core.Row{tableHeader([]string{"Fecha", "Cliente", "Producto", "Total", "Estado"}, sizes)}
	for _, s := range items {
		rows = append(rows, tableRow([]string{
			s.Date,
			s.CustomerName,
			s.ProductName,
			formatMoney(s.Total),
			nonEmpty(statusLabels[s.Status], s.Status),
		}, sizes, nil))
	}
	return rows
}

func lowStockRows(items []dto.ProductResponse) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Ningún producto por debajo del mínimo.")}
	}
	sizes := []int{8, 2, 2}
	rows := []core.Row{tableHeader([]string{"Producto", "Stock", "Mínimo"}, sizes)}
	for _, p := range items {
		rows = append(rows, tableRow([]string{
			p.Name, fmt.Sprint(p.Quantity), fmt.Sprint(p.MinStock),
		}, sizes, colorWarn))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea en reales con puntos de miles y coma decimal.
// Ej: 1234.5 → "R$ 1.234,50", -3 → "-R$ 3,00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	intPart, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string de dígitos.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
