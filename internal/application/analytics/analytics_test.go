package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/sqlite"
)

var (
	now   = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	clock = ports.ClockFunc(func() time.Time { return now })
)

// memCache caché en memoria versionada, con contadores.
type memCache struct {
	entries map[string]*dto.ReportResponse
	version int64
	gets    int
	sets    int
	getErr  error
	// beforeSet se ejecuta una vez, entre el cálculo y la escritura.
	beforeSet func()
}

func newMemCache() *memCache { return &memCache{entries: map[string]*dto.ReportResponse{}} }

func memKey(tenantID string, version int64, period string) string {
	return fmt.Sprintf("%s/v%d/%s", tenantID, version, period)
}

func (c *memCache) GetReport(_ context.Context, tenantID, period string) (*dto.ReportResponse, int64, error) {
	c.gets++
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	return c.entries[memKey(tenantID, c.version, period)], c.version, nil
}

func (c *memCache) SetReport(_ context.Context, tenantID, period string, version int64, r *dto.ReportResponse) error {
	c.sets++
	if f := c.beforeSet; f != nil {
		c.beforeSet = nil
		f()
	}
	c.entries[memKey(tenantID, version, period)] = r
	return nil
}

func (c *memCache) Invalidate(context.Context, string) error {
	c.version++
	return nil
}

type fakePDF struct{ doc analytics.ReportDocument }

func (f *fakePDF) GenerateReportPDF(doc analytics.ReportDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.NewUserRepository(db).Create(ctx, &entity.User{
		ID: "t1", Email: "ana@loja.com", PasswordHash: "x", Name: "Ana", Company: "Loja da Ana",
		Role: entity.RoleUser, Plan: entity.PlanFree, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, sqlite.NewProductRepository(db).Create(ctx, &entity.Product{
		ID: "p1", TenantID: "t1", Name: "Caneca", Price: decimal.RequireFromString("2.50"),
		Quantity: 2, MinStock: 5, CreatedAt: now.AddDate(0, -3, 0), UpdatedAt: now,
	}))
	require.NoError(t, sqlite.NewCustomerRepository(db).Create(ctx, &entity.Customer{
		ID: "c1", TenantID: "t1", Name: "Maria", CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now,
	}))
	sales := sqlite.NewSaleRepository(db)
	mk := func(id, status string, qty int, created time.Time) *entity.Sale {
		price := decimal.RequireFromString("2.50")
		return &entity.Sale{
			ID: id, TenantID: "t1", CustomerID: "c1", ProductID: "p1",
			Snapshot: entity.SaleSnapshot{CustomerName: "Maria", ProductName: "Caneca", UnitPrice: price},
			Quantity: qty, Total: price.Mul(decimal.NewFromInt(int64(qty))), Status: status,
			Date: created, CreatedAt: created, UpdatedAt: created,
		}
	}
	require.NoError(t, sales.Create(ctx, mk("s1", entity.SaleStatusPaid, 2, now.AddDate(0, 0, -1))))
	require.NoError(t, sales.Create(ctx, mk("s2", entity.SaleStatusPending, 1, now.AddDate(0, 0, -3))))
	require.NoError(t, sales.Create(ctx, mk("s3", entity.SaleStatusPaid, 4, now.AddDate(0, -2, 0))))
	return db
}

func repos(db *sqlx.DB) analytics.Repos {
	return analytics.Repos{
		Sales:     sqlite.NewSaleRepository(db),
		Products:  sqlite.NewProductRepository(db),
		Customers: sqlite.NewCustomerRepository(db),
	}
}

func TestReportGenerate_MesYCache(t *testing.T) {
	db := seed(t)
	cache := newMemCache()
	uc := analytics.NewReportUseCase(analytics.ReportDeps{Repos: repos(db), Cache: cache, Clock: clock})

	out, err := uc.Generate(context.Background(), "t1", "month")
	require.NoError(t, err)

	assert.Equal(t, "month", out.Period)
	assert.Equal(t, 2, out.TotalSales)
	assert.True(t, decimal.RequireFromString("5").Equal(out.Revenue), "solo pagadas: %s", out.Revenue)
	assert.Equal(t, 1, out.NewCustomers)
	assert.Equal(t, 0, out.NewProducts)
	assert.Equal(t, 1, out.StatusCounts.Paid)
	assert.Equal(t, 1, out.StatusCounts.Pending)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, 3, out.TopProducts[0].Quantity)
	assert.Len(t, out.RecentSales, 3, "recientes son globales")
	require.Len(t, out.LowStockProducts, 1)
	assert.True(t, now.Equal(out.GeneratedAt))

	// segunda llamada sale de caché aunque cambie la base
	require.NoError(t, sqlite.NewSaleRepository(db).Delete(context.Background(), "t1", "s1"))
	again, err := uc.Generate(context.Background(), "t1", "MONTH")
	require.NoError(t, err)
	assert.Equal(t, 2, again.TotalSales)
}

func TestReportGenerate_PeriodoDesconocidoEsMes(t *testing.T) {
	uc := analytics.NewReportUseCase(analytics.ReportDeps{Repos: repos(seed(t)), Clock: clock})

	out, err := uc.Generate(context.Background(), "t1", "decade")
	require.NoError(t, err)
	assert.Equal(t, "month", out.Period)
}

func TestReportGenerate_CacheCaidaNoRompe(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	uc := analytics.NewReportUseCase(analytics.ReportDeps{Repos: repos(seed(t)), Cache: cache, Clock: clock})

	out, err := uc.Generate(context.Background(), "t1", "year")
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalSales)
	assert.Zero(t, cache.sets, "sin versión conocida no se escribe")
}

func TestReportGenerate_InvalidacionDuranteElCalculo(t *testing.T) {
	db := seed(t)
	cache := newMemCache()
	uc := analytics.NewReportUseCase(analytics.ReportDeps{Repos: repos(db), Cache: cache, Clock: clock})
	ctx := context.Background()

	// una venta se borra (e invalida la caché) después del cálculo y antes de guardarlo
	cache.beforeSet = func() {
		require.NoError(t, sqlite.NewSaleRepository(db).Delete(ctx, "t1", "s1"))
		require.NoError(t, cache.Invalidate(ctx, "t1"))
	}
	first, err := uc.Generate(ctx, "t1", "month")
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalSales)

	again, err := uc.Generate(ctx, "t1", "month")
	require.NoError(t, err)
	assert.Equal(t, 1, again.TotalSales, "el informe anterior a la invalidación no se sirve")
	assert.Equal(t, 2, cache.sets)

	// el recién calculado sí queda en caché
	_, err = uc.Generate(ctx, "t1", "month")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
}

func TestReportExportPDF_NombreYTenant(t *testing.T) {
	db := seed(t)
	pdf := &fakePDF{}
	uc := analytics.NewReportUseCase(analytics.ReportDeps{
		Repos: repos(db), UserRepo: sqlite.NewUserRepository(db), Clock: clock, PDF: pdf,
	})

	b, name, err := uc.ExportPDF(context.Background(), "t1", "week")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), b)
	assert.Equal(t, "reporte-week-20240520.pdf", name)
	assert.Equal(t, "Loja da Ana", pdf.doc.TenantName)

	_, _, err = uc.ExportXML(context.Background(), "t1", "week")
	assert.Error(t, err, "sin exportador XML configurado")
}

func TestDashboardSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(repos(seed(t)), clock)

	out, err := uc.GetSummary(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalProducts)
	assert.Equal(t, 1, out.TotalCustomers)
	assert.Equal(t, 3, out.TotalSales)
	assert.True(t, decimal.RequireFromString("5").Equal(out.MonthlyRevenue), "solo pagadas del mes: %s", out.MonthlyRevenue)
	assert.Equal(t, 1, out.LowStock)
	assert.Equal(t, 1, out.PendingSales)
	assert.Equal(t, "Mayo 2024", out.DateLabel)
}
