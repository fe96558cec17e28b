package legacy_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockpro-api/internal/application/legacy"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/sqlite"
)

// volcado con valores como string (formato localStorage) y como JSON directo
const dump = `{
  "stockpro_users": "[{\"id\":\"1700000000000\",\"name\":\"Ana\",\"email\":\"Ana@Loja.com\",\"password\":\"segredo1\",\"isPremium\":true,\"createdAt\":\"2024-01-10T12:00:00.000Z\"}]",
  "stockpro_products_1700000000000": [
    {"id":"p1","name":"Caneca","category":"Casa","price":2.5,"quantity":7,"createdAt":"2024-02-01T10:00:00.000Z"}
  ],
  "stockpro_customers_1700000000000": "[{\"id\":\"c1\",\"name\":\"Maria\",\"zipCode\":\"01000-000\"}]",
  "stockpro_sales_1700000000000": [
    {"id":"s1","customerId":"c1","productId":"p1","customerName":"Maria","productName":"Caneca antiga",
     "unitPrice":2.5,"quantity":2,"total":5,"status":"paid","date":"2024-03-05","createdAt":"2024-03-05T09:00:00.000Z"},
    {"id":"s2","customerId":"c1","productId":"p1","customerName":"Maria","productName":"Caneca",
     "unitPrice":2.5,"quantity":1,"total":2.5,"status":"cancelled","date":"2024-03-06"}
  ],
  "theme": "dark"
}`

var now = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

func TestParseDump(t *testing.T) {
	d, err := legacy.ParseDump(strings.NewReader(dump))
	require.NoError(t, err)

	require.Len(t, d.Users, 1)
	assert.True(t, d.Users[0].IsPremium)
	data := d.Tenants["1700000000000"]
	require.NotNil(t, data)
	assert.Len(t, data.Products, 1)
	assert.Nil(t, data.Products[0].MinStock)
	assert.Len(t, data.Customers, 1)
	assert.Len(t, data.Sales, 2)
}

func TestParseDump_JSONInvalido(t *testing.T) {
	_, err := legacy.ParseDump(strings.NewReader(`{"stockpro_users": "[{"}`))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	d, err := legacy.ParseDump(strings.NewReader(dump))
	require.NoError(t, err)
	im := legacy.NewImporter(sqlite.NewTxRunner(db), ports.ClockFunc(func() time.Time { return now }), nil)

	sum, err := im.Import(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, legacy.Summary{Users: 1, Products: 1, Customers: 1, Sales: 2}, sum)

	user, err := sqlite.NewUserRepository(db).GetByEmail(ctx, "ana@loja.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "1700000000000", user.ID)
	assert.True(t, user.IsPremium())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("segredo1")))

	p, err := sqlite.NewProductRepository(db).GetByID(ctx, user.ID, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.True(t, decimal.RequireFromString("2.5").Equal(p.Price))

	sales, err := sqlite.NewSaleRepository(db).ListByTenant(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	byID := map[string]*entity.Sale{}
	for _, s := range sales {
		byID[s.ID] = s
	}
	assert.Equal(t, "Caneca antiga", byID["s1"].Snapshot.ProductName, "el snapshot se conserva")
	assert.Equal(t, entity.SaleStatusPending, byID["s2"].Status, "estado desconocido pasa a pending")
	assert.Equal(t, "2024-03-05", byID["s1"].Date.Format("2006-01-02"))

	// reimportar reutiliza el usuario y reemplaza las colecciones
	sum, err = im.Import(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Users)
	assert.Equal(t, 1, sum.Skipped)
	n, err := sqlite.NewProductRepository(db).CountByTenant(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
