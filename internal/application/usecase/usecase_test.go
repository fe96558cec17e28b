package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/plan"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

var (
	now   = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	clock = ports.ClockFunc(func() time.Time { return now })
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlx.DB, id, email, tier string) {
	t.Helper()
	require.NoError(t, sqlite.NewUserRepository(db).Create(context.Background(), &entity.User{
		ID: id, Email: email, PasswordHash: "x", Name: id, Role: entity.RoleUser, Plan: tier,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func productReq(name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: name, Category: entity.CategoryElectronics,
		Price: decimal.RequireFromString("99.90"), Quantity: 5,
	}
}

func TestProductCreate_DefaultMinStockYValidacion(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewUserRepository(db), nil, clock, nil)
	ctx := context.Background()

	out, err := uc.Create(ctx, "t1", productReq("Fone"))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultMinStock, out.MinStock)
	assert.True(t, out.LowStock, "5 <= 10")

	bad := productReq("Negativo")
	bad.Price = decimal.RequireFromString("-1")
	_, err = uc.Create(ctx, "t1", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CupoDelPlanFree(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	products := sqlite.NewProductRepository(db)
	for i := 0; i < plan.FreeProductLimit; i++ {
		p := &entity.Product{
			ID: fmt.Sprintf("p%02d", i), TenantID: "t1", Name: "x",
			Price: decimal.Zero, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, products.Create(context.Background(), p))
	}
	uc := usecase.NewProductUseCase(products, sqlite.NewUserRepository(db), nil, clock, nil)

	_, err := uc.Create(context.Background(), "t1", productReq("Uno más"))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	list, err := uc.List(context.Background(), "t1", dto.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, plan.FreeProductLimit, list.Count)
	require.NotNil(t, list.Limit)
	assert.Equal(t, plan.FreeProductLimit, *list.Limit)
}

func TestProductCreate_PremiumSinLimite(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanPremium)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewUserRepository(db), nil, clock, nil)

	_, err := uc.Create(context.Background(), "t1", productReq("Fone"))
	require.NoError(t, err)
	list, err := uc.List(context.Background(), "t1", dto.ProductFilter{})
	require.NoError(t, err)
	assert.Nil(t, list.Limit)
}

func TestProductList_BusquedaYCategoria(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewUserRepository(db), nil, clock, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, "t1", productReq("Fone de ouvido"))
	require.NoError(t, err)
	book := productReq("Dom Casmurro")
	book.Category = entity.CategoryBooks
	_, err = uc.Create(ctx, "t1", book)
	require.NoError(t, err)

	out, err := uc.List(ctx, "t1", dto.ProductFilter{Search: "ELETRONICOS"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "busca también en categoría, sin acentos")
	assert.Equal(t, "Fone de ouvido", out.Items[0].Name)

	out, err = uc.List(ctx, "t1", dto.ProductFilter{Category: entity.CategoryBooks})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Count)
}

func TestProductUpdateYDelete(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	uc := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewUserRepository(db), nil, clock, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, "t1", productReq("Fone"))
	require.NoError(t, err)

	qty := 50
	updated, err := uc.Update(ctx, "t1", created.ID, dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Quantity)
	assert.False(t, updated.LowStock)

	missing, err := uc.Update(ctx, "t1", "nope", dto.UpdateProductRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, uc.Delete(ctx, "t1", created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "t1", created.ID), domain.ErrNotFound)
}

func TestCustomerCreate_CupoYBusqueda(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	uc := usecase.NewCustomerUseCase(sqlite.NewCustomerRepository(db), sqlite.NewUserRepository(db), nil, clock, nil)
	ctx := context.Background()

	for i := 0; i < plan.FreeCustomerLimit; i++ {
		_, err := uc.Create(ctx, "t1", dto.CreateCustomerRequest{Name: "Cliente", Phone: "1199"})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, "t1", dto.CreateCustomerRequest{Name: "Sobra"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	out, err := uc.List(ctx, "t1", "1199")
	require.NoError(t, err)
	assert.Len(t, out.Items, plan.FreeCustomerLimit)
	assert.Equal(t, plan.FreeCustomerLimit, out.Count)
}

type brokenCache struct{ ports.NopReportCache }

func (brokenCache) Invalidate(context.Context, string) error { return errors.New("redis caído") }

func TestCacheCaida_NoRompeYQuedaEnElLog(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "t1", "a@a.com", entity.PlanFree)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	products := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewUserRepository(db), brokenCache{}, clock, log)
	customers := usecase.NewCustomerUseCase(sqlite.NewCustomerRepository(db), sqlite.NewUserRepository(db), brokenCache{}, clock, log)
	ctx := context.Background()

	_, err := products.Create(ctx, "t1", productReq("Fone"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no se pudo invalidar la caché de informes")
	assert.Contains(t, buf.String(), `"tenant_id":"t1"`)
	assert.Contains(t, buf.String(), "redis caído")

	buf.Reset()
	_, err = customers.Create(ctx, "t1", dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no se pudo invalidar la caché de informes")
}

func TestUserUseCase_PerfilYPlan(t *testing.T) {
	db := memdb(t)
	seedUser(t, db, "u1", "a@a.com", entity.PlanFree)
	seedUser(t, db, "u2", "b@b.com", entity.PlanFree)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db), clock)
	ctx := context.Background()

	taken := "B@B.com"
	_, err := uc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	company := "Loja da Ana"
	out, err := uc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, company, out.Company)

	up, err := uc.SetPlan(ctx, "u2", dto.UpdatePlanRequest{Plan: entity.PlanPremium})
	require.NoError(t, err)
	assert.True(t, up.IsPremium)

	_, err = uc.SetPlan(ctx, "nope", dto.UpdatePlanRequest{Plan: entity.PlanPremium})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	list, err := uc.ListForAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Premium)
	assert.Equal(t, 1, list.Free)
}
