package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
	"github.com/jhoicas/stockpro-api/internal/application/auth"
	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/sales"
	"github.com/jhoicas/stockpro-api/internal/application/usecase"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/stockpro-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/stockpro-api/internal/interfaces/http"
)

type apiFixture struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := sqlite.NewUserRepository(db)
	products := sqlite.NewProductRepository(db)
	customers := sqlite.NewCustomerRepository(db)
	salesRepo := sqlite.NewSaleRepository(db)
	repos := appanalytics.Repos{Sales: salesRepo, Products: products, Customers: customers}

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(users, nil),
		ProductUC:  usecase.NewProductUseCase(products, users, nil, nil, nil),
		CustomerUC: usecase.NewCustomerUseCase(customers, users, nil, nil, nil),
		SaleUC: sales.NewSaleUseCase(sales.Deps{
			TxRunner:     sqlite.NewTxRunner(db),
			SaleRepo:     salesRepo,
			ProductRepo:  products,
			CustomerRepo: customers,
		}),
		ReportUC: appanalytics.NewReportUseCase(appanalytics.ReportDeps{
			Repos:    repos,
			UserRepo: users,
			PDF:      pdf.NewMarotoReportGenerator(),
			XML:      xmlexport.NewReportExporter(),
		}),
		DashboardUC: appanalytics.NewDashboardUseCase(repos, nil),
		JWTSecret:   testJWTSecret,
	})
	return &apiFixture{app: app, authUC: authUC}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

// signup registra y hace login; devuelve el token.
func (f *apiFixture) signup(t *testing.T, email string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: email, Password: "segredo123", Company: "Loja da Ana",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "segredo123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestRouter_FlujoDeVenta(t *testing.T) {
	f := newAPI(t)
	token := f.signup(t, "ana@example.com")

	resp := f.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Caneca", "category": "Casa", "price": "2.50", "quantity": 5, "min_stock": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	decode(t, resp, &product)

	resp = f.do(t, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{Name: "Maria"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var customer dto.CustomerResponse
	decode(t, resp, &customer)

	sale := dto.SaleRequest{CustomerID: customer.ID, ProductID: product.ID, Quantity: 2, Status: "paid", Date: "2024-05-20"}
	resp = f.do(t, http.MethodPost, "/api/sales", token, sale)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.SaleResponse
	decode(t, resp, &created)
	assert.True(t, decimal.NewFromInt(5).Equal(created.Total), created.Total.String())

	resp = f.do(t, http.MethodGet, "/api/products/"+product.ID, token, nil)
	var after dto.ProductResponse
	decode(t, resp, &after)
	assert.Equal(t, 3, after.Quantity)

	sale.Quantity = 4
	resp = f.do(t, http.MethodPost, "/api/sales", token, sale)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errBody struct {
		Code    string           `json:"code"`
		Details dto.StockDetails `json:"details"`
	}
	decode(t, resp, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.Equal(t, 3, errBody.Details.Available)
	assert.Equal(t, 4, errBody.Details.Requested)

	resp = f.do(t, http.MethodPatch, "/api/sales/"+created.ID+"/status", token, dto.UpdateSaleStatusRequest{Status: "overdue"})
	var patched dto.SaleResponse
	decode(t, resp, &patched)
	assert.Equal(t, "overdue", patched.Status)

	resp = f.do(t, http.MethodGet, "/api/sales?status=overdue&search=maria", token, nil)
	var list dto.SaleListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Total)

	resp = f.do(t, http.MethodDelete, "/api/sales/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = f.do(t, http.MethodGet, "/api/sales/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Validacion(t *testing.T) {
	f := newAPI(t)
	token := f.signup(t, "val@example.com")

	resp := f.do(t, http.MethodPost, "/api/sales", token, map[string]any{"quantity": 0, "status": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)

	resp = f.do(t, http.MethodPost, "/api/sales", token, dto.SaleRequest{
		CustomerID: "nope", ProductID: "nope", Quantity: 1, Status: "paid", Date: "2024-05-20",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "INVALID_REFERENCE", body.Code)

	resp = f.do(t, http.MethodPut, "/api/products/inexistente", token, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_AislamientoEntreTenants(t *testing.T) {
	f := newAPI(t)
	ana := f.signup(t, "ana@example.com")
	bia := f.signup(t, "bia@example.com")

	resp := f.do(t, http.MethodPost, "/api/customers", ana, dto.CreateCustomerRequest{Name: "Maria"})
	var c dto.CustomerResponse
	decode(t, resp, &c)

	resp = f.do(t, http.MethodGet, "/api/customers/"+c.ID, bia, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/customers", bia, nil)
	var list dto.CustomerListResponse
	decode(t, resp, &list)
	assert.Empty(t, list.Items)
	require.NotNil(t, list.Limit)
	assert.Equal(t, 20, *list.Limit)
}

func TestRouter_PerfilYAdmin(t *testing.T) {
	f := newAPI(t)
	token := f.signup(t, "ana@example.com")

	resp := f.do(t, http.MethodGet, "/api/me", token, nil)
	var me dto.UserResponse
	decode(t, resp, &me)
	assert.Equal(t, "ana@example.com", me.Email)

	resp = f.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	_, err := f.authUC.EnsureAdmin(context.Background(), "root@example.com", "rootroot")
	require.NoError(t, err)
	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "root@example.com", Password: "rootroot"})
	var login dto.LoginResponse
	decode(t, resp, &login)

	resp = f.do(t, http.MethodPatch, "/api/admin/users/"+me.ID+"/plan", login.Token, dto.UpdatePlanRequest{Plan: "premium"})
	var upgraded dto.UserResponse
	decode(t, resp, &upgraded)
	assert.Equal(t, "premium", upgraded.Plan)

	resp = f.do(t, http.MethodPatch, "/api/admin/users/nope/plan", login.Token, dto.UpdatePlanRequest{Plan: "free"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_InformesYExportaciones(t *testing.T) {
	f := newAPI(t)
	token := f.signup(t, "ana@example.com")

	resp := f.do(t, http.MethodGet, "/api/reports?period=week", token, nil)
	var r dto.ReportResponse
	decode(t, resp, &r)
	assert.Equal(t, "week", r.Period)

	resp = f.do(t, http.MethodGet, "/api/reports/export.xml?period=year", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), `attachment; filename="reporte-year-`))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<Report")

	resp = f.do(t, http.MethodGet, "/api/reports/export.pdf", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = f.do(t, http.MethodGet, "/api/dashboard/summary", token, nil)
	var d dto.DashboardSummaryDTO
	decode(t, resp, &d)
	assert.Equal(t, 0, d.TotalSales)
}
