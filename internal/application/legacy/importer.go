package legacy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// Summary resultado de la importación.
type Summary struct {
	Users     int
	Skipped   int // usuarios cuyo email ya existía (sus datos se importan igual)
	Products  int
	Customers int
	Sales     int
}

// Importer vuelca un Dump en el almacenamiento mediante ReplaceAll por tenant.
type Importer struct {
	tx    ImportTxRunner
	clock ports.Clock
	log   *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(tx ImportTxRunner, clock ports.Clock, log *logger.Logger) *Importer {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{tx: tx, clock: clock, log: log}
}

// Import crea los usuarios (rehasheando la password con bcrypt) y reemplaza las
// colecciones de cada uno. Todo en una transacción.
func (im *Importer) Import(ctx context.Context, d *Dump) (Summary, error) {
	var sum Summary
	now := im.clock.Now()
	loc := now.Location()

	err := im.tx.RunImport(ctx, func(
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error {
		sum = Summary{}
		for _, lu := range d.Users {
			tenantID, created, err := im.ensureUser(ctx, userRepo, lu, now, loc)
			if err != nil {
				return err
			}
			if created {
				sum.Users++
			} else {
				sum.Skipped++
			}
			data, ok := d.Tenants[lu.ID]
			if !ok {
				continue
			}
			products := convertProducts(tenantID, data.Products, now, loc)
			customers := convertCustomers(tenantID, data.Customers, now, loc)
			sales := convertSales(tenantID, data.Sales, now, loc)
			if err := productRepo.ReplaceAll(ctx, tenantID, products); err != nil {
				return fmt.Errorf("productos de %s: %w", lu.Email, err)
			}
			if err := customerRepo.ReplaceAll(ctx, tenantID, customers); err != nil {
				return fmt.Errorf("clientes de %s: %w", lu.Email, err)
			}
			if err := saleRepo.ReplaceAll(ctx, tenantID, sales); err != nil {
				return fmt.Errorf("ventas de %s: %w", lu.Email, err)
			}
			sum.Products += len(products)
			sum.Customers += len(customers)
			sum.Sales += len(sales)
			im.log.Info().
				Str("email", lu.Email).
				Int("products", len(products)).
				Int("customers", len(customers)).
				Int("sales", len(sales)).
				Msg("tenant importado")
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (im *Importer) ensureUser(ctx context.Context, repo repository.UserRepository, lu User, now time.Time, loc *time.Location) (string, bool, error) {
	email := strings.ToLower(strings.TrimSpace(lu.Email))
	if email == "" {
		return "", false, fmt.Errorf("usuario %s sin email", lu.ID)
	}
	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return "", false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	password := lu.Password
	if password == "" {
		// sin password utilizable: la cuenta queda bloqueada hasta un reseteo
		password = uuid.New().String()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", false, err
	}
	tier := entity.PlanFree
	if lu.IsPremium || lu.Plan == entity.PlanPremium {
		tier = entity.PlanPremium
	}
	id := lu.ID
	if id == "" {
		id = uuid.New().String()
	}
	created := parseTime(lu.CreatedAt, now, loc)
	u := &entity.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		Name:         lu.Name,
		Phone:        lu.Phone,
		Company:      lu.Company,
		Role:         entity.RoleUser,
		Plan:         tier,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if err := repo.Create(ctx, u); err != nil {
		return "", false, err
	}
	return id, true, nil
}

func convertProducts(tenantID string, in []Product, now time.Time, loc *time.Location) []*entity.Product {
	out := make([]*entity.Product, 0, len(in))
	for _, p := range in {
		minStock := entity.DefaultMinStock
		if p.MinStock != nil {
			minStock = *p.MinStock
		}
		created := parseTime(p.CreatedAt, now, loc)
		out = append(out, &entity.Product{
			ID:          orNewID(p.ID),
			TenantID:    tenantID,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    max(p.Quantity, 0),
			MinStock:    max(minStock, 0),
			CreatedAt:   created,
			UpdatedAt:   parseTime(p.UpdatedAt, created, loc),
		})
	}
	return out
}

func convertCustomers(tenantID string, in []Customer, now time.Time, loc *time.Location) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(in))
	for _, c := range in {
		created := parseTime(c.CreatedAt, now, loc)
		out = append(out, &entity.Customer{
			ID:        orNewID(c.ID),
			TenantID:  tenantID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Address:   c.Address,
			City:      c.City,
			State:     c.State,
			ZipCode:   c.ZipCode,
			CreatedAt: created,
			UpdatedAt: parseTime(c.UpdatedAt, created, loc),
		})
	}
	return out
}

// convertSales conserva el snapshot tal cual: no se recalcula contra el catálogo actual.
func convertSales(tenantID string, in []Sale, now time.Time, loc *time.Location) []*entity.Sale {
	out := make([]*entity.Sale, 0, len(in))
	for _, s := range in {
		status := s.Status
		if !entity.IsValidSaleStatus(status) {
			status = entity.SaleStatusPending
		}
		created := parseTime(s.CreatedAt, now, loc)
		out = append(out, &entity.Sale{
			ID:         orNewID(s.ID),
			TenantID:   tenantID,
			CustomerID: s.CustomerID,
			ProductID:  s.ProductID,
			Snapshot: entity.SaleSnapshot{
				CustomerName: s.CustomerName,
				ProductName:  s.ProductName,
				UnitPrice:    s.UnitPrice,
			},
			Quantity:  max(s.Quantity, 1),
			Total:     s.Total,
			Status:    status,
			Date:      parseTime(s.Date, created, loc),
			CreatedAt: created,
			UpdatedAt: parseTime(s.UpdatedAt, created, loc),
		})
	}
	return out
}

// parseTime acepta RFC3339 (toISOString) o YYYY-MM-DD; si no puede, devuelve def.
func parseTime(s string, def time.Time, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc)
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t
	}
	return def
}

func orNewID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}
