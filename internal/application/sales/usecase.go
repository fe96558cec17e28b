// Package sales contiene los casos de uso de ventas: alta con descuento de stock,
// edición, cambio de estado, borrado y listado.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/inventory"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/textsearch"
)

// SaleUseCase orquesta la confirmación de ventas contra el stock.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	cache        ports.ReportCache
	publisher    ports.EventPublisher
	clock        ports.Clock
	log          *logger.Logger
}

// Deps dependencias de SaleUseCase. Cache, Publisher, Clock y Log son opcionales.
type Deps struct {
	TxRunner     TxRunner
	SaleRepo     repository.SaleRepository
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	Cache        ports.ReportCache
	Publisher    ports.EventPublisher
	Clock        ports.Clock
	Log          *logger.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(d Deps) *SaleUseCase {
	uc := &SaleUseCase{
		txRunner:     d.TxRunner,
		saleRepo:     d.SaleRepo,
		productRepo:  d.ProductRepo,
		customerRepo: d.CustomerRepo,
		cache:        d.Cache,
		publisher:    d.Publisher,
		clock:        d.Clock,
		log:          d.Log,
	}
	if uc.cache == nil {
		uc.cache = ports.NopReportCache{}
	}
	if uc.publisher == nil {
		uc.publisher = ports.NopPublisher{}
	}
	if uc.clock == nil {
		uc.clock = ports.SystemClock{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// SaleEvent payload de los eventos sale.*.
type SaleEvent struct {
	TenantID string           `json:"tenant_id"`
	Sale     dto.SaleResponse `json:"sale"`
}

// StockEvent payload de stock.updated.
type StockEvent struct {
	TenantID  string    `json:"tenant_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	LowStock  bool      `json:"low_stock"`
	At        time.Time `json:"at"`
}

// Record registra una venta nueva: valida stock, descuenta y persiste venta + producto
// en una sola transacción.
func (uc *SaleUseCase) Record(ctx context.Context, tenantID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	return uc.commit(ctx, tenantID, "", in)
}

// Update edita una venta existente. Recalcula el snapshot con los datos actuales
// del producto y cliente pero nunca modifica el stock.
func (uc *SaleUseCase) Update(ctx context.Context, tenantID, saleID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.commit(ctx, tenantID, saleID, in)
}

func (uc *SaleUseCase) commit(ctx context.Context, tenantID, saleID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	now := uc.clock.Now()
	date, err := time.ParseInLocation(dto.DateLayout, in.Date, now.Location())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	draft := inventory.SaleDraft{
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Status:     in.Status,
		Date:       date,
	}

	var res *inventory.CommitResult
	err = uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error {
		var existing *entity.Sale
		if saleID != "" {
			s, err := saleRepo.GetByID(ctx, tenantID, saleID)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.ErrNotFound
			}
			existing = s
		} else if in.ProductID != "" {
			// Bloquea el producto antes de leer el stock: dos ventas concurrentes
			// del mismo producto se confirman una detrás de otra.
			if _, err := productRepo.GetForUpdate(ctx, tenantID, in.ProductID); err != nil {
				return err
			}
		}
		products, err := productRepo.ListByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		customers, err := customerRepo.ListByTenant(ctx, tenantID)
		if err != nil {
			return err
		}

		res, err = inventory.CommitSale(draft, products, customers, existing, now, newID)
		if err != nil {
			return err
		}
		if existing != nil {
			return saleRepo.Update(ctx, res.Sale)
		}
		if err := saleRepo.Create(ctx, res.Sale); err != nil {
			return err
		}
		return productRepo.UpdateQuantity(ctx, tenantID, res.Product.ID, res.Product.Quantity, now)
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToSaleResponse(res.Sale)
	uc.afterMutation(ctx, tenantID)
	topic := ports.TopicSaleUpdated
	if res.StockChanged {
		topic = ports.TopicSaleRecorded
	}
	uc.publish(ctx, topic, tenantID, SaleEvent{TenantID: tenantID, Sale: out})
	if res.StockChanged {
		uc.publish(ctx, ports.TopicStockUpdated, tenantID, StockEvent{
			TenantID:  tenantID,
			ProductID: res.Product.ID,
			Quantity:  res.Product.Quantity,
			MinStock:  res.Product.MinStock,
			LowStock:  res.Product.IsLowStock(),
			At:        now,
		})
	}
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("sale_id", out.ID).
		Bool("stock_changed", res.StockChanged).
		Msg("venta confirmada")
	return &out, nil
}

// UpdateStatus cambia solo el estado de la venta.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, tenantID, saleID string, in dto.UpdateSaleStatusRequest) (*dto.SaleResponse, error) {
	if !entity.IsValidSaleStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock.Now()
	if err := uc.saleRepo.UpdateStatus(ctx, tenantID, saleID, in.Status, now); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToSaleResponse(sale)
	uc.afterMutation(ctx, tenantID)
	uc.publish(ctx, ports.TopicSaleUpdated, tenantID, SaleEvent{TenantID: tenantID, Sale: out})
	return &out, nil
}

// Delete elimina la venta. El stock descontado al registrarla no se restaura.
func (uc *SaleUseCase) Delete(ctx context.Context, tenantID, saleID string) error {
	if err := uc.saleRepo.Delete(ctx, tenantID, saleID); err != nil {
		return err
	}
	uc.afterMutation(ctx, tenantID)
	uc.publish(ctx, ports.TopicSaleDeleted, tenantID, map[string]string{"tenant_id": tenantID, "sale_id": saleID})
	return nil
}

// GetByID devuelve (nil, nil) si la venta no existe en el tenant.
func (uc *SaleUseCase) GetByID(ctx context.Context, tenantID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	out := dto.ToSaleResponse(sale)
	return &out, nil
}

// List lista las ventas del tenant, más recientes primero.
// La búsqueda usa los nombres vivos de cliente y producto; si la referencia ya no
// existe se usa el nombre del snapshot.
func (uc *SaleUseCase) List(ctx context.Context, tenantID string, f dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	matcher := textsearch.NewMatcher(f.Search)
	var productNames, customerNames map[string]string
	if !matcher.Empty() {
		if productNames, customerNames, err = uc.liveNames(ctx, tenantID); err != nil {
			return nil, err
		}
	}
	status := f.Status
	if status == "all" {
		status = ""
	}

	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		if status != "" && s.Status != status {
			continue
		}
		if !matcher.Empty() {
			customer, ok := customerNames[s.CustomerID]
			if !ok {
				customer = s.Snapshot.CustomerName
			}
			product, ok := productNames[s.ProductID]
			if !ok {
				product = s.Snapshot.ProductName
			}
			if !matcher.Match(customer, product) {
				continue
			}
		}
		items = append(items, dto.ToSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}

func (uc *SaleUseCase) liveNames(ctx context.Context, tenantID string) (products, customers map[string]string, err error) {
	pl, err := uc.productRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	cl, err := uc.customerRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	products = make(map[string]string, len(pl))
	for _, p := range pl {
		products[p.ID] = p.Name
	}
	customers = make(map[string]string, len(cl))
	for _, c := range cl {
		customers[c.ID] = c.Name
	}
	return products, customers, nil
}

func (uc *SaleUseCase) afterMutation(ctx context.Context, tenantID string) {
	if err := uc.cache.Invalidate(ctx, tenantID); err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo invalidar la caché de informes")
	}
}

// publish es best-effort: la venta ya está confirmada.
func (uc *SaleUseCase) publish(ctx context.Context, topic, tenantID string, payload any) {
	if err := uc.publisher.Publish(ctx, topic, tenantID, payload); err != nil {
		uc.log.Warn().Err(err).Str("topic", topic).Str("tenant_id", tenantID).Msg("evento no publicado")
	}
}

func newID() string { return uuid.New().String() }
