package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/plan"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/textsearch"
)

// ProductUseCase casos de uso CRUD para productos. El alta respeta el cupo del plan.
type ProductUseCase struct {
	repo     repository.ProductRepository
	userRepo repository.UserRepository
	cache    ports.ReportCache
	clock    ports.Clock
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache, clock y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, userRepo repository.UserRepository, cache ports.ReportCache, clock ports.Clock, log *logger.Logger) *ProductUseCase {
	if cache == nil {
		cache = ports.NopReportCache{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, userRepo: userRepo, cache: cache, clock: clock, log: log}
}

// Create crea un nuevo producto. Devuelve ErrQuotaExceeded si el plan free ya tiene 50.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := checkQuota(ctx, uc.userRepo, tenantID, plan.KindProduct, uc.repo.CountByTenant); err != nil {
		return nil, err
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	now := uc.clock.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		MinStock:    minStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log, tenantID)
	out := dto.ToProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto del tenant; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// Update actualiza un producto. Las ediciones no consumen cupo.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log, tenantID)
	out := dto.ToProductResponse(product)
	return &out, nil
}

// List lista los productos del tenant con filtros de búsqueda (nombre o categoría) y categoría.
// Count y Limit reflejan el total del tenant, no el resultado filtrado.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	matcher := textsearch.NewMatcher(f.Search)
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if f.Category != "" && f.Category != "all" && !textsearch.Equal(p.Category, f.Category) {
			continue
		}
		if !matcher.Match(p.Name, p.Category) {
			continue
		}
		items = append(items, dto.ToProductResponse(p))
	}
	limit, err := quotaLimit(ctx, uc.userRepo, tenantID, plan.KindProduct)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: items, Count: len(list), Limit: limit}, nil
}

// Delete elimina un producto. Las ventas que lo referencian conservan su snapshot.
func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log, tenantID)
	return nil
}
