package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/plan"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
	"github.com/jhoicas/stockpro-api/pkg/textsearch"
)

// CustomerUseCase casos de uso CRUD para clientes. El alta respeta el cupo del plan.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	userRepo repository.UserRepository
	cache    ports.ReportCache
	clock    ports.Clock
	log      *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. cache, clock y log pueden ser nil.
func NewCustomerUseCase(repo repository.CustomerRepository, userRepo repository.UserRepository, cache ports.ReportCache, clock ports.Clock, log *logger.Logger) *CustomerUseCase {
	if cache == nil {
		cache = ports.NopReportCache{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, userRepo: userRepo, cache: cache, clock: clock, log: log}
}

// Create crea un cliente. Devuelve ErrQuotaExceeded si el plan free ya tiene 20.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := checkQuota(ctx, uc.userRepo, tenantID, plan.KindCustomer, uc.repo.CountByTenant); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log, tenantID)
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// GetByID obtiene un cliente del tenant; (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || c == nil {
		return nil, err
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// Update actualiza un cliente; (nil, nil) si no existe.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil || c == nil {
		return nil, err
	}
	setIf(&c.Name, in.Name)
	setIf(&c.Email, in.Email)
	setIf(&c.Phone, in.Phone)
	setIf(&c.Address, in.Address)
	setIf(&c.City, in.City)
	setIf(&c.State, in.State)
	setIf(&c.ZipCode, in.ZipCode)
	c.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ToCustomerResponse(c)
	return &out, nil
}

// List lista los clientes del tenant; search busca en nombre, email y teléfono.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID, search string) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	matcher := textsearch.NewMatcher(search)
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if matcher.Match(c.Name, c.Email, c.Phone) {
			items = append(items, dto.ToCustomerResponse(c))
		}
	}
	limit, err := quotaLimit(ctx, uc.userRepo, tenantID, plan.KindCustomer)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponse{Items: items, Count: len(list), Limit: limit}, nil
}

// Delete elimina un cliente. Las ventas conservan el nombre del snapshot.
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log, tenantID)
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
