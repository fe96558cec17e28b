package usecase

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain"
	"github.com/jhoicas/stockpro-api/internal/domain/plan"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

// tenantPlan obtiene el plan del usuario dueño del tenant.
func tenantPlan(ctx context.Context, users repository.UserRepository, tenantID string) (string, error) {
	u, err := users.GetByID(ctx, tenantID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", domain.ErrUserNotFound
	}
	return u.Plan, nil
}

// checkQuota devuelve ErrQuotaExceeded si el tenant no puede crear otro registro de kind.
func checkQuota(
	ctx context.Context,
	users repository.UserRepository,
	tenantID string,
	kind plan.Kind,
	count func(ctx context.Context, tenantID string) (int, error),
) error {
	tier, err := tenantPlan(ctx, users, tenantID)
	if err != nil {
		return err
	}
	if _, limited := plan.Limit(kind, tier); !limited {
		return nil
	}
	n, err := count(ctx, tenantID)
	if err != nil {
		return err
	}
	if !plan.CanCreate(kind, n, tier) {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// quotaLimit devuelve el límite del plan o nil si no tiene.
func quotaLimit(ctx context.Context, users repository.UserRepository, tenantID string, kind plan.Kind) (*int, error) {
	tier, err := tenantPlan(ctx, users, tenantID)
	if err != nil {
		return nil, err
	}
	limit, ok := plan.Limit(kind, tier)
	if !ok {
		return nil, nil
	}
	return &limit, nil
}

// invalidate descarta los informes cacheados; un fallo de caché no rompe la operación.
func invalidate(ctx context.Context, cache ports.ReportCache, log *logger.Logger, tenantID string) {
	if err := cache.Invalidate(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo invalidar la caché de informes")
	}
}
