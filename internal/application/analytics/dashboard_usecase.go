package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/report"
)

// DashboardUseCase genera los KPIs del tablero principal.
type DashboardUseCase struct {
	repos Repos
	clock ports.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos Repos, clock ports.Clock) *DashboardUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &DashboardUseCase{repos: repos, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO del tenant.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tenantID string) (*dto.DashboardSummaryDTO, error) {
	data, err := uc.repos.load(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	now := uc.clock.Now()
	d := report.BuildDashboard(data.sales, data.products, data.customers, now)
	return &dto.DashboardSummaryDTO{
		TotalProducts:  d.TotalProducts,
		TotalCustomers: d.TotalCustomers,
		TotalSales:     d.TotalSales,
		MonthlyRevenue: d.MonthlyRevenue.Round(2),
		LowStock:       d.LowStock,
		PendingSales:   d.PendingSales,
		DateLabel:      monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
