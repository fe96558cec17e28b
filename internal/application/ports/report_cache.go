package ports

import (
	"context"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

// ReportCache almacena informes calculados por tenant y periodo.
// Un fallo de caché nunca debe romper la petición: los casos de uso lo registran y siguen.
//
// Las entradas se guardan bajo la versión vigente del tenant. GetReport la devuelve y
// SetReport la recibe de vuelta: si Invalidate la avanzó entretanto, lo guardado queda
// inalcanzable y nunca se sirve un informe anterior a la mutación.
type ReportCache interface {
	// GetReport devuelve (nil, version, nil) si no hay entrada.
	GetReport(ctx context.Context, tenantID, period string) (*dto.ReportResponse, int64, error)
	SetReport(ctx context.Context, tenantID, period string, version int64, r *dto.ReportResponse) error
	// Invalidate descarta todos los informes del tenant.
	Invalidate(ctx context.Context, tenantID string) error
}

// NopReportCache caché deshabilitada.
type NopReportCache struct{}

func (NopReportCache) GetReport(context.Context, string, string) (*dto.ReportResponse, int64, error) {
	return nil, 0, nil
}

func (NopReportCache) SetReport(context.Context, string, string, int64, *dto.ReportResponse) error {
	return nil
}

func (NopReportCache) Invalidate(context.Context, string) error { return nil }
