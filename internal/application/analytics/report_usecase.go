// Package analytics contiene los casos de uso de informes por periodo y del dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
	"github.com/jhoicas/stockpro-api/internal/application/ports"
	"github.com/jhoicas/stockpro-api/internal/domain/report"
	"github.com/jhoicas/stockpro-api/internal/domain/repository"
	"github.com/jhoicas/stockpro-api/pkg/logger"
)

// ReportUseCase genera el informe de un periodo y sus exportaciones.
type ReportUseCase struct {
	repos    Repos
	userRepo repository.UserRepository
	cache    ports.ReportCache
	clock    ports.Clock
	pdf      ReportPDFGenerator
	xml      ReportXMLExporter
	log      *logger.Logger
}

// ReportDeps dependencias del caso de uso. Cache, Clock y Log son opcionales.
type ReportDeps struct {
	Repos    Repos
	UserRepo repository.UserRepository
	Cache    ports.ReportCache
	Clock    ports.Clock
	PDF      ReportPDFGenerator
	XML      ReportXMLExporter
	Log      *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(d ReportDeps) *ReportUseCase {
	uc := &ReportUseCase{
		repos:    d.Repos,
		userRepo: d.UserRepo,
		cache:    d.Cache,
		clock:    d.Clock,
		pdf:      d.PDF,
		xml:      d.XML,
		log:      d.Log,
	}
	if uc.cache == nil {
		uc.cache = ports.NopReportCache{}
	}
	if uc.clock == nil {
		uc.clock = ports.SystemClock{}
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// Generate devuelve el informe del periodo. Un token desconocido se trata como month.
// Consulta primero la caché; un fallo de caché se registra y se recalcula.
func (uc *ReportUseCase) Generate(ctx context.Context, tenantID, periodToken string) (*dto.ReportResponse, error) {
	period := report.ParsePeriod(periodToken)

	cached, version, cacheErr := uc.cache.GetReport(ctx, tenantID, string(period))
	if cacheErr != nil {
		uc.log.Warn().Err(cacheErr).Str("tenant_id", tenantID).Msg("caché de informes no disponible")
	}
	if cached != nil {
		return cached, nil
	}

	data, err := uc.repos.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	out := dto.ToReportResponse(report.Build(data.sales, data.products, data.customers, period, now))
	out.GeneratedAt = now

	// sin versión conocida no se escribe: podría pisar una invalidación
	if cacheErr != nil {
		return &out, nil
	}
	if err := uc.cache.SetReport(ctx, tenantID, string(period), version, &out); err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("no se pudo guardar el informe en caché")
	}
	return &out, nil
}

// ExportPDF genera el informe del periodo en PDF.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, tenantID, periodToken string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	doc, err := uc.document(ctx, tenantID, periodToken)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateReportPDF(doc)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}
	return b, filename(doc.Report, "pdf"), nil
}

// ExportXML genera el informe del periodo en XML.
func (uc *ReportUseCase) ExportXML(ctx context.Context, tenantID, periodToken string) ([]byte, string, error) {
	if uc.xml == nil {
		return nil, "", fmt.Errorf("report: exportador XML no configurado")
	}
	doc, err := uc.document(ctx, tenantID, periodToken)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.ExportReportXML(doc)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar XML: %w", err)
	}
	return b, filename(doc.Report, "xml"), nil
}

func (uc *ReportUseCase) document(ctx context.Context, tenantID, periodToken string) (ReportDocument, error) {
	r, err := uc.Generate(ctx, tenantID, periodToken)
	if err != nil {
		return ReportDocument{}, err
	}
	doc := ReportDocument{Report: r}
	if uc.userRepo != nil {
		u, err := uc.userRepo.GetByID(ctx, tenantID)
		if err != nil {
			return ReportDocument{}, err
		}
		if u != nil {
			doc.TenantName = u.Company
			if doc.TenantName == "" {
				doc.TenantName = u.Name
			}
		}
	}
	return doc, nil
}

func filename(r *dto.ReportResponse, ext string) string {
	return fmt.Sprintf("reporte-%s-%s.%s", r.Period, r.GeneratedAt.Format("20060102"), ext)
}
