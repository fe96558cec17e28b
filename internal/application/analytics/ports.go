package analytics

import "github.com/jhoicas/stockpro-api/internal/application/dto"

// ReportDocument metadatos del documento exportado.
type ReportDocument struct {
	TenantName string // nombre o empresa del usuario
	Report     *dto.ReportResponse
}

// ReportPDFGenerator genera la representación PDF de un informe.
type ReportPDFGenerator interface {
	GenerateReportPDF(doc ReportDocument) ([]byte, error)
}

// ReportXMLExporter serializa un informe como XML.
type ReportXMLExporter interface {
	ExportReportXML(doc ReportDocument) ([]byte, error)
}
