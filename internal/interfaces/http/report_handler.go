package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockpro-api/internal/application/analytics"
)

// ReportHandler informes por periodo y sus exportaciones.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Informe del periodo
// @Description  period: week | month | quarter | year. Un valor desconocido se trata como month.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week | month | quarter | year"
// @Success      200     {object}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.Context(), GetTenantID(c), c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Exportar informe en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "week | month | quarter | year"
// @Success      200     {file}  binary
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	b, name, err := h.uc.ExportPDF(c.Context(), GetTenantID(c), c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, b, name, "application/pdf")
}

// ExportXML godoc
// @Summary      Exportar informe en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        period  query  string  false  "week | month | quarter | year"
// @Success      200     {file}  binary
// @Router       /api/reports/export.xml [get]
func (h *ReportHandler) ExportXML(c *fiber.Ctx) error {
	b, name, err := h.uc.ExportXML(c.Context(), GetTenantID(c), c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, b, name, "application/xml")
}

func sendAttachment(c *fiber.Ctx, b []byte, name, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(b)
}
