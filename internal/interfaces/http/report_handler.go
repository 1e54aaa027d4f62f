package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/reports"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler expone el resumen diario en JSON, PDF y Excel.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DailySummary godoc
// @Summary      Resumen diario de ventas
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "Fecha YYYY-MM-DD (por defecto hoy)"
// @Success      200    {object}  dto.DailySummaryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /ventas/resumen/diario [get]
func (h *ReportHandler) DailySummary(c *fiber.Ctx) error {
	out, err := h.uc.DailySummary(c.UserContext(), GetIdentity(c), c.Query("fecha"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DailySummaryPDF godoc
// @Summary      Resumen diario en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        fecha  query  string  false  "Fecha YYYY-MM-DD (por defecto hoy)"
// @Success      200
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /ventas/resumen/diario/pdf [get]
func (h *ReportHandler) DailySummaryPDF(c *fiber.Ctx) error {
	name, data, err := h.uc.DailySummaryPDF(c.UserContext(), GetIdentity(c), c.Query("fecha"))
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

// DailySummaryXLSX godoc
// @Summary      Resumen diario en Excel
// @Tags         reportes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        fecha  query  string  false  "Fecha YYYY-MM-DD (por defecto hoy)"
// @Success      200
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /ventas/resumen/diario/xlsx [get]
func (h *ReportHandler) DailySummaryXLSX(c *fiber.Ctx) error {
	name, data, err := h.uc.DailySummaryXLSX(c.UserContext(), GetIdentity(c), c.Query("fecha"))
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, mimeXLSX, name, data)
}

func sendFile(c *fiber.Ctx, mime, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
