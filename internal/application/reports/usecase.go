// Package reports agrega las ventas completadas de un día y las exporta.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	appsales "github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	domainsales "github.com/jhoicas/tienda-api/internal/domain/sales"
)

// ReportUseCase resumen diario de ventas y sus exportaciones.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	pdf      SummaryRenderer
	xlsx     SummaryRenderer
	loc      *time.Location
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. loc define qué es "un día".
func NewReportUseCase(saleRepo repository.SaleRepository, pdf, xlsx SummaryRenderer, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{saleRepo: saleRepo, pdf: pdf, xlsx: xlsx, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// DailySummary agrega las ventas completadas del día fecha (YYYY-MM-DD; vacío = hoy).
func (uc *ReportUseCase) DailySummary(ctx context.Context, who access.Identity, fecha string) (*dto.DailySummaryResponse, error) {
	if err := access.Authorize(who, access.PermSaleReports); err != nil {
		return nil, err
	}
	day, err := domainsales.ResolveDay(fecha, uc.loc, uc.now())
	if err != nil {
		return nil, err
	}
	list, err := appsales.CompletedOn(ctx, uc.saleRepo, day)
	if err != nil {
		return nil, err
	}
	return Summarize(day.Date, list), nil
}

// DailySummaryPDF devuelve nombre de archivo y contenido del resumen en PDF.
func (uc *ReportUseCase) DailySummaryPDF(ctx context.Context, who access.Identity, fecha string) (string, []byte, error) {
	return uc.export(ctx, who, fecha, uc.pdf, "pdf")
}

// DailySummaryXLSX devuelve nombre de archivo y contenido del resumen en Excel.
func (uc *ReportUseCase) DailySummaryXLSX(ctx context.Context, who access.Identity, fecha string) (string, []byte, error) {
	return uc.export(ctx, who, fecha, uc.xlsx, "xlsx")
}

func (uc *ReportUseCase) export(ctx context.Context, who access.Identity, fecha string, r SummaryRenderer, ext string) (string, []byte, error) {
	summary, err := uc.DailySummary(ctx, who, fecha)
	if err != nil {
		return "", nil, err
	}
	if r == nil {
		return "", nil, fmt.Errorf("reports: sin renderizador %s", ext)
	}
	data, err := r.RenderDailySummary(summary)
	if err != nil {
		return "", nil, fmt.Errorf("reports: render %s: %w", ext, err)
	}
	return fmt.Sprintf("resumen_ventas_%s.%s", summary.Fecha, ext), data, nil
}

// Summarize reduce las ventas a totales generales y por vendedor.
// Los vendedores aparecen en el orden en que se ven por primera vez en list.
func Summarize(fecha string, list []*entity.Sale) *dto.DailySummaryResponse {
	totalSales := decimal.Zero
	totalTax := decimal.Zero
	bySeller := make(map[string]int)
	perSeller := make([]dto.SellerTotals, 0)

	for _, s := range list {
		totalSales = totalSales.Add(s.Total)
		totalTax = totalTax.Add(s.Tax)
		i, ok := bySeller[s.SellerID]
		if !ok {
			i = len(perSeller)
			bySeller[s.SellerID] = i
			perSeller = append(perSeller, dto.SellerTotals{VendedorID: s.SellerID, Total: decimal.Zero})
		}
		perSeller[i].Cantidad++
		perSeller[i].Total = perSeller[i].Total.Add(s.Total)
	}
	for i := range perSeller {
		perSeller[i].Total = perSeller[i].Total.Round(2)
	}

	return &dto.DailySummaryResponse{
		Fecha:             fecha,
		TotalVentas:       totalSales.Round(2),
		TotalImpuesto:     totalTax.Round(2),
		CantidadVentas:    len(list),
		VentasPorVendedor: perSeller,
		DetalleVentas:     dto.FromSales(list),
	}
}
