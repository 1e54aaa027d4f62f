package reports

import "github.com/jhoicas/tienda-api/internal/application/dto"

// SummaryRenderer convierte el resumen diario en un documento descargable (PDF, XLSX).
type SummaryRenderer interface {
	RenderDailySummary(summary *dto.DailySummaryResponse) ([]byte, error)
}
