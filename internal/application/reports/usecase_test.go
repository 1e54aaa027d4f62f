package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/reports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

var admin = access.Identity{UserID: uuid.NewString(), Role: entity.RoleAdmin}

func sale(seller, status string, created time.Time, total, tax string) *entity.Sale {
	t := decimal.RequireFromString(total)
	x := decimal.RequireFromString(tax)
	return &entity.Sale{
		ID:        uuid.NewString(),
		SellerID:  seller,
		Subtotal:  t.Sub(x),
		Tax:       x,
		Total:     t,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

type fakeRenderer struct {
	got *dto.DailySummaryResponse
	err error
}

func (r *fakeRenderer) RenderDailySummary(s *dto.DailySummaryResponse) ([]byte, error) {
	r.got = s
	return []byte("ok"), r.err
}

func TestSummarize_DosVentasCompletadas(t *testing.T) {
	day := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)
	list := []*entity.Sale{
		sale("v1", entity.SaleStatusCompleted, day, "19.03", "3.04"),
		sale("v1", entity.SaleStatusCompleted, day, "19.03", "3.04"),
	}

	out := reports.Summarize("2025-11-30", list)

	assert.Equal(t, "2025-11-30", out.Fecha)
	assert.Equal(t, 2, out.CantidadVentas)
	assert.True(t, decimal.RequireFromString("38.06").Equal(out.TotalVentas))
	assert.True(t, decimal.RequireFromString("6.08").Equal(out.TotalImpuesto))
	require.Len(t, out.VentasPorVendedor, 1)
	assert.Equal(t, 2, out.VentasPorVendedor[0].Cantidad)
	assert.Len(t, out.DetalleVentas, 2)
}

func TestSummarize_AgrupaPorVendedorEnOrdenDeAparicion(t *testing.T) {
	day := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)
	out := reports.Summarize("2025-11-30", []*entity.Sale{
		sale("b", entity.SaleStatusCompleted, day, "10.00", "1.60"),
		sale("a", entity.SaleStatusCompleted, day, "5.00", "0.80"),
		sale("b", entity.SaleStatusCompleted, day, "2.50", "0.40"),
	})

	require.Len(t, out.VentasPorVendedor, 2)
	assert.Equal(t, "b", out.VentasPorVendedor[0].VendedorID)
	assert.Equal(t, 2, out.VentasPorVendedor[0].Cantidad)
	assert.True(t, decimal.RequireFromString("12.50").Equal(out.VentasPorVendedor[0].Total))
	assert.Equal(t, "a", out.VentasPorVendedor[1].VendedorID)
}

func TestSummarize_SinVentas(t *testing.T) {
	out := reports.Summarize("2025-11-30", nil)
	assert.Equal(t, 0, out.CantidadVentas)
	assert.True(t, out.TotalVentas.IsZero())
	assert.NotNil(t, out.VentasPorVendedor)
	assert.NotNil(t, out.DetalleVentas)
}

func TestDailySummary_FiltraPorDiaYEstado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	in := time.Date(2025, 11, 30, 18, 0, 0, 0, time.UTC)
	for _, s := range []*entity.Sale{
		sale("v1", entity.SaleStatusCompleted, in, "19.03", "3.04"),
		sale("v2", entity.SaleStatusCompleted, in.Add(time.Hour), "19.03", "3.04"),
		sale("v1", entity.SaleStatusPending, in, "50.00", "7.98"),
		sale("v1", entity.SaleStatusCancelled, in, "50.00", "7.98"),
		sale("v1", entity.SaleStatusCompleted, in.AddDate(0, 0, 1), "50.00", "7.98"),
	} {
		require.NoError(t, store.Sales().Create(ctx, s))
	}

	uc := reports.NewReportUseCase(store.Sales(), nil, nil, time.UTC)
	out, err := uc.DailySummary(ctx, admin, "2025-11-30")
	require.NoError(t, err)

	assert.Equal(t, 2, out.CantidadVentas)
	assert.True(t, decimal.RequireFromString("38.06").Equal(out.TotalVentas))
	assert.True(t, decimal.RequireFromString("6.08").Equal(out.TotalImpuesto))
	require.Len(t, out.DetalleVentas, 2)
	assert.Equal(t, "v2", out.DetalleVentas[0].VendedorID, "más recientes primero")
}

func TestDailySummary_FechaVaciaEsHoy(t *testing.T) {
	store := memory.NewStore()
	uc := reports.NewReportUseCase(store.Sales(), nil, nil, time.UTC).
		WithClock(func() time.Time { return time.Date(2025, 11, 30, 23, 0, 0, 0, time.UTC) })

	out, err := uc.DailySummary(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-30", out.Fecha)
}

func TestDailySummary_Permisos(t *testing.T) {
	uc := reports.NewReportUseCase(memory.NewStore().Sales(), nil, nil, time.UTC)

	_, err := uc.DailySummary(context.Background(), access.Identity{UserID: "x", Role: entity.RoleVendedor}, "2025-11-30")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.DailySummary(context.Background(), access.Identity{}, "2025-11-30")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.DailySummary(context.Background(), admin, "2025-13-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExports(t *testing.T) {
	pdf, xlsx := &fakeRenderer{}, &fakeRenderer{}
	uc := reports.NewReportUseCase(memory.NewStore().Sales(), pdf, xlsx, time.UTC)

	name, data, err := uc.DailySummaryPDF(context.Background(), admin, "2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, "resumen_ventas_2025-11-30.pdf", name)
	assert.Equal(t, []byte("ok"), data)
	require.NotNil(t, pdf.got)
	assert.Equal(t, "2025-11-30", pdf.got.Fecha)

	name, _, err = uc.DailySummaryXLSX(context.Background(), admin, "2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, "resumen_ventas_2025-11-30.xlsx", name)

	xlsx.err = errors.New("disco lleno")
	_, _, err = uc.DailySummaryXLSX(context.Background(), admin, "2025-11-30")
	assert.Error(t, err)
}
