package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

func TestDailySummaryResponse_TotalesNumericos(t *testing.T) {
	in := dto.DailySummaryResponse{
		Fecha:          "2025-11-30",
		TotalVentas:    decimal.RequireFromString("38.06"),
		TotalImpuesto:  decimal.RequireFromString("6.080"),
		CantidadVentas: 2,
		VentasPorVendedor: []dto.SellerTotals{
			{VendedorID: "v1", Cantidad: 2, Total: decimal.RequireFromString("38.06")},
		},
		DetalleVentas: []dto.SaleResponse{},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, 38.06, generic["totalVentas"])
	assert.Equal(t, 6.08, generic["totalImpuesto"])
	assert.Equal(t, "2025-11-30", generic["fecha"])
	assert.EqualValues(t, 2, generic["cantidadVentas"])
	assert.Contains(t, string(raw), `"totalImpuesto":6.08`)

	sellers, ok := generic["ventasPorVendedor"].([]any)
	require.True(t, ok)
	require.Len(t, sellers, 1)
	assert.Equal(t, 38.06, sellers[0].(map[string]any)["total"])

	// El cliente Go puede leer su propia salida.
	var back dto.DailySummaryResponse
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, in.TotalVentas.Equal(back.TotalVentas))
	assert.True(t, in.TotalImpuesto.Equal(back.TotalImpuesto))
	assert.Equal(t, "v1", back.VentasPorVendedor[0].VendedorID)
}
