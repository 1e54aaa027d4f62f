package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SellerTotals agregado de un vendedor dentro del resumen diario.
type SellerTotals struct {
	VendedorID string          `json:"vendedor_id"`
	Cantidad   int             `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

// DailySummaryResponse resumen de las ventas completadas en un día.
// Los totales salen como números JSON con 2 decimales (38.06), no como strings.
type DailySummaryResponse struct {
	Fecha             string          `json:"fecha"`
	TotalVentas       decimal.Decimal `json:"totalVentas"`
	TotalImpuesto     decimal.Decimal `json:"totalImpuesto"`
	CantidadVentas    int             `json:"cantidadVentas"`
	VentasPorVendedor []SellerTotals  `json:"ventasPorVendedor"`
	DetalleVentas     []SaleResponse  `json:"detalleVentas"`
}

func (t SellerTotals) MarshalJSON() ([]byte, error) {
	type alias SellerTotals
	return json.Marshal(struct {
		alias
		Total json.Number `json:"total"`
	}{alias(t), amount(t.Total)})
}

func (r DailySummaryResponse) MarshalJSON() ([]byte, error) {
	type alias DailySummaryResponse
	return json.Marshal(struct {
		alias
		TotalVentas   json.Number `json:"totalVentas"`
		TotalImpuesto json.Number `json:"totalImpuesto"`
	}{alias(r), amount(r.TotalVentas), amount(r.TotalImpuesto)})
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
