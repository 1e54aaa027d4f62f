// Package sales contiene la aritmética y la máquina de estados de las ventas (servicio de dominio puro).
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// DefaultTaxRate IVA aplicado sobre el subtotal de la venta.
var DefaultTaxRate = decimal.RequireFromString("0.19")

// Totals resultado del cálculo de una venta.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// LineSubtotal = precio unitario × cantidad.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CalculateTotals suma los subtotales de línea y aplica el impuesto.
// Impuesto = Subtotal × taxRate redondeado a 2 decimales; Total = Subtotal + Impuesto.
func CalculateTotals(details []*entity.SaleDetail, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, d := range details {
		subtotal = subtotal.Add(d.Subtotal)
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
