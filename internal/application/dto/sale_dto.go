package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea pedida: producto y cantidad (≥ 1).
type SaleItemRequest struct {
	ProductoID string `json:"producto_id"`
	Cantidad   int    `json:"cantidad"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// SaleSummaryResponse resumen devuelto al crear una venta.
type SaleSummaryResponse struct {
	ID         string          `json:"id"`
	VendedorID string          `json:"vendedor_id"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Impuesto   decimal.Decimal `json:"impuesto"`
	Total      decimal.Decimal `json:"total"`
	Estado     string          `json:"estado"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SaleDetailResponse una línea de la venta. Producto es nil si el producto ya no existe.
type SaleDetailResponse struct {
	ID             string           `json:"id"`
	VentaID        string           `json:"venta_id"`
	ProductoID     string           `json:"producto_id,omitempty"`
	NombreProducto string           `json:"nombre_producto"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario decimal.Decimal  `json:"precio_unitario"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	Producto       *ProductResponse `json:"producto"`
}

// SaleResponse venta completa con sus detalles.
type SaleResponse struct {
	ID         string               `json:"id"`
	VendedorID string               `json:"vendedor_id"`
	Subtotal   decimal.Decimal      `json:"subtotal"`
	Impuesto   decimal.Decimal      `json:"impuesto"`
	Total      decimal.Decimal      `json:"total"`
	Estado     string               `json:"estado"`
	Detalles   []SaleDetailResponse `json:"detalles"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}
