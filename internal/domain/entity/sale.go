package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta: pendiente → completada | cancelada. Los dos últimos son terminales.
const (
	SaleStatusPending   = "pendiente"
	SaleStatusCompleted = "completada"
	SaleStatusCancelled = "cancelada"
)

// Sale representa la cabecera de una venta registrada por un vendedor.
// Subtotal = Σ detalles.Subtotal; Tax = Subtotal × tasa (2 decimales); Total = Subtotal + Tax.
type Sale struct {
	ID        string
	SellerID  string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	Status    string
	Details   []*SaleDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleDetail es una línea de la venta. Precio y nombre son una foto del producto al vender;
// ProductID queda vacío si el producto se eliminó después.
type SaleDetail struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Product     *Product // cargado en los listados; nil si ya no existe
}
