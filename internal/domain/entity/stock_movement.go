package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale         = "venta"     // salida por venta
	MovementTypeCancellation = "anulacion" // reingreso por cancelación
	MovementTypeAdjustment   = "ajuste"    // edición manual del stock desde el catálogo
)

// StockMovement registra cada cambio de stock de un producto.
type StockMovement struct {
	ID          string
	ProductID   string
	SaleID      string // vacío en ajustes
	Type        string
	Quantity    int // positivo = entrada, negativo = salida
	StockBefore int
	StockAfter  int
	CreatedBy   string
	CreatedAt   time.Time
}
