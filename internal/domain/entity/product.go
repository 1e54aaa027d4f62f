package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto. Solo los activos forman parte del catálogo.
const (
	ProductStatusActive   = "activo"
	ProductStatusInactive = "inactivo"
)

// Product representa un artículo del catálogo.
// Stock nunca debe quedar negativo; se garantiza al reservar dentro de la transacción de venta.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, > 0
	Stock       int
	Category    Category
	Image       string // URL o referencia, opcional
	Status      string // activo, inactivo
	SellerID    string // usuario que lo dio de alta
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el producto se puede listar y vender.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// ValidProductStatus indica si s es un estado de producto válido.
func ValidProductStatus(s string) bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}
