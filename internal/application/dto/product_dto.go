package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Precio y stock son punteros para distinguir "ausente".
type CreateProductRequest struct {
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
	Categoria   string           `json:"categoria"`
	Imagen      string           `json:"imagen,omitempty"`
}

// UpdateProductRequest actualización parcial; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Nombre      *string          `json:"nombre"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
	Categoria   *string          `json:"categoria"`
	Imagen      *string          `json:"imagen"`
	Estado      *string          `json:"estado"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Categoria   string          `json:"categoria"`
	Imagen      string          `json:"imagen,omitempty"`
	Estado      string          `json:"estado"`
	VendedorID  string          `json:"vendedor_id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StockMovementResponse una entrada del historial de stock.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductoID    string    `json:"producto_id"`
	VentaID       string    `json:"venta_id,omitempty"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stock_anterior"`
	StockNuevo    int       `json:"stock_nuevo"`
	UsuarioID     string    `json:"usuario_id,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
