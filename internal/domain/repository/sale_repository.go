package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleFilter criterios de listado. Campos vacíos no filtran.
// From/To es un rango cerrado sobre la fecha de creación.
type SaleFilter struct {
	SellerID string
	Status   string
	From     *time.Time
	To       *time.Time
}

// SaleRepository define el puerto de persistencia para ventas y sus detalles.
type SaleRepository interface {
	// Create persiste cabecera y detalles.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus detalles (y productos), o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	// List devuelve las ventas más recientes primero, con detalles y productos cargados.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
