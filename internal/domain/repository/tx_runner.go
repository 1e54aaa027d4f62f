package repository

import "context"

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo lo escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo ProductRepository,
		saleRepo SaleRepository,
		movRepo StockMovementRepository,
	) error) error
}
