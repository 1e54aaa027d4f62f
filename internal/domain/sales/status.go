package sales

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CanTransition indica si una venta puede pasar de from a to.
// Solo pendiente admite salida; completada y cancelada son terminales.
func CanTransition(from, to string) bool {
	if from != entity.SaleStatusPending {
		return false
	}
	return to == entity.SaleStatusCompleted || to == entity.SaleStatusCancelled
}
