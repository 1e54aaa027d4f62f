package memory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial de stock en memoria.
type StockMovementRepo struct{ h handle }

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.do(func(st *state) error {
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.h.do(func(st *state) error {
		// más reciente primero: se recorre al revés el orden de inserción
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ProductID != productID {
				continue
			}
			c := *m
			out = append(out, &c)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}
