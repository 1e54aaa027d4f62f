package memory

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria. Las lecturas cargan el producto actual de cada detalle.
type SaleRepo struct{ h handle }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		c := copySale(sale)
		for _, d := range c.Details {
			d.SaleID = sale.ID
		}
		st.sales[sale.ID] = c
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.h.do(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = withProducts(st, s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	return r.h.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.ErrSaleNotFound
		}
		s.Status = status
		s.UpdatedAt = updatedAt
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.h.do(func(st *state) error {
		for _, s := range st.sales {
			if f.SellerID != "" && s.SellerID != f.SellerID {
				continue
			}
			if f.Status != "" && s.Status != f.Status {
				continue
			}
			if f.From != nil && s.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && s.CreatedAt.After(*f.To) {
				continue
			}
			out = append(out, withProducts(st, s))
		}
		return nil
	})
	sortedByCreatedDesc(out, func(s *entity.Sale) int64 { return s.CreatedAt.UnixNano() })
	return out, err
}

func withProducts(st *state, s *entity.Sale) *entity.Sale {
	c := copySale(s)
	for _, d := range c.Details {
		if p, ok := st.products[d.ProductID]; ok && d.ProductID != "" {
			d.Product = copyProduct(p)
		}
	}
	return c
}
