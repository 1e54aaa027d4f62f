package memory

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ h handle }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.get(id, false)
}

func (r *ProductRepo) GetActiveByID(_ context.Context, id string) (*entity.Product, error) {
	return r.get(id, true)
}

// GetForUpdate dentro de Run la exclusión ya la da el candado del store.
func (r *ProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return r.get(id, false)
}

func (r *ProductRepo) get(id string, onlyActive bool) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok || (onlyActive && !p.IsActive()) {
			return nil
		}
		out = copyProduct(p)
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.do(func(st *state) error {
		for _, p := range st.products {
			if p.IsActive() {
				out = append(out, copyProduct(p))
			}
		}
		return nil
	})
	sortedByCreatedDesc(out, func(p *entity.Product) int64 { return p.CreatedAt.UnixNano() })
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.h.do(func(st *state) error {
		p, ok := st.products[product.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		c := copyProduct(product)
		c.SellerID = p.SellerID
		c.CreatedAt = p.CreatedAt
		st.products[product.ID] = c
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int, updatedAt time.Time) error {
	return r.h.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		p.Stock = stock
		p.UpdatedAt = updatedAt
		return nil
	})
}

// Delete imita el esquema SQL: los detalles quedan sin producto y los movimientos se borran.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		delete(st.products, id)
		for _, s := range st.sales {
			for _, d := range s.Details {
				if d.ProductID == id {
					d.ProductID = ""
				}
			}
		}
		kept := st.movements[:0]
		for _, m := range st.movements {
			if m.ProductID != id {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		return nil
	})
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.h.do(func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}
