// Package memory implementa los puertos de persistencia en memoria.
// Run serializa las transacciones con un único candado y trabaja sobre una copia del estado,
// que solo reemplaza al original si fn no devuelve error (commit).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	users     map[string]*entity.User
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	movements []*entity.StockMovement
}

func newState() *state {
	return &state{
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, u := range s.users {
		cu := *u
		c.users[k] = &cu
	}
	for k, p := range s.products {
		c.products[k] = copyProduct(p)
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	c.movements = make([]*entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// handle da acceso al estado: con candado fuera de una tx, directo dentro de ella.
type handle interface {
	do(fn func(st *state) error) error
}

type rootHandle struct{ s *Store }

func (h rootHandle) do(fn func(st *state) error) error {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return fn(h.s.st)
}

type txHandle struct{ st *state }

func (h txHandle) do(fn func(st *state) error) error { return fn(h.st) }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{h: rootHandle{s}} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{h: rootHandle{s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{h: rootHandle{s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{h: rootHandle{s}} }

// Run ejecuta fn en exclusión mutua sobre una copia del estado; si fn falla la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	h := txHandle{st: work}
	if err := fn(&ProductRepo{h: h}, &SaleRepo{h: h}, &StockMovementRepo{h: h}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copySale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Details = make([]*entity.SaleDetail, 0, len(s.Details))
	for _, d := range s.Details {
		cd := *d
		cd.Product = nil
		c.Details = append(c.Details, &cd)
	}
	return &c
}

func sortedByCreatedDesc[T any](items []T, created func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool { return created(items[i]) > created(items[j]) })
}
