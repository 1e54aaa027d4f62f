package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

var (
	bogota, _ = time.LoadLocation("America/Bogota")
	// 2025-11-30 10:00 en Bogotá.
	fixedNow = time.Date(2025, 11, 30, 15, 0, 0, 0, time.UTC)

	seller = access.Identity{UserID: uuid.NewString(), Username: "vendedor", Role: entity.RoleVendedor}
	other  = access.Identity{UserID: uuid.NewString(), Username: "otro", Role: entity.RoleVendedor}
	admin  = access.Identity{UserID: uuid.NewString(), Username: "admin", Role: entity.RoleAdmin}
)

type fixture struct {
	store *memory.Store
	uc    *sales.SalesUseCase
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewStore(), clock: fixedNow}
	f.uc = sales.NewSalesUseCase(f.store, f.store.Sales(), sales.Options{
		TaxRate:  decimal.RequireFromString("0.19"),
		Location: bogota,
	}, zerolog.Nop()).WithClock(func() time.Time { return f.clock })
	return f
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: "Producto de prueba",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		Category:    entity.CategoryAccessories,
		Status:      entity.ProductStatusActive,
		SellerID:    admin.UserID,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func items(pairs ...any) dto.CreateSaleRequest {
	var in dto.CreateSaleRequest
	for i := 0; i < len(pairs); i += 2 {
		in.Items = append(in.Items, dto.SaleItemRequest{ProductoID: pairs[i].(string), Cantidad: pairs[i+1].(int)})
	}
	return in
}

func TestCreate_CalculaTotalesYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	camiseta := f.product(t, "Camiseta", "15.99", 10)
	gorra := f.product(t, "Gorra", "24.99", 5)

	out, err := f.uc.Create(ctx, seller, items(camiseta.ID, 2, gorra.ID, 1))
	require.NoError(t, err)

	// 2×15.99 + 24.99 = 56.97; IVA 10.8243 → 10.82
	assert.True(t, decimal.RequireFromString("56.97").Equal(out.Subtotal), out.Subtotal.String())
	assert.True(t, decimal.RequireFromString("10.82").Equal(out.Impuesto), out.Impuesto.String())
	assert.True(t, out.Subtotal.Add(out.Impuesto).Equal(out.Total))
	assert.Equal(t, entity.SaleStatusPending, out.Estado)
	assert.Equal(t, seller.UserID, out.VendedorID)

	assert.Equal(t, 8, f.stock(t, camiseta.ID))
	assert.Equal(t, 4, f.stock(t, gorra.ID))

	movs, err := f.store.Movements().ListByProduct(ctx, camiseta.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSale, movs[0].Type)
	assert.Equal(t, -2, movs[0].Quantity)
	assert.Equal(t, 10, movs[0].StockBefore)
	assert.Equal(t, 8, movs[0].StockAfter)
	assert.Equal(t, out.ID, movs[0].SaleID)
}

func TestCreate_PrecioUnitarioQuedaFijo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Camiseta", "15.99", 10)

	out, err := f.uc.Create(ctx, seller, items(p.ID, 3))
	require.NoError(t, err)

	p.Price = decimal.RequireFromString("99.00")
	require.NoError(t, f.store.Products().Update(ctx, p))

	sale, err := f.store.Sales().GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, sale.Details, 1)
	d := sale.Details[0]
	assert.True(t, decimal.RequireFromString("15.99").Equal(d.UnitPrice))
	assert.True(t, d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))).Equal(d.Subtotal))
}

func TestCreate_StockInsuficienteNoModificaNingunItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Camiseta", "10.00", 5)
	b := f.product(t, "Pantalón", "20.00", 1)
	c := f.product(t, "Gorra", "5.00", 5)

	_, err := f.uc.Create(ctx, seller, items(a.ID, 2, b.ID, 2, c.ID, 1))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Stock insuficiente para Pantalón", err.Error())

	assert.Equal(t, 5, f.stock(t, a.ID))
	assert.Equal(t, 1, f.stock(t, b.ID))
	assert.Equal(t, 5, f.stock(t, c.ID))

	list, err := f.store.Sales().List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	movs, err := f.store.Movements().ListByProduct(ctx, a.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreate_CantidadesRepetidasSeSuman(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Camiseta", "10.00", 3)

	_, err := f.uc.Create(context.Background(), seller, items(p.ID, 2, p.ID, 2))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.stock(t, p.ID))
}

func TestCreate_ProductoInexistenteOInactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Camiseta", "10.00", 3)
	p.Status = entity.ProductStatusInactive
	require.NoError(t, f.store.Products().Update(ctx, p))

	_, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.Create(ctx, seller, items(uuid.NewString(), 1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.Create(ctx, seller, items("no-es-uuid", 1))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreate_Validacion(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Camiseta", "10.00", 3)

	_, err := f.uc.Create(context.Background(), seller, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), seller, items(p.ID, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), seller, items("", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Permisos(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Camiseta", "10.00", 3)

	_, err := f.uc.Create(context.Background(), access.Identity{}, items(p.ID, 1))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Create(context.Background(), admin, items(p.ID, 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ConcurrenteConStockUno_SoloUnaGana(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Última unidad", "10.00", 1)

	const n = 2
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Create(context.Background(), seller, items(p.ID, 1))
		}(i)
	}
	wg.Wait()

	ok, failed := 0, 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failed++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, f.stock(t, p.ID))
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Camiseta", "10.00", 3)
	sale, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)

	_, err = f.uc.Complete(ctx, other, sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Complete(ctx, seller, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, out.Estado)

	_, err = f.uc.Complete(ctx, seller, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.Cancel(ctx, seller, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 2, f.stock(t, p.ID), "cancelar una venta completada no devuelve stock")

	_, err = f.uc.Complete(ctx, seller, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestCancel_DevuelveElStockDescontado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Camiseta", "10.00", 10)
	b := f.product(t, "Gorra", "5.00", 4)

	sale, err := f.uc.Create(ctx, seller, items(a.ID, 3, b.ID, 4, a.ID, 1))
	require.NoError(t, err)
	assert.Equal(t, 6, f.stock(t, a.ID))
	assert.Equal(t, 0, f.stock(t, b.ID))

	_, err = f.uc.Cancel(ctx, other, sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Cancel(ctx, seller, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Estado)
	assert.Equal(t, 10, f.stock(t, a.ID))
	assert.Equal(t, 4, f.stock(t, b.ID))

	movs, err := f.store.Movements().ListByProduct(ctx, a.ID, 10)
	require.NoError(t, err)
	var restored int
	for _, m := range movs {
		if m.Type == entity.MovementTypeCancellation {
			restored += m.Quantity
		}
	}
	assert.Equal(t, 4, restored)

	_, err = f.uc.Cancel(ctx, seller, sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_OmiteProductosEliminados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Camiseta", "10.00", 10)
	b := f.product(t, "Gorra", "5.00", 4)

	sale, err := f.uc.Create(ctx, seller, items(a.ID, 2, b.ID, 1))
	require.NoError(t, err)
	require.NoError(t, f.store.Products().Delete(ctx, b.ID))

	out, err := f.uc.Cancel(ctx, seller, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Estado)
	assert.Equal(t, 10, f.stock(t, a.ID))
}

func TestList_AdminVeTodoVendedorSoloLoSuyo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Camiseta", "10.00", 10)

	first, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)
	f.clock = fixedNow.Add(time.Minute)
	_, err = f.uc.Create(ctx, other, items(p.ID, 1))
	require.NoError(t, err)
	f.clock = fixedNow.Add(2 * time.Minute)
	last, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)

	all, err := f.uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := f.uc.List(ctx, seller)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, last.ID, own[0].ID, "más recientes primero")
	assert.Equal(t, first.ID, own[1].ID)
	require.Len(t, own[0].Detalles, 1)
	require.NotNil(t, own[0].Detalles[0].Producto)
	assert.Equal(t, "Camiseta", own[0].Detalles[0].Producto.Nombre)

	_, err = f.uc.List(ctx, access.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListByDate_SoloCompletadasDelDiaLocal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Camiseta", "10.00", 10)

	// 2025-11-30 23:30 en Bogotá = 2025-12-01 04:30 UTC: cuenta para el 30.
	f.clock = time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)
	late, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)
	_, err = f.uc.Complete(ctx, seller, late.ID)
	require.NoError(t, err)

	// 2025-12-01 00:30 en Bogotá: otro día.
	f.clock = time.Date(2025, 12, 1, 5, 30, 0, 0, time.UTC)
	next, err := f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)
	_, err = f.uc.Complete(ctx, seller, next.ID)
	require.NoError(t, err)

	// Pendiente del 30: no cuenta.
	f.clock = fixedNow
	_, err = f.uc.Create(ctx, seller, items(p.ID, 1))
	require.NoError(t, err)

	out, err := f.uc.ListByDate(ctx, admin, "2025-11-30")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, late.ID, out[0].ID)

	_, err = f.uc.ListByDate(ctx, admin, "30/11/2025")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ListByDate(ctx, admin, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.ListByDate(ctx, seller, "2025-11-30")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
