package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

var (
	admin    = access.Identity{UserID: uuid.NewString(), Username: "admin", Role: entity.RoleAdmin}
	vendedor = access.Identity{UserID: uuid.NewString(), Username: "vendedor", Role: entity.RoleVendedor}
)

func newProductUC() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), store.Movements(), store, zerolog.Nop()), store
}

func ptr[T any](v T) *T { return &v }

func validCreate() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Nombre:      "Camiseta Básica",
		Descripcion: "Camiseta 100% algodón de alta calidad",
		Precio:      ptr(decimal.RequireFromString("29.99")),
		Stock:       ptr(50),
		Categoria:   "hombres",
	}
}

func TestProductCreate_Admin(t *testing.T) {
	uc, _ := newProductUC()

	in := validCreate()
	in.Categoria = "NIÑOS"
	in.Precio = ptr(decimal.RequireFromString("10.005"))
	out, err := uc.Create(context.Background(), admin, in)
	require.NoError(t, err)

	assert.Equal(t, "Camiseta Básica", out.Nombre)
	assert.Equal(t, "niños", out.Categoria)
	assert.Equal(t, entity.ProductStatusActive, out.Estado)
	assert.Equal(t, admin.UserID, out.VendedorID)
	assert.True(t, decimal.RequireFromString("10.01").Equal(out.Precio), "el precio se redondea a 2 decimales")
}

func TestProductMutaciones_NoAdminSiempreForbidden(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)

	invalid := dto.CreateProductRequest{Nombre: "x"}
	for _, in := range []dto.CreateProductRequest{validCreate(), invalid} {
		_, err := uc.Create(ctx, vendedor, in)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
	_, err = uc.Update(ctx, vendedor, created.ID, dto.UpdateProductRequest{Stock: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, vendedor, "no-existe", dto.UpdateProductRequest{Stock: ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Delete(ctx, vendedor, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	anon := access.Identity{}
	_, err = uc.Create(ctx, anon, validCreate())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, anon, created.ID, dto.UpdateProductRequest{Stock: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Delete(ctx, anon, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Las lecturas de historial sí distinguen la petición anónima.
	_, err = uc.Movements(ctx, anon, created.ID, 10)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductCreate_Validacion(t *testing.T) {
	uc, _ := newProductUC()
	cases := map[string]struct {
		mutate func(*dto.CreateProductRequest)
		msg    string
	}{
		"nombre":      {func(in *dto.CreateProductRequest) { in.Nombre = " ab " }, "El nombre debe tener al menos 3 caracteres"},
		"descripcion": {func(in *dto.CreateProductRequest) { in.Descripcion = "corta" }, "La descripción debe tener al menos 10 caracteres"},
		"sin precio":  {func(in *dto.CreateProductRequest) { in.Precio = nil }, "El precio debe ser un número"},
		"precio cero": {func(in *dto.CreateProductRequest) { in.Precio = ptr(decimal.Zero) }, "El precio debe ser mayor a 0"},
		"sin stock":   {func(in *dto.CreateProductRequest) { in.Stock = nil }, "El stock debe ser un número"},
		"stock < 0":   {func(in *dto.CreateProductRequest) { in.Stock = ptr(-1) }, "El stock no puede ser negativo"},
		"categoria":   {func(in *dto.CreateProductRequest) { in.Categoria = "mascotas" }, "La categoría debe ser: hombres, mujeres, niños o accesorios"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := validCreate()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), admin, in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestProductList_SoloActivos(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	a, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)
	b, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)

	_, err = uc.Update(ctx, admin, b.ID, dto.UpdateProductRequest{Estado: ptr("inactivo")})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = uc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// Un producto inactivo se puede reactivar.
	re, err := uc.Update(ctx, admin, b.ID, dto.UpdateProductRequest{Estado: ptr("activo")})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusActive, re.Estado)
	got, err := uc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestProductUpdate_AjusteDeStockRegistraMovimiento(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)

	out, err := uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{
		Nombre: ptr("Camiseta Premium"),
		Stock:  ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "Camiseta Premium", out.Nombre)
	assert.Equal(t, 45, out.Stock)
	assert.Equal(t, p.Descripcion, out.Descripcion, "los campos ausentes no cambian")

	movs, err := uc.Movements(ctx, admin, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeAdjustment, movs[0].Tipo)
	assert.Equal(t, -5, movs[0].Cantidad)
	assert.Equal(t, 50, movs[0].StockAnterior)
	assert.Equal(t, 45, movs[0].StockNuevo)

	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{Precio: ptr(decimal.RequireFromString("35.00"))})
	require.NoError(t, err)
	movs, err = uc.Movements(ctx, admin, p.ID, 10)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "sin cambio de stock no hay movimiento")

	_, err = uc.Movements(ctx, vendedor, p.ID, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductUpdate_PatchInvalidoNoAplicaNada(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)

	_, err = uc.Update(ctx, admin, p.ID, dto.UpdateProductRequest{
		Nombre: ptr("Nuevo nombre"),
		Estado: ptr("borrado"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Nombre, got.Nombre)

	_, err = uc.Update(ctx, admin, uuid.NewString(), dto.UpdateProductRequest{Stock: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductDelete_ConservaHistorialDeVentas(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, admin, validCreate())
	require.NoError(t, err)

	now := time.Now()
	sale := &entity.Sale{
		ID: uuid.NewString(), SellerID: vendedor.UserID, Status: entity.SaleStatusPending,
		CreatedAt: now, UpdatedAt: now,
		Details: []*entity.SaleDetail{{
			ID: uuid.NewString(), ProductID: p.ID, ProductName: p.Nombre, Quantity: 1,
			UnitPrice: p.Precio, Subtotal: p.Precio,
		}},
	}
	require.NoError(t, store.Sales().Create(ctx, sale))

	msg, err := uc.Delete(ctx, admin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Producto eliminado exitosamente", msg.Mensaje)

	_, err = uc.Delete(ctx, admin, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	got, err := store.Sales().GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.Empty(t, got.Details[0].ProductID)
	assert.Nil(t, got.Details[0].Product)
	assert.Equal(t, p.Nombre, got.Details[0].ProductName)
}
