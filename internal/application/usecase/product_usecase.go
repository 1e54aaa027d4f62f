package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var minPrice = decimal.RequireFromString("0.01")

// ProductUseCase casos de uso del catálogo. Las escrituras exigen permisos de admin;
// las lecturas solo ven productos activos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
	tx      repository.TxRunner
	log     zerolog.Logger
	now     func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	tx repository.TxRunner,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo, tx: tx, log: log, now: time.Now}
}

// Create da de alta un producto activo a nombre del admin que lo crea.
// Create, Update y Delete responden ErrForbidden a cualquier no-admin, anónimo incluido, antes de validar la entrada.
func (uc *ProductUseCase) Create(ctx context.Context, who access.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.AuthorizeRole(who, access.PermProductCreate); err != nil {
		return nil, err
	}
	name, err := validateName(in.Nombre)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(in.Descripcion)
	if err != nil {
		return nil, err
	}
	if in.Precio == nil {
		return nil, domain.Invalid("El precio debe ser un número")
	}
	price, err := validatePrice(*in.Precio)
	if err != nil {
		return nil, err
	}
	if in.Stock == nil {
		return nil, domain.Invalid("El stock debe ser un número")
	}
	if *in.Stock < 0 {
		return nil, domain.Invalid("El stock no puede ser negativo")
	}
	category, ok := entity.ParseCategory(in.Categoria)
	if !ok {
		return nil, domain.Invalid("La categoría debe ser: hombres, mujeres, niños o accesorios")
	}

	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       *in.Stock,
		Category:    category,
		Image:       strings.TrimSpace(in.Imagen),
		Status:      entity.ProductStatusActive,
		SellerID:    who.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("user_id", who.UserID).Msg("producto creado")
	out := dto.FromProduct(product)
	return &out, nil
}

// List devuelve el catálogo (solo activos).
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}

// GetByID devuelve un producto activo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if !validID(id) {
		return nil, productNotFound(id)
	}
	p, err := uc.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productNotFound(id)
	}
	out := dto.FromProduct(p)
	return &out, nil
}

// Update aplica los campos presentes. Opera sobre el producto sin importar su estado
// (así un admin puede reactivar uno inactivo). Un cambio de stock deja un movimiento de ajuste.
func (uc *ProductUseCase) Update(ctx context.Context, who access.Identity, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.AuthorizeRole(who, access.PermProductUpdate); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, productNotFound(id)
	}
	patch, err := validatePatch(in)
	if err != nil {
		return nil, err
	}

	var updated *entity.Product
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.SaleRepository, movs repository.StockMovementRepository) error {
		p, err := products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return productNotFound(id)
		}
		before := p.Stock
		patch(p)
		p.UpdatedAt = uc.now()
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		if p.Stock != before {
			if err := movs.Create(ctx, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				Type:        entity.MovementTypeAdjustment,
				Quantity:    p.Stock - before,
				StockBefore: before,
				StockAfter:  p.Stock,
				CreatedBy:   who.UserID,
				CreatedAt:   p.UpdatedAt,
			}); err != nil {
				return err
			}
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(updated)
	return &out, nil
}

// Delete elimina el producto de forma definitiva. Las ventas conservan nombre y precio de la línea.
func (uc *ProductUseCase) Delete(ctx context.Context, who access.Identity, id string) (*dto.MessageResponse, error) {
	if err := access.AuthorizeRole(who, access.PermProductDelete); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, productNotFound(id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, productNotFound(id)
		}
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Str("user_id", who.UserID).Msg("producto eliminado")
	return &dto.MessageResponse{Mensaje: "Producto eliminado exitosamente"}, nil
}

// Movements historial de stock del producto (cualquier estado).
func (uc *ProductUseCase) Movements(ctx context.Context, who access.Identity, id string, limit int) ([]dto.StockMovementResponse, error) {
	if err := access.Authorize(who, access.PermProductUpdate); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, productNotFound(id)
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productNotFound(id)
	}
	list, err := uc.movRepo.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromStockMovement(m))
	}
	return out, nil
}

func productNotFound(id string) error {
	return domain.Errorf(domain.ErrProductNotFound, "Producto %s no encontrado", id)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validateName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return "", domain.Invalid("El nombre debe tener al menos 3 caracteres")
	}
	return s, nil
}

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 10 {
		return "", domain.Invalid("La descripción debe tener al menos 10 caracteres")
	}
	return s, nil
}

func validatePrice(p decimal.Decimal) (decimal.Decimal, error) {
	p = p.Round(2)
	if p.LessThan(minPrice) {
		return decimal.Zero, domain.Invalid("El precio debe ser mayor a 0")
	}
	return p, nil
}

// validatePatch valida todos los campos presentes antes de tocar nada y devuelve la función que los aplica.
func validatePatch(in dto.UpdateProductRequest) (func(*entity.Product), error) {
	var steps []func(*entity.Product)
	if in.Nombre != nil {
		name, err := validateName(*in.Nombre)
		if err != nil {
			return nil, err
		}
		steps = append(steps, func(p *entity.Product) { p.Name = name })
	}
	if in.Descripcion != nil {
		desc, err := validateDescription(*in.Descripcion)
		if err != nil {
			return nil, err
		}
		steps = append(steps, func(p *entity.Product) { p.Description = desc })
	}
	if in.Precio != nil {
		price, err := validatePrice(*in.Precio)
		if err != nil {
			return nil, err
		}
		steps = append(steps, func(p *entity.Product) { p.Price = price })
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.Invalid("El stock no puede ser negativo")
		}
		stock := *in.Stock
		steps = append(steps, func(p *entity.Product) { p.Stock = stock })
	}
	if in.Categoria != nil {
		category, ok := entity.ParseCategory(*in.Categoria)
		if !ok {
			return nil, domain.Invalid("La categoría debe ser: hombres, mujeres, niños o accesorios")
		}
		steps = append(steps, func(p *entity.Product) { p.Category = category })
	}
	if in.Imagen != nil {
		img := strings.TrimSpace(*in.Imagen)
		steps = append(steps, func(p *entity.Product) { p.Image = img })
	}
	if in.Estado != nil {
		status := strings.ToLower(strings.TrimSpace(*in.Estado))
		if !entity.ValidProductStatus(status) {
			return nil, domain.Invalid("El estado debe ser activo o inactivo")
		}
		steps = append(steps, func(p *entity.Product) { p.Status = status })
	}
	return func(p *entity.Product) {
		for _, step := range steps {
			step(p)
		}
	}, nil
}
