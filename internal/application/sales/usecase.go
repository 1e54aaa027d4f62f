// Package sales orquesta el ciclo de vida de las ventas: creación con reserva de stock,
// completado, cancelación con devolución de stock y consultas.
package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	domainsales "github.com/jhoicas/tienda-api/internal/domain/sales"
)

// Options parámetros de negocio de las ventas.
type Options struct {
	TaxRate  decimal.Decimal
	Location *time.Location // zona para los límites del día en consultas por fecha
}

// SalesUseCase casos de uso de ventas. Toda mutación de stock ocurre dentro de TxRunner.Run
// con las filas de producto bloqueadas.
type SalesUseCase struct {
	tx       repository.TxRunner
	saleRepo repository.SaleRepository
	opts     Options
	log      zerolog.Logger
	now      func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(tx repository.TxRunner, saleRepo repository.SaleRepository, opts Options, log zerolog.Logger) *SalesUseCase {
	if opts.TaxRate.IsZero() {
		opts.TaxRate = domainsales.DefaultTaxRate
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &SalesUseCase{tx: tx, saleRepo: saleRepo, opts: opts, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesUseCase) WithClock(now func() time.Time) *SalesUseCase {
	uc.now = now
	return uc
}

// Create registra una venta pendiente. Dentro de una única transacción bloquea los productos
// (en orden de id), valida todas las líneas contra el stock y solo entonces descuenta.
// Si cualquier línea falla no se modifica nada.
func (uc *SalesUseCase) Create(ctx context.Context, who access.Identity, in dto.CreateSaleRequest) (*dto.SaleSummaryResponse, error) {
	if err := access.Authorize(who, access.PermSaleCreate); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("La venta debe tener al menos un producto")
	}
	requested := make(map[string]int, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		item.ProductoID = strings.TrimSpace(item.ProductoID)
		if item.ProductoID == "" {
			return nil, domain.Invalid("Cada producto debe indicar producto_id")
		}
		if item.Cantidad < 1 {
			return nil, domain.Invalid("La cantidad debe ser al menos 1")
		}
		if _, err := uuid.Parse(item.ProductoID); err != nil {
			return nil, productNotFound(item.ProductoID)
		}
		requested[item.ProductoID] += item.Cantidad
	}
	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := uc.now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		SellerID:  who.UserID,
		Status:    entity.SaleStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository, movs repository.StockMovementRepository) error {
		locked := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			p, err := products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil || !p.IsActive() {
				return productNotFound(id)
			}
			locked[id] = p
		}
		// Validación completa antes de la primera escritura.
		for _, id := range ids {
			if p := locked[id]; p.Stock < requested[id] {
				return domain.Errorf(domain.ErrInsufficientStock, "Stock insuficiente para %s", p.Name)
			}
		}

		movements := make([]*entity.StockMovement, 0, len(in.Items))
		for _, item := range in.Items {
			p := locked[item.ProductoID]
			before := p.Stock
			p.Stock -= item.Cantidad
			sale.Details = append(sale.Details, &entity.SaleDetail{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Cantidad,
				UnitPrice:   p.Price,
				Subtotal:    domainsales.LineSubtotal(p.Price, item.Cantidad),
			})
			movements = append(movements, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				SaleID:      sale.ID,
				Type:        entity.MovementTypeSale,
				Quantity:    -item.Cantidad,
				StockBefore: before,
				StockAfter:  p.Stock,
				CreatedBy:   who.UserID,
				CreatedAt:   now,
			})
		}
		totals := domainsales.CalculateTotals(sale.Details, uc.opts.TaxRate)
		sale.Subtotal, sale.Tax, sale.Total = totals.Subtotal, totals.Tax, totals.Total

		// La venta va primero: los movimientos la referencian.
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		for _, id := range ids {
			if err := products.UpdateStock(ctx, id, locked[id].Stock, now); err != nil {
				return err
			}
		}
		for _, m := range movements {
			if err := movs.Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("seller_id", sale.SellerID).
		Str("total", sale.Total.StringFixed(2)).Int("lineas", len(sale.Details)).Msg("venta creada")
	return &dto.SaleSummaryResponse{
		ID:         sale.ID,
		VendedorID: sale.SellerID,
		Subtotal:   sale.Subtotal,
		Impuesto:   sale.Tax,
		Total:      sale.Total,
		Estado:     sale.Status,
		CreatedAt:  sale.CreatedAt,
	}, nil
}

// Complete marca como completada una venta pendiente del propio vendedor.
func (uc *SalesUseCase) Complete(ctx context.Context, who access.Identity, saleID string) (*dto.SaleResponse, error) {
	if err := access.Authorize(who, access.PermSaleComplete); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := uc.tx.Run(ctx, func(_ repository.ProductRepository, sales repository.SaleRepository, _ repository.StockMovementRepository) error {
		sale, err := uc.lockOwned(ctx, sales, who, saleID, entity.SaleStatusCompleted)
		if err != nil {
			return err
		}
		now := uc.now()
		if err := sales.UpdateStatus(ctx, sale.ID, entity.SaleStatusCompleted, now); err != nil {
			return err
		}
		sale.Status, sale.UpdatedAt = entity.SaleStatusCompleted, now
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", out.ID).Str("seller_id", who.UserID).Msg("venta completada")
	resp := dto.FromSale(out)
	return &resp, nil
}

// Cancel cancela una venta pendiente del propio vendedor y devuelve el stock de sus líneas.
// Las líneas cuyo producto ya fue eliminado se omiten.
func (uc *SalesUseCase) Cancel(ctx context.Context, who access.Identity, saleID string) (*dto.SaleResponse, error) {
	if err := access.Authorize(who, access.PermSaleCancel); err != nil {
		return nil, err
	}
	var out *entity.Sale
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository, movs repository.StockMovementRepository) error {
		sale, err := uc.lockOwned(ctx, sales, who, saleID, entity.SaleStatusCancelled)
		if err != nil {
			return err
		}
		restore := make(map[string]int)
		for _, d := range sale.Details {
			if d.ProductID != "" {
				restore[d.ProductID] += d.Quantity
			}
		}
		ids := make([]string, 0, len(restore))
		for id := range restore {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		now := uc.now()
		for _, id := range ids {
			p, err := products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				continue
			}
			after := p.Stock + restore[id]
			if err := products.UpdateStock(ctx, id, after, now); err != nil {
				return err
			}
			if err := movs.Create(ctx, &entity.StockMovement{
				ID:          uuid.New().String(),
				ProductID:   id,
				SaleID:      sale.ID,
				Type:        entity.MovementTypeCancellation,
				Quantity:    restore[id],
				StockBefore: p.Stock,
				StockAfter:  after,
				CreatedBy:   who.UserID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
			for _, d := range sale.Details {
				if d.ProductID == id && d.Product != nil {
					d.Product.Stock = after
				}
			}
		}
		if err := sales.UpdateStatus(ctx, sale.ID, entity.SaleStatusCancelled, now); err != nil {
			return err
		}
		sale.Status, sale.UpdatedAt = entity.SaleStatusCancelled, now
		out = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sale_id", out.ID).Str("seller_id", who.UserID).Msg("venta cancelada")
	resp := dto.FromSale(out)
	return &resp, nil
}

// lockOwned bloquea la venta y verifica existencia, dueño y que admita la transición a target.
func (uc *SalesUseCase) lockOwned(ctx context.Context, sales repository.SaleRepository, who access.Identity, saleID, target string) (*entity.Sale, error) {
	if _, err := uuid.Parse(saleID); err != nil {
		return nil, saleNotFound()
	}
	sale, err := sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saleNotFound()
	}
	if sale.SellerID != who.UserID {
		return nil, domain.Errorf(domain.ErrForbidden, "No tienes permiso para modificar esta venta")
	}
	if !domainsales.CanTransition(sale.Status, target) {
		return nil, domain.Errorf(domain.ErrInvalidTransition, "La venta ya está %s", sale.Status)
	}
	return sale, nil
}

// List devuelve todas las ventas para quien puede verlas todas (admin) o solo las propias (vendedor).
func (uc *SalesUseCase) List(ctx context.Context, who access.Identity) ([]dto.SaleResponse, error) {
	if err := access.Authorize(who, access.PermSaleList); err != nil {
		return nil, err
	}
	var filter repository.SaleFilter
	if !who.Can(access.PermSaleListAll) {
		filter.SellerID = who.UserID
	}
	list, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromSales(list), nil
}

// ListByDate ventas completadas creadas en el día fecha (YYYY-MM-DD) de la zona configurada.
func (uc *SalesUseCase) ListByDate(ctx context.Context, who access.Identity, fecha string) ([]dto.SaleResponse, error) {
	if err := access.Authorize(who, access.PermSaleReports); err != nil {
		return nil, err
	}
	if strings.TrimSpace(fecha) == "" {
		return nil, domain.Invalid("La fecha es requerida")
	}
	day, err := domainsales.ResolveDay(fecha, uc.opts.Location, uc.now())
	if err != nil {
		return nil, err
	}
	list, err := CompletedOn(ctx, uc.saleRepo, day)
	if err != nil {
		return nil, err
	}
	return dto.FromSales(list), nil
}

// CompletedOn ventas completadas dentro del día, más recientes primero.
func CompletedOn(ctx context.Context, repo repository.SaleRepository, day domainsales.DayRange) ([]*entity.Sale, error) {
	from, to := day.From, day.To
	return repo.List(ctx, repository.SaleFilter{
		Status: entity.SaleStatusCompleted,
		From:   &from,
		To:     &to,
	})
}

func productNotFound(id string) error {
	return domain.Errorf(domain.ErrProductNotFound, "Producto %s no encontrado", id)
}

func saleNotFound() error {
	return domain.Errorf(domain.ErrSaleNotFound, "Venta no encontrada")
}
