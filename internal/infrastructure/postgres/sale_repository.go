package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, seller_id, subtotal, tax, total, status, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y después los detalles en un batch. Llamar dentro de una tx.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sale.ID, sale.SellerID, sale.Subtotal, sale.Tax, sale.Total, sale.Status, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	if len(sale.Details) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, d := range sale.Details {
		batch.Queue(`
			INSERT INTO sale_details (id, sale_id, product_id, product_name, quantity, unit_price, subtotal, position)
			VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8)`,
			d.ID, sale.ID, d.ProductID, d.ProductName, d.Quantity, d.UnitPrice, d.Subtotal, i,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	for range sale.Details {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert sale detail: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert sale details: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus detalles y productos.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate como GetByID pero bloquea la fila de la venta hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadDetails(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// List aplica el filtro y devuelve las ventas más recientes primero con detalles y productos.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.SellerID != "" {
		add("seller_id = $%d", filter.SellerID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	if err := r.loadDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadDetails carga en una sola consulta los detalles (con su producto, si aún existe) de las ventas dadas.
func (r *SaleRepo) loadDetails(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sales))
	byID := make(map[string]*entity.Sale, len(sales))
	for _, s := range sales {
		s.Details = []*entity.SaleDetail{}
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.sale_id, COALESCE(d.product_id::text, ''), d.product_name, d.quantity, d.unit_price, d.subtotal,
			p.name, p.description, p.price, p.stock, p.category, p.image, p.status, p.seller_id::text, p.created_at, p.updated_at
		FROM sale_details d
		LEFT JOIN products p ON p.id = d.product_id
		WHERE d.sale_id = ANY($1::uuid[])
		ORDER BY d.sale_id, d.position`, ids)
	if err != nil {
		return fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d entity.SaleDetail
		var (
			pName, pDescription, pCategory, pImage, pStatus, pSeller *string
			pPrice                                                   decimal.NullDecimal
			pStock                                                   *int
			pCreated, pUpdated                                       *time.Time
		)
		if err := rows.Scan(
			&d.ID, &d.SaleID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.Subtotal,
			&pName, &pDescription, &pPrice, &pStock, &pCategory, &pImage, &pStatus, &pSeller, &pCreated, &pUpdated,
		); err != nil {
			return fmt.Errorf("scan sale detail: %w", err)
		}
		if d.ProductID != "" && pName != nil {
			d.Product = &entity.Product{
				ID:          d.ProductID,
				Name:        *pName,
				Description: deref(pDescription),
				Price:       pPrice.Decimal,
				Category:    entity.Category(deref(pCategory)),
				Image:       deref(pImage),
				Status:      deref(pStatus),
				SellerID:    deref(pSeller),
			}
			if pStock != nil {
				d.Product.Stock = *pStock
			}
			if pCreated != nil {
				d.Product.CreatedAt = *pCreated
			}
			if pUpdated != nil {
				d.Product.UpdatedAt = *pUpdated
			}
		}
		if s, ok := byID[d.SaleID]; ok {
			s.Details = append(s.Details, &d)
		}
	}
	return rows.Err()
}

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.SellerID, &s.Subtotal, &s.Tax, &s.Total, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
