package dto

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// FromProduct convierte la entidad a su vista HTTP.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Name,
		Descripcion: p.Description,
		Precio:      p.Price,
		Stock:       p.Stock,
		Categoria:   string(p.Category),
		Imagen:      p.Image,
		Estado:      p.Status,
		VendedorID:  p.SellerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromSale convierte una venta con sus detalles.
func FromSale(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:         s.ID,
		VendedorID: s.SellerID,
		Subtotal:   s.Subtotal,
		Impuesto:   s.Tax,
		Total:      s.Total,
		Estado:     s.Status,
		Detalles:   make([]SaleDetailResponse, 0, len(s.Details)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	for _, d := range s.Details {
		det := SaleDetailResponse{
			ID:             d.ID,
			VentaID:        s.ID,
			ProductoID:     d.ProductID,
			NombreProducto: d.ProductName,
			Cantidad:       d.Quantity,
			PrecioUnitario: d.UnitPrice,
			Subtotal:       d.Subtotal,
		}
		if d.Product != nil {
			p := FromProduct(d.Product)
			det.Producto = &p
		}
		out.Detalles = append(out.Detalles, det)
	}
	return out
}

// FromSales convierte una lista; nunca devuelve nil para que el JSON sea [].
func FromSales(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromSale(s))
	}
	return out
}

// FromUser vista administrativa del usuario.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nombre:    u.Name,
		Email:     u.Email,
		Rol:       u.Role,
		Activo:    u.Active,
		Telefono:  u.Phone,
		Direccion: u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromStockMovement convierte un movimiento de stock.
func FromStockMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		ProductoID:    m.ProductID,
		VentaID:       m.SaleID,
		Tipo:          m.Type,
		Cantidad:      m.Quantity,
		StockAnterior: m.StockBefore,
		StockNuevo:    m.StockAfter,
		UsuarioID:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
