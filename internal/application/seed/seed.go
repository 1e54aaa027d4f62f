// Package seed carga los datos iniciales: cuentas por defecto, catálogo de ejemplo
// e importación de catálogos desde hoja de cálculo.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// DefaultAccount cuenta creada cuando la tabla de usuarios está vacía.
type DefaultAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// DefaultAccounts admin/admin y vendedor/1234.
var DefaultAccounts = []DefaultAccount{
	{Name: "admin", Email: "admin@tienda.com", Password: "admin", Role: entity.RoleAdmin},
	{Name: "vendedor", Email: "vendedor@tienda.com", Password: "1234", Role: entity.RoleVendedor},
}

// CatalogItem una fila de catálogo (ejemplo o importada).
type CatalogItem struct {
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal
	Stock       int
	Categoria   string
	Imagen      string
}

// SampleCatalog productos de ejemplo que se cargan con la tienda vacía.
var SampleCatalog = []CatalogItem{
	{"Camiseta Básica Azul", "Camiseta 100% algodón de alta calidad, perfecta para uso diario", decimal.RequireFromString("29.99"), 50, "hombres", "https://via.placeholder.com/300x300?text=Camiseta+Azul"},
	{"Pantalón Vaquero Negro", "Pantalón vaquero resistente con acabado premium", decimal.RequireFromString("79.99"), 30, "hombres", "https://via.placeholder.com/300x300?text=Pantalon+Negro"},
	{"Blusa Rosa Casual", "Blusa casual en color rosa ideal para cualquier ocasión", decimal.RequireFromString("39.99"), 45, "mujeres", "https://via.placeholder.com/300x300?text=Blusa+Rosa"},
	{"Falda Negra Elegante", "Falda negra elegante para eventos y uso profesional", decimal.RequireFromString("59.99"), 25, "mujeres", "https://via.placeholder.com/300x300?text=Falda+Negra"},
	{"Camiseta Dinosaurio Niños", "Camiseta divertida con diseño de dinosaurio para niños", decimal.RequireFromString("19.99"), 60, "niños", "https://via.placeholder.com/300x300?text=Camiseta+Dino"},
	{"Pantalón Deportivo Niños", "Pantalón cómodo para actividades deportivas infantiles", decimal.RequireFromString("34.99"), 40, "niños", "https://via.placeholder.com/300x300?text=Pantalon+Sport"},
	{"Gorra Deportiva", "Gorra ajustable perfecta para actividades deportivas", decimal.RequireFromString("24.99"), 100, "accesorios", "https://via.placeholder.com/300x300?text=Gorra"},
	{"Cinturón Piel", "Cinturón de cuero genuino de alta calidad", decimal.RequireFromString("44.99"), 35, "accesorios", "https://via.placeholder.com/300x300?text=Cinturon"},
}

// Seeder carga datos iniciales de forma idempotente.
type Seeder struct {
	users    repository.UserRepository
	products repository.ProductRepository
	catalog  *usecase.ProductUseCase
	log      zerolog.Logger
}

// NewSeeder construye el seeder. catalog valida las filas importadas igual que la API.
func NewSeeder(users repository.UserRepository, products repository.ProductRepository, catalog *usecase.ProductUseCase, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, products: products, catalog: catalog, log: log}
}

// Run crea las cuentas por defecto si no hay usuarios y el catálogo de ejemplo si no hay productos.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	return s.seedProducts(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Debug().Int("usuarios", n).Msg("usuarios ya existen, seed omitido")
		return nil
	}
	now := time.Now()
	for _, a := range DefaultAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), auth.PasswordCost)
		if err != nil {
			return err
		}
		if err := s.users.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Name:         a.Name,
			Email:        a.Email,
			PasswordHash: string(hash),
			Role:         a.Role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("seed usuario %s: %w", a.Name, err)
		}
		s.log.Info().Str("username", a.Name).Str("rol", a.Role).Msg("usuario por defecto creado")
	}
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	n, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Debug().Int("productos", n).Msg("productos ya existen, seed omitido")
		return nil
	}
	owner, err := s.Owner(ctx)
	if err != nil {
		return err
	}
	created, err := s.Import(ctx, owner, SampleCatalog)
	if err != nil {
		return err
	}
	s.log.Info().Int("productos", created).Msg("catálogo de ejemplo cargado")
	return nil
}

// Import da de alta cada fila con la misma validación que POST /api/productos.
// Se detiene en la primera fila inválida indicando su posición (1 = primera fila de datos).
func (s *Seeder) Import(ctx context.Context, owner *entity.User, items []CatalogItem) (int, error) {
	who := access.Identity{UserID: owner.ID, Username: owner.Name, Email: owner.Email, Role: owner.Role}
	for i, it := range items {
		price, stock := it.Precio, it.Stock
		if _, err := s.catalog.Create(ctx, who, dto.CreateProductRequest{
			Nombre:      it.Nombre,
			Descripcion: it.Descripcion,
			Precio:      &price,
			Stock:       &stock,
			Categoria:   it.Categoria,
			Imagen:      it.Imagen,
		}); err != nil {
			return i, fmt.Errorf("fila %d (%s): %w", i+1, it.Nombre, err)
		}
	}
	return len(items), nil
}

// Owner devuelve el admin por defecto, dueño de los productos sembrados o importados.
func (s *Seeder) Owner(ctx context.Context) (*entity.User, error) {
	admin, err := s.users.GetByName(ctx, DefaultAccounts[0].Name)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.IsAdmin() {
		return nil, fmt.Errorf("seed: no existe la cuenta admin")
	}
	return admin, nil
}
