package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa una cuenta de la tienda. Nombre y Email son únicos.
type User struct {
	ID           string
	Name         string // nombre de usuario, se usa para el login
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, vendedor
	Active       bool
	Phone        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario administra el catálogo.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}
