// Package access define la identidad tipada de cada petición y la tabla de permisos por rol.
package access

import (
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Permission es una capacidad que una ruta o caso de uso exige.
type Permission string

// Permisos de la aplicación.
const (
	PermProductCreate Permission = "productos:crear"
	PermProductUpdate Permission = "productos:editar"
	PermProductDelete Permission = "productos:eliminar"
	PermSaleCreate    Permission = "ventas:crear"
	PermSaleComplete  Permission = "ventas:completar"
	PermSaleCancel    Permission = "ventas:cancelar"
	PermSaleList      Permission = "ventas:listar"
	PermSaleListAll   Permission = "ventas:listar_todas"
	PermSaleReports   Permission = "ventas:reportes"
	PermUserManage    Permission = "usuarios:gestionar"
)

// policy es la única fuente de verdad rol → permisos.
var policy = map[string]map[Permission]bool{
	entity.RoleAdmin: {
		PermProductCreate: true,
		PermProductUpdate: true,
		PermProductDelete: true,
		PermSaleList:      true,
		PermSaleListAll:   true,
		PermSaleReports:   true,
		PermUserManage:    true,
	},
	entity.RoleVendedor: {
		PermSaleCreate:   true,
		PermSaleComplete: true,
		PermSaleCancel:   true,
		PermSaleList:     true,
	},
}

// Identity es el principal de la petición, construido una vez a partir del token.
// El valor cero representa a un usuario anónimo.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

// Anonymous indica que la petición no trae token.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

// Can indica si el rol de la identidad tiene el permiso.
func (i Identity) Can(p Permission) bool {
	return policy[i.Role][p]
}

// Authorize devuelve ErrUnauthorized si la identidad es anónima y ErrForbidden si su rol no tiene el permiso.
func Authorize(i Identity, p Permission) error {
	if i.Anonymous() {
		return domain.ErrUnauthorized
	}
	if !i.Can(p) {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeRole solo mira el rol: una identidad anónima no tiene rol y recibe ErrForbidden,
// igual que cualquier otro rol sin el permiso. Es el contrato de las escrituras del catálogo.
func AuthorizeRole(i Identity, p Permission) error {
	if !i.Can(p) {
		return domain.ErrForbidden
	}
	return nil
}
