package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes llegan tal cual al cliente en el campo "message".
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrSaleNotFound          = errors.New("venta no encontrada")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidCredentials    = errors.New("usuario o contraseña incorrectos")
	ErrAccountDisabled       = errors.New("tu cuenta ha sido desactivada")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("usuario no autenticado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
)

// Error es un error de dominio con mensaje propio para el cliente; errors.Is lo resuelve contra Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error del tipo kind con mensaje formateado.
// Ej: Errorf(ErrInsufficientStock, "Stock insuficiente para %s", nombre).
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Invalid es un atajo para errores de validación de entrada.
func Invalid(format string, args ...any) error {
	return Errorf(ErrInvalidInput, format, args...)
}
