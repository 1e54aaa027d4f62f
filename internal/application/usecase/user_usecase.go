package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase administración de cuentas (listar, activar, desactivar).
type UserUseCase struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// List devuelve todas las cuentas sin contraseña.
func (uc *UserUseCase) List(ctx context.Context, who access.Identity) ([]dto.UserResponse, error) {
	if err := access.Authorize(who, access.PermUserManage); err != nil {
		return nil, err
	}
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// SetActive activa o desactiva una cuenta. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, who access.Identity, id string, active bool) (*dto.UserResponse, error) {
	if err := access.Authorize(who, access.PermUserManage); err != nil {
		return nil, err
	}
	if !active && id == who.UserID {
		return nil, domain.Errorf(domain.ErrConflict, "No puedes desactivar tu propia cuenta")
	}
	if !validID(id) {
		return nil, userNotFound(id)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(id)
	}
	now := time.Now()
	if err := uc.repo.SetActive(ctx, id, active, now); err != nil {
		return nil, err
	}
	user.Active = active
	user.UpdatedAt = now
	uc.log.Info().Str("user_id", id).Bool("activo", active).Str("by", who.UserID).Msg("estado de cuenta actualizado")
	out := dto.FromUser(user)
	return &out, nil
}

func userNotFound(id string) error {
	return domain.Errorf(domain.ErrUserNotFound, "Usuario %s no encontrado", id)
}
