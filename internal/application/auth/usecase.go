package auth

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// PasswordCost costo de bcrypt para las contraseñas guardadas.
const PasswordCost = 10

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// Register crea una cuenta de vendedor y devuelve token + usuario.
// Email y nombre deben ser únicos; el rol siempre es vendedor.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByName(ctx, in.Nombre)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleVendedor,
		Active:       true,
		Phone:        strings.TrimSpace(in.Telefono),
		Address:      strings.TrimSpace(in.Direccion),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La carrera entre dos registros iguales la resuelve el índice único.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("username", user.Name).Msg("usuario registrado")
	return uc.session(user, "Usuario registrado exitosamente")
}

// Login verifica nombre de usuario y contraseña.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error y cuestan lo mismo (un bcrypt);
// la cuenta desactivada solo se revela después de validar la contraseña.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	if utf8.RuneCountInString(username) < 3 {
		return nil, domain.Invalid("El nombre de usuario debe tener al menos 3 caracteres")
	}
	if in.Password == "" {
		return nil, domain.Invalid("La contraseña es requerida")
	}

	user, err := uc.userRepo.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		uc.log.Warn().Str("username", username).Msg("login fallido")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("username", username).Msg("login fallido")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}
	return uc.session(user, "Sesión iniciada exitosamente")
}

// session firma el token con el esquema único de claims y arma la respuesta.
func (uc *AuthUseCase) session(user *entity.User, mensaje string) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Subject{
		UserID:   user.ID,
		Username: user.Name,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Mensaje: mensaje,
		Token:   token,
		Usuario: ToPublicUser(user),
	}, nil
}

// ToPublicUser vista pública del usuario.
func ToPublicUser(u *entity.User) dto.PublicUser {
	return dto.PublicUser{ID: u.ID, Nombre: u.Name, Email: u.Email, Rol: u.Role}
}

func validateRegister(in dto.RegisterRequest) error {
	if utf8.RuneCountInString(in.Nombre) < 3 {
		return domain.Invalid("El nombre debe tener al menos 3 caracteres")
	}
	if !govalidator.IsEmail(in.Email) {
		return domain.Invalid("El email no es válido")
	}
	if utf8.RuneCountInString(in.Password) < 6 {
		return domain.Invalid("La contraseña debe tener al menos 6 caracteres")
	}
	return nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

// dummyHash hash fijo contra el que se compara cuando el usuario no existe.
func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("tienda-dummy-password"), PasswordCost)
	})
	return dummy
}
