package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// =====================
// Mock: UserRepository
// =====================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	args := m.Called(ctx, name)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	return m.Called(ctx, id, active, updatedAt).Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const secret = "test-secret"

func newUseCase(repo *mockUserRepo) *AuthUseCase {
	return NewAuthUseCase(repo, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "tienda-test"}, zerolog.Nop())
}

func userWithPassword(t *testing.T, name, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID:           "00000000-0000-0000-0000-0000000000aa",
		Name:         name,
		Email:        name + "@tienda.com",
		PasswordHash: string(hash),
		Role:         entity.RoleVendedor,
		Active:       active,
	}
}

// =====================
// Register
// =====================

func TestRegister_CreaVendedorYFirmaToken(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@tienda.com").Return(nil, nil)
	repo.On("GetByName", mock.Anything, "ana").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleVendedor && u.Active && u.PasswordHash != "secreto1" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto1")) == nil
	})).Return(nil)

	out, err := newUseCase(repo).Register(context.Background(), dto.RegisterRequest{
		Nombre: " ana ", Email: "ANA@tienda.com", Password: "secreto1", Telefono: "300",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.Equal(t, "Usuario registrado exitosamente", out.Mensaje)
	assert.Equal(t, "ana", out.Usuario.Nombre)
	assert.Equal(t, "ana@tienda.com", out.Usuario.Email)
	assert.Equal(t, entity.RoleVendedor, out.Usuario.Rol)

	claims, err := jwt.Parse(secret, "tienda-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Usuario.ID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@tienda.com", claims.Email)
	assert.Equal(t, entity.RoleVendedor, claims.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@tienda.com").Return(&entity.User{ID: "x"}, nil)

	_, err := newUseCase(repo).Register(context.Background(), dto.RegisterRequest{
		Nombre: "ana", Email: "ana@tienda.com", Password: "secreto1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_NombreDuplicado(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ana@tienda.com").Return(nil, nil)
	repo.On("GetByName", mock.Anything, "ana").Return(&entity.User{ID: "x"}, nil)

	_, err := newUseCase(repo).Register(context.Background(), dto.RegisterRequest{
		Nombre: "ana", Email: "ana@tienda.com", Password: "secreto1",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	cases := map[string]dto.RegisterRequest{
		"nombre corto":   {Nombre: "ab", Email: "ab@tienda.com", Password: "secreto1"},
		"email inválido": {Nombre: "ana", Email: "no-es-email", Password: "secreto1"},
		"password corta": {Nombre: "ana", Email: "ana@tienda.com", Password: "123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(mockUserRepo)
			_, err := newUseCase(repo).Register(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertExpectations(t)
		})
	}
}

// =====================
// Login
// =====================

func TestLogin_Exitoso(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByName", mock.Anything, "vendedor").Return(userWithPassword(t, "vendedor", "1234", true), nil)

	out, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Username: "vendedor", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Sesión iniciada exitosamente", out.Mensaje)

	claims, err := jwt.Parse(secret, "tienda-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "vendedor", claims.Username)
	assert.Equal(t, "vendedor@tienda.com", claims.Email, "login y registro firman el mismo esquema de claims")
}

func TestLogin_UsuarioInexistenteYPasswordIncorrecta_MismoError(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByName", mock.Anything, "vendedor").Return(userWithPassword(t, "vendedor", "1234", true), nil)
	repo.On("GetByName", mock.Anything, "fantasma").Return(nil, nil)
	uc := newUseCase(repo)

	_, errPass := uc.Login(context.Background(), dto.LoginRequest{Username: "vendedor", Password: "mala"})
	_, errUser := uc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: "mala"})

	require.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByName", mock.Anything, "vendedor").Return(userWithPassword(t, "vendedor", "1234", false), nil)
	uc := newUseCase(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "vendedor", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	// Con contraseña incorrecta no se revela que la cuenta está desactivada.
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "vendedor", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Validacion(t *testing.T) {
	repo := new(mockUserRepo)
	_, err := newUseCase(repo).Login(context.Background(), dto.LoginRequest{Username: "ab", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newUseCase(repo).Login(context.Background(), dto.LoginRequest{Username: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertExpectations(t)
}
