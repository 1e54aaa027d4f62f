package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testSubject = pkgjwt.Subject{
	UserID:   "00000000-0000-0000-0000-000000000001",
	Username: "vendedor",
	Email:    "vendedor@tienda.com",
	Role:     "vendedor",
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "tienda-test", 60, testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, "tienda-test", tok)
	require.NoError(t, err)

	assert.Equal(t, testSubject.UserID, claims.UserID)
	assert.Equal(t, testSubject.UserID, claims.Subject)
	assert.Equal(t, testSubject.Username, claims.Username)
	assert.Equal(t, testSubject.Email, claims.Email)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "tienda-test", claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "tienda-test", -1, testSubject)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "tienda-test", tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "tienda-test", 60, testSubject)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", "tienda-test", tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "tienda-test", 60, testSubject)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "tienda-test", "x.y.z")
	assert.Error(t, err)
}

func TestJWT_EmisorDistinto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "otra-app", 60, testSubject)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, "tienda-test", tok)
	assert.Error(t, err, "un token firmado con el mismo secret pero otro emisor se rechaza")

	claims, err := pkgjwt.Parse(testSecret, "", tok)
	require.NoError(t, err, "sin emisor configurado no se compara iss")
	assert.Equal(t, "otra-app", claims.Issuer)
}
