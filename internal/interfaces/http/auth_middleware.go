package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// LocalIdentity clave de c.Locals donde se guarda la access.Identity de la petición.
const LocalIdentity = "identity"

// OptionalAuth construye la identidad de la petición a partir del Bearer Token.
// Sin header la petición sigue como anónima; con un token inválido, expirado o de otro emisor responde 401.
func OptionalAuth(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			c.Locals(LocalIdentity, access.Identity{})
			return c.Next()
		}
		claims, err := parseBearer(jwtSecret, issuer, authHeader)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Token inválido o expirado"})
		}
		c.Locals(LocalIdentity, access.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		})
		return c.Next()
	}
}

// RequirePermission declara el permiso de la ruta. Debe usarse después de OptionalAuth:
// 401 para peticiones anónimas, 403 si el rol no tiene el permiso.
func RequirePermission(p access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := access.Authorize(GetIdentity(c), p); err != nil {
			return fail(c, err)
		}
		return c.Next()
	}
}

// RequireRoleFor exige que el rol tenga el permiso sin distinguir peticiones anónimas:
// todo lo que no sea el rol autorizado recibe 403.
func RequireRoleFor(p access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := access.AuthorizeRole(GetIdentity(c), p); err != nil {
			return fail(c, err)
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad de la petición; el valor cero si es anónima.
func GetIdentity(c *fiber.Ctx) access.Identity {
	who, _ := c.Locals(LocalIdentity).(access.Identity)
	return who
}

func parseBearer(secret, issuer, header string) (*jwt.Claims, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errBadScheme
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return nil, errBadScheme
	}
	return jwt.Parse(secret, issuer, tok)
}
