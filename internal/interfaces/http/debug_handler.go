package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// DebugHandler expone los claims verificados del token. Solo fuera de producción.
type DebugHandler struct {
	jwtSecret string
	issuer    string
	enabled   bool
}

// NewDebugHandler construye el handler; enabled=false hace que siempre responda 401.
func NewDebugHandler(jwtSecret, issuer string, enabled bool) *DebugHandler {
	return &DebugHandler{jwtSecret: jwtSecret, issuer: issuer, enabled: enabled}
}

// Token godoc
// @Summary      Inspeccionar token
// @Tags         debug
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <token>"
// @Success      200  {object}  dto.TokenInfoResponse
// @Failure      401  {object}  dto.TokenInfoResponse
// @Router       /debug/token [get]
func (h *DebugHandler) Token(c *fiber.Ctx) error {
	if !h.enabled {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.TokenInfoResponse{OK: false, Message: "No disponible en producción"})
	}
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.TokenInfoResponse{OK: false, Message: "Authorization header requerido"})
	}
	claims, err := parseBearer(h.jwtSecret, h.issuer, header)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.TokenInfoResponse{OK: false, Message: err.Error()})
	}
	out := dto.TokenInfoResponse{
		OK:       true,
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Rol:      claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.Expira = claims.ExpiresAt.Unix()
	}
	return c.JSON(out)
}
