package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/pkg/jwt"
)

// Locals keys para sujeto y rol en Fiber.
const (
	LocalSubject = "subject"
	LocalRole    = "role"
)

// TokenVerifier valida un token de sesión.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

var _ TokenVerifier = (*jwt.Signer)(nil)

func unauthorized(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// bearerToken extrae el token de "Authorization: Bearer <token>"; ok=false si el esquema no es Bearer.
func bearerToken(header string) (token string, ok bool) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// AuthMiddleware exige un Bearer token válido y deja sujeto y rol en c.Locals.
func AuthMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		raw, ok := bearerToken(header)
		if !ok {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		if raw == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		c.Locals(LocalSubject, claims.Subject)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// OpenAccess sustituye a AuthMiddleware cuando no hay JWT_SECRET: todo el tráfico actúa como admin.
func OpenAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalSubject, "local")
		c.Locals(LocalRole, entity.RoleAdmin)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Va después de AuthMiddleware u OpenAccess.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "MISSING_ROLE", "el token no incluye rol")
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetSubject sujeto autenticado de la petición.
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

// GetRole rol autenticado de la petición.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
