package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/auth"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/rs/zerolog"
)

// AuthHandler maneja el login por código de acceso.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth. uc nil = autenticación desactivada.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Iniciar sesión con código de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "code"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.uc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_DISABLED", Message: "autenticación desactivada (JWT_SECRET vacío)"})
	}
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
