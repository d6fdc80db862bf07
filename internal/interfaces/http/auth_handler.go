package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/auth"
	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
)

// AuthHandler maneja login y logout del portal de sesión.
type AuthHandler struct {
	uc         *auth.UseCase
	cookieName string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, cookieName string) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.OKResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, expires, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	setSessionCookie(c, h.cookieName, token, expires)
	return c.JSON(dto.OKResponse{OK: true})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c, h.cookieName)
	return c.JSON(dto.OKResponse{OK: true})
}
