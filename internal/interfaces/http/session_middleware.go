package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/pkg/session"
)

// LocalUsername key de Locals con el usuario autenticado.
const LocalUsername = "username"

// publicPaths rutas accesibles sin sesión: health, la pantalla de login (y su
// archivo estático) y el endpoint de login. El resto del sitio, incluidos
// /docs y el frontend, queda detrás del portal.
var publicPaths = map[string]bool{
	"/health":     true,
	"/login":      true,
	"/login.html": true,
	"/api/login":  true,
}

func isPublicPath(path string) bool {
	return publicPaths[path]
}

// SessionMiddleware valida la cookie de sesión en cada petición no pública.
// Cookie ausente, inválida o expirada: se limpia la cookie y se responde 401
// JSON en rutas /api/* o redirección a /login en navegación de páginas.
func SessionMiddleware(secret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if isPublicPath(path) {
			return c.Next()
		}

		token := c.Cookies(cookieName)
		if token != "" {
			username, err := session.Parse(secret, token)
			if err == nil {
				c.Locals(LocalUsername, username)
				return c.Next()
			}
		}

		clearSessionCookie(c, cookieName)
		if strings.HasPrefix(path, "/api/") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		return c.Redirect("/login", fiber.StatusFound)
	}
}

// GetUsername devuelve el usuario de la sesión (después del middleware).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// setSessionCookie instala la cookie de sesión con los atributos de seguridad
// del portal: HttpOnly, SameSite Lax y expiración absoluta igual a la del token.
func setSessionCookie(c *fiber.Ctx, name, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie invalida la cookie en el navegador (valor vacío, expirada).
func clearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
