package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/pkg/config"
	"github.com/jhoicas/daily-report-api/pkg/jwt"
)

// AuthHandler maneja login, logout y perfil propio.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie config.CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Cookie(h.sessionCookie(jwt.CookieName, out.Token, out.ExpiresAt))
	return respondOK(c, fiber.StatusOK, out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie; el token sigue siendo válido hasta expirar)
// @Tags         auth
// @Produce      json
// @Success      200
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	expired := time.Unix(0, 0)
	c.Cookie(h.sessionCookie(jwt.CookieName, "", expired))
	c.Cookie(h.sessionCookie(jwt.LegacyCookieName, "", expired))
	return respondOK(c, fiber.StatusOK, fiber.Map{"logged_out": true})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := GetAuthUser(c)
	if !ok {
		return respondError(c, CodeUnauthorized, "autenticación requerida", nil)
	}
	out, err := h.uc.Me(c.UserContext(), user)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

func (h *AuthHandler) sessionCookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
