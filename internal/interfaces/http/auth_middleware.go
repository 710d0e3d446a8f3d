package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/metrics"
	"github.com/jhoicas/daily-report-api/pkg/jwt"
)

// LocalAuthUser clave de c.Locals donde WithAuth deja el entity.AuthUser.
const LocalAuthUser = "auth_user"

// TokenVerifier lo implementa *jwt.Service.
type TokenVerifier interface {
	Verify(token string) jwt.Result
}

// AccountLookup consulta el registro vigente del usuario. Lo implementa repository.SalesPersonRepository.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.SalesPerson, error)
}

// tokenFromRequest: primero Authorization: Bearer, luego cookie auth_token y por último la legacy "token".
func tokenFromRequest(c *fiber.Ctx) string {
	if tok := jwt.ExtractFromHeader(c.Get(fiber.HeaderAuthorization)); tok != "" {
		return tok
	}
	if tok := c.Cookies(jwt.CookieName); tok != "" {
		return tok
	}
	return c.Cookies(jwt.LegacyCookieName)
}

// WithAuth valida el token de sesión y deja la identidad en c.Locals(LocalAuthUser).
// Cualquier fallo responde 401 UNAUTHORIZED con el motivo del verificador.
func WithAuth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := tokenFromRequest(c)
		if tok == "" {
			metrics.RecordAuthFailure("missing_token")
			return respondError(c, CodeUnauthorized, "autenticación requerida", nil)
		}
		res := tokens.Verify(tok)
		if !res.Valid || res.Payload == nil {
			metrics.RecordAuthFailure("invalid_token")
			msg := res.Error
			if msg == "" {
				msg = "token inválido"
			}
			return respondError(c, CodeUnauthorized, msg, nil)
		}
		c.Locals(LocalAuthUser, entity.AuthUser{
			ID:    res.Payload.UserID,
			Email: res.Payload.Email,
			Role:  res.Payload.Role,
		})
		return c.Next()
	}
}

// GetAuthUser devuelve la identidad cargada por WithAuth.
func GetAuthUser(c *fiber.Ctx) (entity.AuthUser, bool) {
	u, ok := c.Locals(LocalAuthUser).(entity.AuthUser)
	return u, ok
}

// WithRole exige que el rol del usuario esté entre roles. Debe ir después de WithAuth;
// sin identidad responde 401.
func WithRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetAuthUser(c)
		if !ok {
			return respondError(c, CodeUnauthorized, "autenticación requerida", nil)
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		metrics.RecordPolicyDenial(routePath(c))
		return respondError(c, CodeForbidden, "rol sin permiso para esta operación", nil)
	}
}

// WithAdmin atajo de WithRole(admin).
func WithAdmin() fiber.Handler {
	return WithRole(entity.RoleAdmin)
}

// RequireActiveAccount consulta el registro vigente del usuario autenticado:
// si ya no existe responde 401 UNAUTHORIZED y si está desactivado 401 ACCOUNT_DISABLED.
// Un token firmado sigue siendo válido hasta expirar; este es el punto donde se corta el acceso.
func RequireActiveAccount(users AccountLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetAuthUser(c)
		if !ok {
			return respondError(c, CodeUnauthorized, "autenticación requerida", nil)
		}
		sp, err := users.GetByID(c.UserContext(), user.ID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("consulta de cuenta fallida")
			return respondError(c, CodeInternal, "error interno del servidor", nil)
		}
		if sp == nil {
			metrics.RecordAuthFailure("unknown_user")
			return respondError(c, CodeUnauthorized, "el usuario del token no existe", nil)
		}
		if !sp.IsActive {
			metrics.RecordAuthFailure(CodeAccountDisabled)
			return respondError(c, CodeAccountDisabled, "la cuenta está deshabilitada", nil)
		}
		return c.Next()
	}
}
