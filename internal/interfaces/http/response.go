package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/metrics"
)

// Códigos de error de la API.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeAccountDisabled = "ACCOUNT_DISABLED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
	CodeInternal        = "INTERNAL_ERROR"
)

// StatusForCode status HTTP de cada código. Desconocido → 500.
func StatusForCode(code string) int {
	switch code {
	case CodeUnauthorized, CodeAccountDisabled:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondOK(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.SuccessResponse{Success: true, Data: data})
}

func respondError(c *fiber.Ctx, code, message string, details map[string]string) error {
	status := StatusForCode(code)
	if status == fiber.StatusInternalServerError {
		code = CodeInternal
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Success: false,
		Error:   dto.ErrorBody{Code: code, Message: message, Details: details},
	})
}

// respondDomainError traduce errores de dominio al sobre de error. Lo no reconocido es 500
// y el detalle solo va al log.
func respondDomainError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondError(c, CodeValidation, "datos inválidos", verr.Fields)
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.RecordAuthFailure("invalid_credentials")
		return respondError(c, CodeUnauthorized, domain.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, domain.ErrAccountDisabled):
		metrics.RecordAuthFailure(CodeAccountDisabled)
		return respondError(c, CodeAccountDisabled, domain.ErrAccountDisabled.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.RecordAuthFailure(CodeUnauthorized)
		return respondError(c, CodeUnauthorized, domain.ErrUnauthorized.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		metrics.RecordPolicyDenial(routePath(c))
		return respondError(c, CodeForbidden, "no tiene permiso para esta operación", nil)
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, CodeNotFound, domain.ErrNotFound.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return respondError(c, CodeConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, CodeValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("funcionalidad no disponible")
		return respondError(c, CodeUnavailable, err.Error(), nil)
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return respondError(c, CodeInternal, "error interno del servidor", nil)
	}
}

func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}

// ErrorHandler maneja los errores que llegan a Fiber (rutas inexistentes, panics recuperados, ...).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return respondError(c, CodeNotFound, "ruta no encontrada", nil)
		case fiber.StatusMethodNotAllowed:
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: dto.ErrorBody{Code: "METHOD_NOT_ALLOWED", Message: fe.Message}})
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			return respondError(c, CodeValidation, fe.Message, nil)
		}
	}
	return respondDomainError(c, err)
}
