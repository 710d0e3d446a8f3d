package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
)

// SalesPersonHandler maestro de vendedores (rutas de admin).
type SalesPersonHandler struct {
	uc *usecase.SalesPersonUseCase
}

// NewSalesPersonHandler construye el handler.
func NewSalesPersonHandler(uc *usecase.SalesPersonUseCase) *SalesPersonHandler {
	return &SalesPersonHandler{uc: uc}
}

// List GET /api/sales-persons?is_active=true&role=manager&limit=20&offset=0
func (h *SalesPersonHandler) List(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	var q dto.SalesPersonListQuery
	var err error
	if q.Limit, q.Offset, err = pageQuery(c); err != nil {
		return respondDomainError(c, err)
	}
	if q.IsActive, err = queryBoolPtr(c, "is_active"); err != nil {
		return respondDomainError(c, err)
	}
	q.Role = c.Query("role")
	out, err := h.uc.List(c.UserContext(), user, q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// GetByID GET /api/sales-persons/:id
func (h *SalesPersonHandler) GetByID(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), user, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Alta de vendedor
// @Tags         sales-persons
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesPersonRequest  true  "vendedor"
// @Success      201   {object}  dto.SalesPersonResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales-persons [post]
func (h *SalesPersonHandler) Create(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	var in dto.CreateSalesPersonRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), user, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Update PUT /api/sales-persons/:id
func (h *SalesPersonHandler) Update(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.UpdateSalesPersonRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), user, id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Deactivate DELETE /api/sales-persons/:id (baja lógica).
func (h *SalesPersonHandler) Deactivate(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), user, id); err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"id": id, "is_active": false})
}
