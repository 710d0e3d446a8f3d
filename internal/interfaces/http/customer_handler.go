package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /api/customers?q=acme&limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.CustomerListQuery
	var err error
	if q.Limit, q.Offset, err = pageQuery(c); err != nil {
		return respondDomainError(c, err)
	}
	q.Query = c.Query("q")
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), user, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.UpdateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), user, id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), user, id); err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"id": id})
}
