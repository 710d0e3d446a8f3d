package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
)

// ReportHandler maneja las peticiones HTTP de informes diarios.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// List godoc
// @Summary      Listar informes visibles para el usuario
// @Tags         reports
// @Produce      json
// @Param        sales_person_id  query  int     false  "vendedor"
// @Param        status           query  string  false  "draft | submitted | reviewed"
// @Param        date_from        query  string  false  "YYYY-MM-DD"
// @Param        date_to          query  string  false  "YYYY-MM-DD"
// @Param        limit            query  int     false  "máx 100"
// @Param        offset           query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ReportListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	q, err := reportListQuery(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), user, q)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

func reportListQuery(c *fiber.Ctx) (dto.ReportListQuery, error) {
	var q dto.ReportListQuery
	var err error
	if q.Limit, q.Offset, err = pageQuery(c); err != nil {
		return q, err
	}
	if q.SalesPersonID, err = queryInt64Ptr(c, "sales_person_id"); err != nil {
		return q, err
	}
	if q.DateFrom, err = queryDatePtr(c, "date_from"); err != nil {
		return q, err
	}
	if q.DateTo, err = queryDatePtr(c, "date_to"); err != nil {
		return q, err
	}
	q.Status = c.Query("status")
	return q, nil
}

// Create godoc
// @Summary      Crear informe diario (el dueño es el usuario autenticado)
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReportRequest  true  "informe"
// @Success      201   {object}  dto.ReportResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	var in dto.CreateReportRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), user, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// GetByID GET /api/reports/:id
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
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

// Update PUT /api/reports/:id (solo el dueño; un informe revisado no cambia).
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.UpdateReportRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), user, id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Delete DELETE /api/reports/:id (solo borradores propios).
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
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

// Review POST /api/reports/:id/review
func (h *ReportHandler) Review(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Review(c.UserContext(), user, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// ExportPDF godoc
// @Summary      Descargar el informe en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del informe"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	data, filename, err := h.uc.ExportPDF(c.UserContext(), user, id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(data)
}
