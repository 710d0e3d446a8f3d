package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/application/usecase"
)

// CommentHandler comentarios de informes.
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// List GET /api/reports/:id/comments
func (h *CommentHandler) List(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	reportID, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), user, reportID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Comentar un informe (admin, o jefe directo del dueño)
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del informe"
// @Param        body  body  dto.CreateCommentRequest  true  "contenido"
// @Success      201   {object}  dto.CommentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	user, _ := GetAuthUser(c)
	reportID, err := paramID(c, "id")
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.CreateCommentRequest
	if err := parseBody(c, &in); err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), user, reportID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, fiber.StatusCreated, out)
}

// Delete DELETE /api/comments/:id (solo el autor).
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
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
