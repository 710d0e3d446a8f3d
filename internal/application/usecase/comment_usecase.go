package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

// CommentUseCase comentarios sobre informes diarios.
type CommentUseCase struct {
	reports  repository.ReportRepository
	comments repository.CommentRepository
	policy   *policy.AccessPolicy
	now      func() time.Time
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(reports repository.ReportRepository, comments repository.CommentRepository, p *policy.AccessPolicy) *CommentUseCase {
	return &CommentUseCase{reports: reports, comments: comments, policy: p, now: time.Now}
}

// List comentarios de un informe visible para user, en orden cronológico.
func (uc *CommentUseCase) List(ctx context.Context, user entity.AuthUser, reportID int64) (out []dto.CommentResponse, err error) {
	ctx, span := startSpan(ctx, "CommentUseCase.List", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanViewReport(ctx, user, report.SalesPersonID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.comments.ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	out = make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCommentResponse(c))
	}
	return out, nil
}

// Create agrega un comentario de user al informe.
func (uc *CommentUseCase) Create(ctx context.Context, user entity.AuthUser, reportID int64, in dto.CreateCommentRequest) (out *dto.CommentResponse, err error) {
	ctx, span := startSpan(ctx, "CommentUseCase.Create", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanPostComment(ctx, user, report.SalesPersonID) {
		return nil, domain.ErrForbidden
	}
	c := &entity.Comment{
		ReportID:      reportID,
		SalesPersonID: user.ID,
		Content:       in.Content,
		CreatedAt:     uc.now(),
	}
	if err := uc.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	saved, err := uc.comments.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return toCommentResponse(c), nil
	}
	return toCommentResponse(saved), nil
}

// Delete borra un comentario. Solo su autor puede hacerlo, admin incluido.
func (uc *CommentUseCase) Delete(ctx context.Context, user entity.AuthUser, id int64) (err error) {
	ctx, span := startSpan(ctx, "CommentUseCase.Delete", user)
	defer func() { endSpan(span, err) }()

	c, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if c.SalesPersonID != user.ID {
		return domain.ErrForbidden
	}
	return uc.comments.Delete(ctx, id)
}

func toCommentResponse(c *entity.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:              c.ID,
		ReportID:        c.ReportID,
		SalesPersonID:   c.SalesPersonID,
		SalesPersonName: c.AuthorName,
		Content:         c.Content,
		CreatedAt:       c.CreatedAt,
	}
}
