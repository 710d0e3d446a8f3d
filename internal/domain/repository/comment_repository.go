package repository

import (
	"context"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// CommentRepository puerto de persistencia de comentarios.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	ListByReport(ctx context.Context, reportID int64) ([]*entity.Comment, error)
	Delete(ctx context.Context, id int64) error
}
