package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo persistencia de comentarios.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create inserta el comentario y asigna su ID.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comments (report_id, sales_person_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, c.ReportID, c.SalesPersonID, c.Content, c.CreatedAt).Scan(&c.ID); err != nil {
		return translateError("insert comment", err)
	}
	return nil
}

// GetByID obtiene un comentario con el nombre del autor.
func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `
		SELECT c.id, c.report_id, c.sales_person_id, sp.name, c.content, c.created_at
		FROM comments c
		JOIN sales_persons sp ON sp.id = c.sales_person_id
		WHERE c.id = $1`
	var c entity.Comment
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.ReportID, &c.SalesPersonID, &c.AuthorName, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// ListByReport comentarios del informe en orden cronológico.
func (r *CommentRepo) ListByReport(ctx context.Context, reportID int64) ([]*entity.Comment, error) {
	query := `
		SELECT c.id, c.report_id, c.sales_person_id, sp.name, c.content, c.created_at
		FROM comments c
		JOIN sales_persons sp ON sp.id = c.sales_person_id
		WHERE c.report_id = $1
		ORDER BY c.created_at, c.id`
	rows, err := r.q.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.ReportID, &c.SalesPersonID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete borra un comentario.
func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
