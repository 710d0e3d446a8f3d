package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo persistencia de informes diarios y sus visitas.
// Create y Update escriben varias tablas: usarlo a través de TxRunner.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create inserta el informe y sus visitas. Un segundo informe del mismo vendedor y fecha → ErrConflict.
func (r *ReportRepo) Create(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO daily_reports (sales_person_id, report_date, problem, plan, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		report.SalesPersonID, report.ReportDate, report.Problem, report.Plan, string(report.Status),
		report.CreatedAt, report.UpdatedAt,
	).Scan(&report.ID)
	if err != nil {
		return translateError("insert report", err)
	}
	return r.insertVisits(ctx, report)
}

// GetByID devuelve el informe con nombre del vendedor y visitas.
func (r *ReportRepo) GetByID(ctx context.Context, id int64) (*entity.Report, error) {
	query := `
		SELECT r.id, r.sales_person_id, sp.name, r.report_date, r.problem, r.plan, r.status, r.created_at, r.updated_at
		FROM daily_reports r
		JOIN sales_persons sp ON sp.id = r.sales_person_id
		WHERE r.id = $1`
	var rep entity.Report
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rep.ID, &rep.SalesPersonID, &rep.SalesPersonName, &rep.ReportDate, &rep.Problem, &rep.Plan, &status,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	rep.Status = entity.ReportStatus(status)

	visits, err := r.listVisits(ctx, id)
	if err != nil {
		return nil, err
	}
	rep.VisitRecords = visits
	rep.VisitCount = len(visits)
	return &rep, nil
}

// List aplica el alcance de visibilidad y los filtros. Orden: fecha desc, id desc.
func (r *ReportRepo) List(ctx context.Context, filter repository.ReportFilter) ([]*entity.Report, int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	where := reportWhere(filter)

	countSQL, countArgs, err := psql.Select("COUNT(*)").
		From("daily_reports r").
		Join("sales_persons sp ON sp.id = r.sales_person_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count reports: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query, args, err := psql.Select(
		"r.id", "r.sales_person_id", "sp.name", "r.report_date", "r.problem", "r.plan", "r.status",
		"r.created_at", "r.updated_at",
		"(SELECT COUNT(*) FROM visit_records v WHERE v.report_id = r.id) AS visit_count",
		"(SELECT COUNT(*) FROM comments c WHERE c.report_id = r.id) AS comment_count",
	).
		From("daily_reports r").
		Join("sales_persons sp ON sp.id = r.sales_person_id").
		Where(where).
		OrderBy("r.report_date DESC", "r.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reports: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		var rep entity.Report
		var status string
		if err := rows.Scan(
			&rep.ID, &rep.SalesPersonID, &rep.SalesPersonName, &rep.ReportDate, &rep.Problem, &rep.Plan, &status,
			&rep.CreatedAt, &rep.UpdatedAt, &rep.VisitCount, &rep.CommentCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan report: %w", err)
		}
		rep.Status = entity.ReportStatus(status)
		list = append(list, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// reportWhere traduce alcance y filtros a predicados squirrel.
func reportWhere(filter repository.ReportFilter) sq.And {
	where := sq.And{}
	switch filter.Scope {
	case entity.ScopeAll:
	case entity.ScopeTeam:
		where = append(where, sq.Or{
			sq.Eq{"r.sales_person_id": filter.ViewerID},
			sq.Eq{"sp.manager_id": filter.ViewerID},
		})
	default:
		where = append(where, sq.Eq{"r.sales_person_id": filter.ViewerID})
	}
	if filter.SalesPersonID != nil {
		where = append(where, sq.Eq{"r.sales_person_id": *filter.SalesPersonID})
	}
	if filter.Status != nil {
		where = append(where, sq.Eq{"r.status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		where = append(where, sq.GtOrEq{"r.report_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		where = append(where, sq.LtOrEq{"r.report_date": *filter.DateTo})
	}
	return where
}

// Update actualiza problema, plan y estado y reemplaza las visitas.
// Un informe revisado no se toca: ErrConflict aunque la revisión llegue después de leerlo.
func (r *ReportRepo) Update(ctx context.Context, report *entity.Report) error {
	query := `
		UPDATE daily_reports SET problem = $2, plan = $3, status = $4, updated_at = $5
		WHERE id = $1 AND status <> $6`
	tag, err := r.q.Exec(ctx, query,
		report.ID, report.Problem, report.Plan, string(report.Status), report.UpdatedAt,
		string(entity.ReportStatusReviewed),
	)
	if err != nil {
		return translateError("update report", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, report.ID, "el informe ya fue revisado")
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM visit_records WHERE report_id = $1`, report.ID); err != nil {
		return fmt.Errorf("delete visit records: %w", err)
	}
	return r.insertVisits(ctx, report)
}

// UpdateStatus cambia el estado solo si el actual es from.
func (r *ReportRepo) UpdateStatus(ctx context.Context, id int64, from, to entity.ReportStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE daily_reports SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, string(to), at, string(from),
	)
	if err != nil {
		return translateError("update report status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id, fmt.Sprintf("el informe ya no está en estado %s", from))
	}
	return nil
}

// Delete borra el informe si sigue en borrador; visitas y comentarios caen por ON DELETE CASCADE.
func (r *ReportRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM daily_reports WHERE id = $1 AND status = $2`, id, string(entity.ReportStatusDraft))
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id, "solo se pueden eliminar borradores")
	}
	return nil
}

// missingOrConflict distingue, tras 0 filas afectadas, entre informe inexistente y estado no válido.
func (r *ReportRepo) missingOrConflict(ctx context.Context, id int64, reason string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM daily_reports WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check report: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %s", domain.ErrConflict, reason)
}

func (r *ReportRepo) insertVisits(ctx context.Context, report *entity.Report) error {
	query := `
		INSERT INTO visit_records (report_id, customer_id, visit_time, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range report.VisitRecords {
		v := &report.VisitRecords[i]
		v.ReportID = report.ID
		if err := r.q.QueryRow(ctx, query, report.ID, v.CustomerID, v.VisitTime, v.Content).Scan(&v.ID); err != nil {
			return translateError("insert visit record", err)
		}
	}
	return nil
}

func (r *ReportRepo) listVisits(ctx context.Context, reportID int64) ([]entity.VisitRecord, error) {
	query := `
		SELECT v.id, v.report_id, v.customer_id, c.name, v.visit_time, v.content
		FROM visit_records v
		JOIN customers c ON c.id = v.customer_id
		WHERE v.report_id = $1
		ORDER BY v.visit_time, v.id`
	rows, err := r.q.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("list visit records: %w", err)
	}
	defer rows.Close()

	visits := []entity.VisitRecord{}
	for rows.Next() {
		var v entity.VisitRecord
		if err := rows.Scan(&v.ID, &v.ReportID, &v.CustomerID, &v.CustomerName, &v.VisitTime, &v.Content); err != nil {
			return nil, fmt.Errorf("scan visit record: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
