package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ReportPDFGenerator genera el PDF de un informe diario.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *entity.Report, comments []*entity.Comment) ([]byte, error)
}

// ReportUseCase ciclo de vida del informe diario: borrador, enviado, revisado.
type ReportUseCase struct {
	tx        repository.TxRunner
	reports   repository.ReportRepository
	comments  repository.CommentRepository
	customers repository.CustomerRepository
	policy    *policy.AccessPolicy
	pdf       ReportPDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. Con pdf nil la exportación responde ErrUnavailable.
func NewReportUseCase(
	tx repository.TxRunner,
	reports repository.ReportRepository,
	comments repository.CommentRepository,
	customers repository.CustomerRepository,
	p *policy.AccessPolicy,
	pdf ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		tx:        tx,
		reports:   reports,
		comments:  comments,
		customers: customers,
		policy:    p,
		pdf:       pdf,
		now:       time.Now,
	}
}

// List lista los informes visibles para user según su rol.
func (uc *ReportUseCase) List(ctx context.Context, user entity.AuthUser, q dto.ReportListQuery) (out *dto.ReportListResponse, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.List", user)
	defer func() { endSpan(span, err) }()

	q.DefaultPage()
	filter := repository.ReportFilter{
		Scope:         uc.policy.ReportScope(user),
		ViewerID:      user.ID,
		SalesPersonID: q.SalesPersonID,
		DateFrom:      q.DateFrom,
		DateTo:        q.DateTo,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	if q.Status != "" {
		status, ok := entity.ParseReportStatus(q.Status)
		if !ok {
			return nil, domain.NewValidationError("status", "estado desconocido")
		}
		filter.Status = &status
	}
	if q.DateFrom != nil && q.DateTo != nil && q.DateFrom.After(*q.DateTo) {
		return nil, domain.NewValidationError("date_from", "date_from debe ser anterior o igual a date_to")
	}
	list, total, err := uc.reports.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportSummaryResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReportSummaryResponse{
			ID:              r.ID,
			SalesPersonID:   r.SalesPersonID,
			SalesPersonName: r.SalesPersonName,
			ReportDate:      r.ReportDate.Format(dateLayout),
			Status:          string(r.Status),
			VisitCount:      r.VisitCount,
			CommentCount:    r.CommentCount,
			UpdatedAt:       r.UpdatedAt,
		})
	}
	return &dto.ReportListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// GetByID devuelve el informe con visitas y comentarios si user puede verlo.
func (uc *ReportUseCase) GetByID(ctx context.Context, user entity.AuthUser, id int64) (out *dto.ReportResponse, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.GetByID", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.loadVisible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	comments, err := uc.comments.ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReportResponse(report, comments), nil
}

// Create crea el informe de user para la fecha indicada.
func (uc *ReportUseCase) Create(ctx context.Context, user entity.AuthUser, in dto.CreateReportRequest) (out *dto.ReportResponse, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.Create", user)
	defer func() { endSpan(span, err) }()

	date, err := time.ParseInLocation(dateLayout, in.ReportDate, time.UTC)
	if err != nil {
		return nil, domain.NewValidationError("report_date", "formato esperado YYYY-MM-DD")
	}
	status, err := parseWritableStatus(in.Status)
	if err != nil {
		return nil, err
	}
	visits, err := uc.buildVisits(ctx, in.VisitRecords)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	report := &entity.Report{
		SalesPersonID: user.ID,
		ReportDate:    date,
		Problem:       in.Problem,
		Plan:          in.Plan,
		Status:        status,
		VisitRecords:  visits,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.tx.RunReports(ctx, func(reports repository.ReportRepository) error {
		return reports.Create(ctx, report)
	})
	if err != nil {
		return nil, fmt.Errorf("crear informe: %w", err)
	}
	saved, err := uc.reports.GetByID(ctx, report.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, domain.ErrNotFound
	}
	return toReportResponse(saved, nil), nil
}

// Update edita un informe propio que aún no fue revisado. Las visitas se reemplazan completas.
func (uc *ReportUseCase) Update(ctx context.Context, user entity.AuthUser, id int64, in dto.UpdateReportRequest) (out *dto.ReportResponse, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.Update", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.loadEditable(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if !report.Editable() {
		return nil, fmt.Errorf("%w: un informe revisado no se puede modificar", domain.ErrConflict)
	}
	status, err := parseWritableStatus(in.Status)
	if err != nil {
		return nil, err
	}
	visits, err := uc.buildVisits(ctx, in.VisitRecords)
	if err != nil {
		return nil, err
	}
	report.Problem = in.Problem
	report.Plan = in.Plan
	report.Status = status
	report.VisitRecords = visits
	report.UpdatedAt = uc.now()
	err = uc.tx.RunReports(ctx, func(reports repository.ReportRepository) error {
		return reports.Update(ctx, report)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar informe: %w", err)
	}
	saved, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, domain.ErrNotFound
	}
	comments, err := uc.comments.ListByReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReportResponse(saved, comments), nil
}

// Delete elimina un borrador propio.
func (uc *ReportUseCase) Delete(ctx context.Context, user entity.AuthUser, id int64) (err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.Delete", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.loadEditable(ctx, user, id)
	if err != nil {
		return err
	}
	if !report.Deletable() {
		return fmt.Errorf("%w: solo se pueden eliminar borradores", domain.ErrConflict)
	}
	return uc.tx.RunReports(ctx, func(reports repository.ReportRepository) error {
		return reports.Delete(ctx, id)
	})
}

// Review marca como revisado un informe enviado. Requiere permiso de comentario.
func (uc *ReportUseCase) Review(ctx context.Context, user entity.AuthUser, id int64) (out *dto.ReportResponse, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.Review", user)
	defer func() { endSpan(span, err) }()

	report, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanPostComment(ctx, user, report.SalesPersonID) {
		return nil, domain.ErrForbidden
	}
	if report.Status != entity.ReportStatusSubmitted {
		return nil, fmt.Errorf("%w: solo se revisan informes enviados (estado actual: %s)", domain.ErrConflict, report.Status)
	}
	err = uc.tx.RunReports(ctx, func(reports repository.ReportRepository) error {
		return reports.UpdateStatus(ctx, id, entity.ReportStatusSubmitted, entity.ReportStatusReviewed, uc.now())
	})
	if err != nil {
		return nil, fmt.Errorf("revisar informe: %w", err)
	}
	return uc.GetByID(ctx, user, id)
}

// ExportPDF genera el PDF del informe. Devuelve el contenido y el nombre de archivo sugerido.
func (uc *ReportUseCase) ExportPDF(ctx context.Context, user entity.AuthUser, id int64) (data []byte, filename string, err error) {
	ctx, span := startSpan(ctx, "ReportUseCase.ExportPDF", user)
	defer func() { endSpan(span, err) }()

	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%w: generador de PDF no configurado", domain.ErrUnavailable)
	}
	report, err := uc.loadVisible(ctx, user, id)
	if err != nil {
		return nil, "", err
	}
	comments, err := uc.comments.ListByReport(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err = uc.pdf.GenerateReportPDF(ctx, report, comments)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf: %w", err)
	}
	filename = fmt.Sprintf("informe_%d_%s.pdf", report.SalesPersonID, report.ReportDate.Format(dateLayout))
	return data, filename, nil
}

// loadVisible carga el informe y aplica CanViewReport.
func (uc *ReportUseCase) loadVisible(ctx context.Context, user entity.AuthUser, id int64) (*entity.Report, error) {
	report, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanViewReport(ctx, user, report.SalesPersonID) {
		return nil, domain.ErrForbidden
	}
	return report, nil
}

// loadEditable carga el informe y aplica CanEditReport.
func (uc *ReportUseCase) loadEditable(ctx context.Context, user entity.AuthUser, id int64) (*entity.Report, error) {
	report, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.CanEditReport(user, report.SalesPersonID) {
		return nil, domain.ErrForbidden
	}
	return report, nil
}

// buildVisits valida que los clientes existan y arma las visitas.
func (uc *ReportUseCase) buildVisits(ctx context.Context, in []dto.VisitRecordInput) ([]entity.VisitRecord, error) {
	visits := make([]entity.VisitRecord, 0, len(in))
	seen := make(map[int64]bool, len(in))
	for i, v := range in {
		if !seen[v.CustomerID] {
			c, err := uc.customers.GetByID(ctx, v.CustomerID)
			if err != nil {
				return nil, err
			}
			if c == nil {
				return nil, domain.NewValidationError(fmt.Sprintf("visit_records[%d].customer_id", i), "el cliente no existe")
			}
			seen[v.CustomerID] = true
		}
		visits = append(visits, entity.VisitRecord{
			CustomerID: v.CustomerID,
			VisitTime:  v.VisitTime,
			Content:    v.Content,
		})
	}
	return visits, nil
}

// parseWritableStatus solo draft y submitted se fijan desde la API; reviewed llega vía Review.
func parseWritableStatus(s string) (entity.ReportStatus, error) {
	status, ok := entity.ParseReportStatus(s)
	if !ok || status == entity.ReportStatusReviewed {
		return "", domain.NewValidationError("status", "debe ser draft o submitted")
	}
	return status, nil
}

func toReportResponse(r *entity.Report, comments []*entity.Comment) *dto.ReportResponse {
	visits := make([]dto.VisitRecordResponse, 0, len(r.VisitRecords))
	for _, v := range r.VisitRecords {
		visits = append(visits, dto.VisitRecordResponse{
			ID:           v.ID,
			CustomerID:   v.CustomerID,
			CustomerName: v.CustomerName,
			VisitTime:    v.VisitTime,
			Content:      v.Content,
		})
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, *toCommentResponse(c))
	}
	return &dto.ReportResponse{
		ID:              r.ID,
		SalesPersonID:   r.SalesPersonID,
		SalesPersonName: r.SalesPersonName,
		ReportDate:      r.ReportDate.Format(dateLayout),
		Problem:         r.Problem,
		Plan:            r.Plan,
		Status:          string(r.Status),
		VisitRecords:    visits,
		Comments:        out,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
