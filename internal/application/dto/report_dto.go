package dto

import "time"

// VisitRecordInput visita dentro de la petición de alta/edición de informe.
type VisitRecordInput struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	VisitTime  string `json:"visit_time" validate:"omitempty,datetime=15:04"`
	Content    string `json:"content" validate:"required,max=2000"`
}

// CreateReportRequest alta de informe diario. El dueño es siempre el usuario autenticado.
type CreateReportRequest struct {
	ReportDate   string             `json:"report_date" validate:"required,datetime=2006-01-02"`
	Problem      string             `json:"problem" validate:"max=2000"`
	Plan         string             `json:"plan" validate:"max=2000"`
	Status       string             `json:"status" validate:"required,oneof=draft submitted"`
	VisitRecords []VisitRecordInput `json:"visit_records" validate:"max=50,dive"`
}

// UpdateReportRequest edición del informe; la fecha no cambia.
type UpdateReportRequest struct {
	Problem      string             `json:"problem" validate:"max=2000"`
	Plan         string             `json:"plan" validate:"max=2000"`
	Status       string             `json:"status" validate:"required,oneof=draft submitted"`
	VisitRecords []VisitRecordInput `json:"visit_records" validate:"max=50,dive"`
}

// ReportListQuery filtros del listado (ya parseados desde la query string).
type ReportListQuery struct {
	PageRequest
	SalesPersonID *int64
	Status        string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// VisitRecordResponse salida de una visita.
type VisitRecordResponse struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	VisitTime    string `json:"visit_time,omitempty"`
	Content      string `json:"content"`
}

// ReportSummaryResponse fila del listado de informes.
type ReportSummaryResponse struct {
	ID              int64     `json:"id"`
	SalesPersonID   int64     `json:"sales_person_id"`
	SalesPersonName string    `json:"sales_person_name"`
	ReportDate      string    `json:"report_date"`
	Status          string    `json:"status"`
	VisitCount      int       `json:"visit_count"`
	CommentCount    int       `json:"comment_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReportListResponse lista paginada de informes.
type ReportListResponse struct {
	Items []ReportSummaryResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReportResponse detalle de un informe con visitas y comentarios.
type ReportResponse struct {
	ID              int64                 `json:"id"`
	SalesPersonID   int64                 `json:"sales_person_id"`
	SalesPersonName string                `json:"sales_person_name"`
	ReportDate      string                `json:"report_date"`
	Problem         string                `json:"problem"`
	Plan            string                `json:"plan"`
	Status          string                `json:"status"`
	VisitRecords    []VisitRecordResponse `json:"visit_records"`
	Comments        []CommentResponse     `json:"comments"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// CreateCommentRequest alta de comentario.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CommentResponse salida de un comentario.
type CommentResponse struct {
	ID              int64     `json:"id"`
	ReportID        int64     `json:"report_id"`
	SalesPersonID   int64     `json:"sales_person_id"`
	SalesPersonName string    `json:"sales_person_name"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}
