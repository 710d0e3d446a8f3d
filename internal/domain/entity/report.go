package entity

import "time"

// ReportStatus estado de un informe diario.
type ReportStatus string

// Estados válidos del informe diario.
const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusSubmitted ReportStatus = "submitted"
	ReportStatusReviewed  ReportStatus = "reviewed"
)

// ParseReportStatus convierte un string en ReportStatus.
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch ReportStatus(s) {
	case ReportStatusDraft, ReportStatusSubmitted, ReportStatusReviewed:
		return ReportStatus(s), true
	default:
		return "", false
	}
}

// Report informe diario de un vendedor. Hay como máximo uno por vendedor y fecha.
type Report struct {
	ID            int64
	SalesPersonID int64
	ReportDate    time.Time // solo fecha (UTC)
	Problem       string
	Plan          string
	Status        ReportStatus
	VisitRecords  []VisitRecord
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Campos de lectura (JOIN), no se persisten.
	SalesPersonName string
	VisitCount      int
	CommentCount    int
}

// Editable un informe revisado ya no se modifica.
func (r *Report) Editable() bool {
	return r.Status != ReportStatusReviewed
}

// Deletable solo se borran borradores.
func (r *Report) Deletable() bool {
	return r.Status == ReportStatusDraft
}

// VisitRecord registro de una visita a un cliente dentro de un informe.
type VisitRecord struct {
	ID         int64
	ReportID   int64
	CustomerID int64
	VisitTime  string // "HH:MM", opcional
	Content    string

	CustomerName string // JOIN
}
