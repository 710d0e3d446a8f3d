package entity

import "time"

// Comment comentario de un jefe o administrador sobre un informe.
type Comment struct {
	ID            int64
	ReportID      int64
	SalesPersonID int64 // autor
	Content       string
	CreatedAt     time.Time

	AuthorName string // JOIN
}
