package repository

import (
	"context"
	"time"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// ReportFilter filtros del listado. Scope y ViewerID restringen la visibilidad;
// el resto son filtros opcionales elegidos por el usuario.
type ReportFilter struct {
	Scope         entity.VisibilityScope
	ViewerID      int64
	SalesPersonID *int64
	Status        *entity.ReportStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Offset        int
}

// ReportRepository puerto de persistencia de informes diarios y sus visitas.
type ReportRepository interface {
	// Create persiste el informe y sus visitas; asigna los IDs generados.
	Create(ctx context.Context, report *entity.Report) error
	// GetByID devuelve el informe con sus visitas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Report, error)
	// List devuelve la página pedida (sin visitas) y el total.
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, int, error)
	// Update actualiza campos editables y reemplaza las visitas.
	// ErrConflict si el informe ya está revisado en el momento de escribir.
	Update(ctx context.Context, report *entity.Report) error
	// UpdateStatus pasa de from a to; ErrConflict si el estado actual ya no es from.
	UpdateStatus(ctx context.Context, id int64, from, to entity.ReportStatus, at time.Time) error
	// Delete borra un borrador; ErrConflict si ya no lo es.
	Delete(ctx context.Context, id int64) error
}

// TxRunner ejecuta fn dentro de una transacción con un ReportRepository atado a ella.
type TxRunner interface {
	RunReports(ctx context.Context, fn func(reports ReportRepository) error) error
}
