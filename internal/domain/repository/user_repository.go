package repository

import (
	"context"
	"time"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// SalesPersonFilter filtros para el listado de vendedores.
type SalesPersonFilter struct {
	IsActive *bool
	Role     *entity.Role
	Limit    int
	Offset   int
}

// SalesPersonRepository define el puerto de persistencia para SalesPerson (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type SalesPersonRepository interface {
	Create(ctx context.Context, sp *entity.SalesPerson) error
	GetByID(ctx context.Context, id int64) (*entity.SalesPerson, error)
	GetByEmail(ctx context.Context, email string) (*entity.SalesPerson, error)
	List(ctx context.Context, filter SalesPersonFilter) ([]*entity.SalesPerson, int, error)
	Update(ctx context.Context, sp *entity.SalesPerson) error
	Deactivate(ctx context.Context, id int64, at time.Time) error
}
