package repository

import (
	"context"

	"github.com/jhoicas/daily-report-api/internal/domain/entity"
)

// CustomerFilter búsqueda de clientes por nombre o empresa.
type CustomerFilter struct {
	Query  string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
}
