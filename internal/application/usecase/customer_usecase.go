package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

// CustomerUseCase maestro de clientes: lectura para todos, escritura solo admin.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	policy *policy.AccessPolicy
	now    func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, p *policy.AccessPolicy) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, policy: p, now: time.Now}
}

// List lista clientes, opcionalmente filtrados por nombre o empresa.
func (uc *CustomerUseCase) List(ctx context.Context, q dto.CustomerListQuery) (*dto.CustomerListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.CustomerFilter{
		Query:  strings.TrimSpace(q.Query),
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// Create crea un nuevo cliente. customer_code duplicado → ErrConflict (repositorio).
func (uc *CustomerUseCase) Create(ctx context.Context, user entity.AuthUser, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	c := &entity.Customer{
		CustomerCode: strings.TrimSpace(in.CustomerCode),
		Name:         in.Name,
		CompanyName:  in.CompanyName,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Update actualiza un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, user entity.AuthUser, id int64, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.CompanyName = in.CompanyName
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina un cliente. Si hay visitas que lo referencian → ErrConflict.
func (uc *CustomerUseCase) Delete(ctx context.Context, user entity.AuthUser, id int64) error {
	if !uc.policy.CanManageMaster(user) {
		return domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:           c.ID,
		CustomerCode: c.CustomerCode,
		Name:         c.Name,
		CompanyName:  c.CompanyName,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
