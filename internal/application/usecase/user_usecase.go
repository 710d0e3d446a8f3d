package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/daily-report-api/internal/application/auth"
	"github.com/jhoicas/daily-report-api/internal/application/dto"
	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/policy"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

// SalesPersonUseCase CRUD del maestro de vendedores (solo admin).
type SalesPersonUseCase struct {
	repo   repository.SalesPersonRepository
	policy *policy.AccessPolicy
	now    func() time.Time
}

// NewSalesPersonUseCase construye el caso de uso con el puerto de persistencia.
func NewSalesPersonUseCase(repo repository.SalesPersonRepository, p *policy.AccessPolicy) *SalesPersonUseCase {
	return &SalesPersonUseCase{repo: repo, policy: p, now: time.Now}
}

// List lista vendedores con filtros.
func (uc *SalesPersonUseCase) List(ctx context.Context, user entity.AuthUser, q dto.SalesPersonListQuery) (*dto.SalesPersonListResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	q.DefaultPage()
	filter := repository.SalesPersonFilter{IsActive: q.IsActive, Limit: q.Limit, Offset: q.Offset}
	if q.Role != "" {
		role, ok := entity.ParseRole(q.Role)
		if !ok {
			return nil, domain.NewValidationError("role", "rol desconocido")
		}
		filter.Role = &role
	}
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesPersonResponse, 0, len(list))
	for _, sp := range list {
		items = append(items, *toSalesPersonResponse(sp))
	}
	return &dto.SalesPersonListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// GetByID obtiene un vendedor por ID.
func (uc *SalesPersonUseCase) GetByID(ctx context.Context, user entity.AuthUser, id int64) (*dto.SalesPersonResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	sp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	return toSalesPersonResponse(sp), nil
}

// Create da de alta un vendedor. El jefe, si se indica, debe existir.
func (uc *SalesPersonUseCase) Create(ctx context.Context, user entity.AuthUser, in dto.CreateSalesPersonRequest) (*dto.SalesPersonResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "rol desconocido")
	}
	if err := uc.checkManager(ctx, 0, in.ManagerID); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	sp := &entity.SalesPerson{
		EmployeeCode: in.EmployeeCode,
		Name:         in.Name,
		Email:        auth.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         role,
		ManagerID:    in.ManagerID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return toSalesPersonResponse(sp), nil
}

// Update reemplaza los campos editables. employee_code no cambia nunca.
func (uc *SalesPersonUseCase) Update(ctx context.Context, user entity.AuthUser, id int64, in dto.UpdateSalesPersonRequest) (*dto.SalesPersonResponse, error) {
	if !uc.policy.CanManageMaster(user) {
		return nil, domain.ErrForbidden
	}
	sp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "rol desconocido")
	}
	if err := uc.checkManager(ctx, id, in.ManagerID); err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		sp.PasswordHash = hash
	}
	if in.IsActive != nil {
		if !*in.IsActive && id == user.ID {
			return nil, fmt.Errorf("%w: un administrador no puede desactivarse a sí mismo", domain.ErrConflict)
		}
		sp.IsActive = *in.IsActive
	}
	sp.Name = in.Name
	sp.Email = auth.NormalizeEmail(in.Email)
	sp.Role = role
	sp.ManagerID = in.ManagerID
	sp.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return toSalesPersonResponse(sp), nil
}

// Deactivate desactiva un vendedor (no se borra). Sus tokens emitidos siguen siendo
// criptográficamente válidos; el rechazo ocurre al consultar el registro.
func (uc *SalesPersonUseCase) Deactivate(ctx context.Context, user entity.AuthUser, id int64) error {
	if !uc.policy.CanManageMaster(user) {
		return domain.ErrForbidden
	}
	if id == user.ID {
		return fmt.Errorf("%w: un administrador no puede desactivarse a sí mismo", domain.ErrConflict)
	}
	sp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sp == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(ctx, id, uc.now())
}

// checkManager valida manager_id: distinto del propio vendedor y existente.
func (uc *SalesPersonUseCase) checkManager(ctx context.Context, selfID int64, managerID *int64) error {
	if managerID == nil {
		return nil
	}
	if selfID != 0 && *managerID == selfID {
		return domain.NewValidationError("manager_id", "un vendedor no puede ser su propio jefe")
	}
	manager, err := uc.repo.GetByID(ctx, *managerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return domain.NewValidationError("manager_id", "el jefe indicado no existe")
	}
	return nil
}

func toSalesPersonResponse(u *entity.SalesPerson) *dto.SalesPersonResponse {
	if u == nil {
		return nil
	}
	return &dto.SalesPersonResponse{
		ID:           u.ID,
		EmployeeCode: u.EmployeeCode,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		ManagerID:    u.ManagerID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
