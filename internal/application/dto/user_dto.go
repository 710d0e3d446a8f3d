package dto

import "time"

// CreateSalesPersonRequest alta de vendedor (password en texto, se hashea en el use case).
type CreateSalesPersonRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,max=20"`
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Role         string `json:"role" validate:"required,oneof=member manager admin"`
	ManagerID    *int64 `json:"manager_id" validate:"omitempty,gt=0"`
}

// UpdateSalesPersonRequest reemplazo completo de los campos editables.
// employee_code es inmutable; password vacío conserva el actual.
type UpdateSalesPersonRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"omitempty,min=8,max=72"`
	Role      string `json:"role" validate:"required,oneof=member manager admin"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,gt=0"`
	IsActive  *bool  `json:"is_active"`
}

// SalesPersonListQuery filtros del listado de vendedores.
type SalesPersonListQuery struct {
	PageRequest
	IsActive *bool
	Role     string
}

// SalesPersonResponse salida de un vendedor (sin password).
type SalesPersonResponse struct {
	ID           int64     `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ManagerID    *int64    `json:"manager_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SalesPersonListResponse lista paginada de vendedores.
type SalesPersonListResponse struct {
	Items []SalesPersonResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y perfil del usuario.
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      SalesPersonResponse `json:"user"`
}
