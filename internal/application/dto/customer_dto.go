package dto

import "time"

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	CustomerCode string `json:"customer_code" validate:"required,max=20"`
	Name         string `json:"name" validate:"required,max=100"`
	CompanyName  string `json:"company_name" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=20"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
	Address      string `json:"address" validate:"max=500"`
}

// UpdateCustomerRequest reemplazo de los campos editables (customer_code no cambia).
type UpdateCustomerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	CompanyName string `json:"company_name" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Address     string `json:"address" validate:"max=500"`
}

// CustomerListQuery búsqueda de clientes.
type CustomerListQuery struct {
	PageRequest
	Query string
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	CustomerCode string    `json:"customer_code"`
	Name         string    `json:"name"`
	CompanyName  string    `json:"company_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
