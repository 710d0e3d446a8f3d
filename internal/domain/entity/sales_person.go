package entity

import "time"

// SalesPerson representa un vendedor (usuario del sistema). Nunca se borra: se desactiva.
type SalesPerson struct {
	ID           int64
	EmployeeCode string // inmutable
	Name         string
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	ManagerID    *int64 // nil si no tiene jefe
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthUser devuelve la identidad que viaja en el token.
func (s *SalesPerson) AuthUser() AuthUser {
	return AuthUser{ID: s.ID, Email: s.Email, Role: s.Role}
}

// ReportsTo indica si managerID es el jefe directo del vendedor.
func (s *SalesPerson) ReportsTo(managerID int64) bool {
	return s.ManagerID != nil && *s.ManagerID == managerID && s.ID != managerID
}
