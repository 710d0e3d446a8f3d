package entity

import "time"

// Customer representa un cliente visitado por los vendedores (dato maestro).
type Customer struct {
	ID           int64
	CustomerCode string
	Name         string
	CompanyName  string
	Phone        string
	Email        string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
