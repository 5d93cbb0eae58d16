package entity

import "time"

// Company empresa fabricante/proveedora dentro del catálogo maestro.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
