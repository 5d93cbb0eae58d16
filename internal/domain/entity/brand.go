package entity

import "time"

// Brand marca propietaria de productos.
type Brand struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
