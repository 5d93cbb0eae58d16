package entity

import "time"

// Warehouse representa un almacén físico donde se ubican pallets.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
