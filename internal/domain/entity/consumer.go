package entity

import "time"

// Consumer cliente final que compra stock (destino de las ventas).
type Consumer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
