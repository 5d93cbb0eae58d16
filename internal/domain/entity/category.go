package entity

import "time"

// Category categoría de productos.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subcategory subcategoría; siempre pertenece a una Category.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
