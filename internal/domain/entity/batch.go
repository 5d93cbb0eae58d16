package entity

import "time"

// Batch representa un lote de fabricación de un producto.
// Quantity es el total restante del lote a través de todo el almacenamiento físico;
// el motor de asignación mantiene en cada descuento el invariante
// Quantity == suma de QuantityLeft de sus StockLines.
type Batch struct {
	ID              string
	BatchNo         string // único
	ProductID       string
	SKU             string
	ManufactureDate time.Time
	ExpiryDate      time.Time
	Quantity        int64
	Status          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
