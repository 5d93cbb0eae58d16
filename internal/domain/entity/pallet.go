package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pallet contenedor físico dentro de un almacén. La capacidad es declarativa:
// no se valida contra la cantidad realmente almacenada.
type Pallet struct {
	ID          string
	Code        string // identificador físico único del pallet
	Dimensions  string
	Capacity    decimal.Decimal
	WarehouseID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
