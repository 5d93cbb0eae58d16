package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registro de auditoría inmutable de un evento de descuento de stock.
// Solo lo crea el motor de asignación y nunca se elimina (el endpoint de
// borrado está bloqueado para preservar la integridad de auditoría).
// PalletID es puntero: la línea puede haberse consumido y eliminado.
type Sale struct {
	ID            string
	BatchID       string
	PalletID      *string
	ProductID     string
	ConsumerID    string
	QuantitySold  int64
	SalePrice     decimal.Decimal
	SaleTimestamp time.Time
}
