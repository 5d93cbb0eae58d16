package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price registro de precio por producto, solo-añadir (append-only).
// El borrado está bloqueado por política para preservar el histórico.
type Price struct {
	ID            string
	ProductID     string
	MRP           decimal.Decimal // Maximum Retail Price
	MWP           decimal.Decimal // Minimum Wholesale Price
	EffectiveFrom time.Time
	UpdatedAt     time.Time
}
