package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceRequest nuevo registro de precio para un producto.
type CreatePriceRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	MRP           decimal.Decimal `json:"mrp"`
	MWP           decimal.Decimal `json:"mwp"`
	EffectiveFrom string          `json:"effective_from" validate:"omitempty,datetime=2006-01-02"`
}

// UpdatePriceRequest merge parcial: solo cambian los campos presentes.
type UpdatePriceRequest struct {
	MRP           *decimal.Decimal `json:"mrp"`
	MWP           *decimal.Decimal `json:"mwp"`
	EffectiveFrom *string          `json:"effective_from" validate:"omitempty,datetime=2006-01-02"`
}

type PriceResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	MRP           decimal.Decimal `json:"mrp"`
	MWP           decimal.Decimal `json:"mwp"`
	EffectiveFrom time.Time       `json:"effective_from"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
