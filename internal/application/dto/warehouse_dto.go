package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Location string `json:"location" validate:"max=255"`
	Address  string `json:"address" validate:"max=500"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
}

type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePalletRequest entrada para crear un pallet dentro de un almacén.
type CreatePalletRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=100"`
	Dimensions  string          `json:"dimensions" validate:"max=100"`
	Capacity    decimal.Decimal `json:"capacity"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
}

type UpdatePalletRequest struct {
	Dimensions  *string          `json:"dimensions" validate:"omitempty,max=100"`
	Capacity    *decimal.Decimal `json:"capacity"`
	WarehouseID *string          `json:"warehouse_id" validate:"omitempty,uuid"`
}

type PalletResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Dimensions  string          `json:"dimensions"`
	Capacity    decimal.Decimal `json:"capacity"`
	WarehouseID string          `json:"warehouse_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
