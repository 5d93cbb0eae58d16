package dto

import "time"

// CreateBatchRequest entrada para crear un lote. Las fechas llegan como
// "YYYY-MM-DD"; expiry_date debe ser >= manufacture_date (validado en el use case).
type CreateBatchRequest struct {
	BatchNo         string `json:"batch_no" validate:"required,min=1,max=50"`
	ProductID       string `json:"product_id" validate:"required,uuid"`
	SKU             string `json:"sku" validate:"required,alphanum,max=50"`
	ManufactureDate string `json:"manufacture_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate      string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Quantity        int64  `json:"quantity" validate:"required,gt=0"`
}

// UpdateBatchRequest merge explícito campo por campo. BatchNo y ProductID son
// inmutables; Quantity no se edita aquí (lo mantienen el motor de asignación y putaway).
type UpdateBatchRequest struct {
	ManufactureDate *string `json:"manufacture_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate      *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Status          *bool   `json:"status"`
}

type BatchResponse struct {
	ID              string    `json:"id"`
	BatchNo         string    `json:"batch_no"`
	ProductID       string    `json:"product_id"`
	SKU             string    `json:"sku"`
	ManufactureDate string    `json:"manufacture_date"`
	ExpiryDate      string    `json:"expiry_date"`
	Quantity        int64     `json:"quantity"`
	Status          bool      `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateStockLineRequest coloca parte de un lote sobre un pallet.
// El par (batch_id, pallet_id) debe ser único y la cantidad no puede exceder
// el total del lote.
type CreateStockLineRequest struct {
	BatchID      string `json:"batch_id" validate:"required,uuid"`
	PalletID     string `json:"pallet_id" validate:"required,uuid"`
	QuantityLeft int64  `json:"quantity_left" validate:"required,gt=0"`
}

// UpdateStockLineRequest ajuste manual de la cantidad de una línea.
// stored_on es inmutable (clave FIFO).
type UpdateStockLineRequest struct {
	QuantityLeft int64 `json:"quantity_left" validate:"min=0"`
}

type StockLineResponse struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batch_id"`
	PalletID     string    `json:"pallet_id"`
	QuantityLeft int64     `json:"quantity_left"`
	StoredOn     time.Time `json:"stored_on"`
}
