package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una petición de venta independiente dentro del bulk.
// fifo=true descuenta lo más antiguo primero; fifo=false lo que vence antes.
type SaleItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	ConsumerID   string          `json:"consumer_id" validate:"required,uuid"`
	QuantitySold int64           `json:"quantity_sold" validate:"required,gt=0"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	FIFO         bool            `json:"fifo"`
}

// BulkSaleRequest lote de ventas que se aplica en UNA transacción:
// si cualquiera falla, ninguna se persiste.
type BulkSaleRequest struct {
	Sales []SaleItemRequest `json:"sales" validate:"required,min=1,dive"`
}

// UpdateSaleRequest solo consumer_id y sale_price son editables;
// el resto del registro es auditoría inmutable.
type UpdateSaleRequest struct {
	ConsumerID *string          `json:"consumer_id" validate:"omitempty,uuid"`
	SalePrice  *decimal.Decimal `json:"sale_price"`
}

type SaleResponse struct {
	ID            string          `json:"id"`
	BatchID       string          `json:"batch_id"`
	PalletID      *string         `json:"pallet_id"`
	ProductID     string          `json:"product_id"`
	ConsumerID    string          `json:"consumer_id"`
	QuantitySold  int64           `json:"quantity_sold"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	SaleTimestamp time.Time       `json:"sale_timestamp"`
}

type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// StockTotalResponse total de stock disponible de un producto.
type StockTotalResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalStock  int64  `json:"total_stock"`
}

// StockLineDetail línea física dentro del detalle por lote.
type StockLineDetail struct {
	PalletID     string    `json:"pallet_id"`
	QuantityLeft int64     `json:"quantity_left"`
	StoredOn     time.Time `json:"stored_on"`
}

// BatchStockDetail desglose de stock de un lote con sus líneas.
type BatchStockDetail struct {
	BatchID    string            `json:"batch_id"`
	BatchNo    string            `json:"batch_no"`
	ExpiryDate string            `json:"expiry_date"`
	BatchTotal int64             `json:"batch_total"`
	Pallets    []StockLineDetail `json:"pallets"`
}

// StockDetailsResponse desglose completo de stock de un producto.
type StockDetailsResponse struct {
	ProductID   string             `json:"product_id"`
	ProductName string             `json:"product_name"`
	TotalStock  int64              `json:"total_stock"`
	Batches     []BatchStockDetail `json:"batches"`
}
