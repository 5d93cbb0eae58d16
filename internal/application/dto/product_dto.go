package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// ProdID, SKU y UPC deben ser únicos globalmente; SKU solo alfanumérico.
type CreateProductRequest struct {
	ProdID         string          `json:"prod_id" validate:"required,min=1,max=100"`
	SKU            string          `json:"sku" validate:"required,alphanum,min=1,max=50"`
	UPC            string          `json:"upc" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=255"`
	Description    string          `json:"description" validate:"max=500"`
	BrandID        string          `json:"brand_id" validate:"required,uuid"`
	CategoryID     string          `json:"category_id" validate:"omitempty,uuid"`
	SubcategoryID  string          `json:"subcategory_id" validate:"omitempty,uuid"`
	CompanyID      string          `json:"company_id" validate:"omitempty,uuid"`
	UnitOfMeasure  string          `json:"unit_of_measure" validate:"max=50"`
	Weight         decimal.Decimal `json:"weight"`
	ExpiryInMonths int             `json:"expiry_in_months" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Merge explícito campo por campo: solo cambian los campos presentes.
// Las claves únicas (prod_id, sku, upc) son inmutables tras la creación.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string          `json:"description" validate:"omitempty,max=500"`
	BrandID        *string          `json:"brand_id" validate:"omitempty,uuid"`
	CategoryID     *string          `json:"category_id" validate:"omitempty,uuid"`
	SubcategoryID  *string          `json:"subcategory_id" validate:"omitempty,uuid"`
	UnitOfMeasure  *string          `json:"unit_of_measure" validate:"omitempty,max=50"`
	Weight         *decimal.Decimal `json:"weight"`
	ExpiryInMonths *int             `json:"expiry_in_months" validate:"omitempty,min=0"`
	Status         *bool            `json:"status"`
}

// ProductFilterRequest filtros de búsqueda de productos (query params).
type ProductFilterRequest struct {
	ProdID        string `query:"prod_id"`
	BrandID       string `query:"brand_id" validate:"omitempty,uuid"`
	Name          string `query:"name"`
	CategoryID    string `query:"category_id" validate:"omitempty,uuid"`
	SubcategoryID string `query:"subcategory_id" validate:"omitempty,uuid"`
	SKU           string `query:"sku"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	ProdID         string          `json:"prod_id"`
	SKU            string          `json:"sku"`
	UPC            string          `json:"upc"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	BrandID        string          `json:"brand_id"`
	CategoryID     string          `json:"category_id,omitempty"`
	SubcategoryID  string          `json:"subcategory_id,omitempty"`
	CompanyID      string          `json:"company_id,omitempty"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	Weight         decimal.Decimal `json:"weight"`
	ExpiryInMonths int             `json:"expiry_in_months"`
	Status         bool            `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
