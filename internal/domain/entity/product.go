package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo maestro.
// ProdID, SKU y UPC son únicos globalmente. Status=false lo deshabilita
// (soft-disable): un producto referenciado por lotes o ventas nunca se borra físicamente.
type Product struct {
	ID             string
	ProdID         string // código de producto único
	SKU            string
	UPC            string
	Name           string
	Description    string
	BrandID        string
	CategoryID     string
	SubcategoryID  string
	CompanyID      string
	UnitOfMeasure  string
	Weight         decimal.Decimal
	ExpiryInMonths int
	Status         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
