package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// ProductFilter filtros combinables para búsqueda de productos.
type ProductFilter struct {
	ProdID        string
	BrandID       string
	Name          string // coincidencia parcial, case-insensitive
	CategoryID    string
	SubcategoryID string
	SKU           string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByUniqueKeys busca por cualquiera de las tres claves únicas (prod_id, sku, upc).
	GetByUniqueKeys(prodID, sku, upc string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Filter(f ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
