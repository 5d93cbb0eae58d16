package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale (DIP).
// No expone Delete: las ventas son auditoría inmutable.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	Update(sale *entity.Sale) error
	ExistsForProduct(productID string) (bool, error)
}
