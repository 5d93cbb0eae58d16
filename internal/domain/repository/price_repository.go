package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// PriceRepository define el puerto de persistencia para Price (DIP).
// No expone Delete: el histórico de precios se preserva por política.
type PriceRepository interface {
	Create(price *entity.Price) error
	GetByID(id string) (*entity.Price, error)
	List(limit, offset int) ([]*entity.Price, error)
	ListByProduct(productID string) ([]*entity.Price, error)
	Update(price *entity.Price) error
}
