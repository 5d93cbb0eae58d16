package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// BatchRepository define el puerto de persistencia para Batch (DIP).
// AddQuantity se usa dentro de transacciones del motor de asignación
// (delta negativo en ventas, positivo en putaway de staging).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	GetByBatchNo(batchNo string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	List(limit, offset int) ([]*entity.Batch, error)
	ListByProduct(productID string) ([]*entity.Batch, error)
	AddQuantity(batchID string, delta int64) error
	ExistsForProduct(productID string) (bool, error)
	Delete(id string) error
}
