package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error
}

// PalletRepository define el puerto de persistencia para Pallet (DIP).
type PalletRepository interface {
	Create(pallet *entity.Pallet) error
	GetByID(id string) (*entity.Pallet, error)
	GetByCode(code string) (*entity.Pallet, error)
	Update(pallet *entity.Pallet) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Pallet, error)
	List(limit, offset int) ([]*entity.Pallet, error)
	Delete(id string) error
}
