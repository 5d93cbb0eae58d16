package repository

import (
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// StockLineRepository define el puerto para el libro de stock físico (batch+pallet).
// Usado dentro de transacciones para garantizar consistencia.
type StockLineRepository interface {
	Create(line *entity.StockLine) error
	GetByID(id string) (*entity.StockLine, error)
	// GetByIDForUpdate lee bloqueando la fila (SELECT ... FOR UPDATE); usar
	// solo dentro de una transacción para ajustes que luego reescriben la línea.
	GetByIDForUpdate(id string) (*entity.StockLine, error)
	GetByBatchAndPallet(batchID, palletID string) (*entity.StockLine, error)
	// GetByBatchAndPalletForUpdate lee el par lote+pallet bloqueando la fila;
	// evita que un descuento concurrente quede pisado por una escritura absoluta.
	GetByBatchAndPalletForUpdate(batchID, palletID string) (*entity.StockLine, error)
	Update(line *entity.StockLine) error
	List(limit, offset int) ([]*entity.StockLine, error)
	ListByBatchIDs(batchIDs []string) ([]*entity.StockLine, error)
	SumByProduct(productID string) (int64, error)
	// ListForAllocationForUpdate devuelve las líneas elegibles de un producto
	// (quantity_left > 0) junto con los datos del lote, bloqueándolas con
	// SELECT ... FOR UPDATE en orden estable por id para evitar deadlocks.
	// El ordenamiento por política lo hace el dominio (allocation.Order).
	ListForAllocationForUpdate(productID string) ([]allocation.Line, error)
	ExistsForBatch(batchID string) (bool, error)
	Delete(id string) error
}
