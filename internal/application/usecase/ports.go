package usecase

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del libro de stock atados a esa tx. Los ajustes manuales de
// líneas tocan dos tablas (lote y línea) y deben confirmar o revertir juntos.
type StockTxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		stockRepo repository.StockLineRepository,
	) error) error
}
