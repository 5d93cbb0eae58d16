package staging

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que el putaway necesita atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stagingRepo repository.StagingRepository,
		batchRepo repository.BatchRepository,
		stockRepo repository.StockLineRepository,
	) error) error
}
