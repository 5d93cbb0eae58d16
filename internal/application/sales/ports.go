package sales

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// asignación: o se persisten todas las mutaciones del lote de ventas, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLineRepository,
		batchRepo repository.BatchRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptData datos resueltos para renderizar el comprobante de una venta.
type ReceiptData struct {
	Sale     *entity.Sale
	Product  *entity.Product
	Consumer *entity.Consumer
	Batch    *entity.Batch
}

// ReceiptPDFGenerator puerto de generación del comprobante PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
