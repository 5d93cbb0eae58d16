package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// AllocateUseCase motor de asignación de stock: convierte peticiones de venta
// en mutaciones consistentes del libro (StockLine + Batch) más filas Sale de
// auditoría, de forma atómica. El bloqueo de fila (SELECT FOR UPDATE) dentro
// de la transacción serializa asignaciones concurrentes sobre el mismo producto.
type AllocateUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	consumerRepo repository.ConsumerRepository
}

// NewAllocateUseCase construye el caso de uso.
func NewAllocateUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	consumerRepo repository.ConsumerRepository,
) *AllocateUseCase {
	return &AllocateUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		consumerRepo: consumerRepo,
	}
}

// AllocateBulk aplica una lista de peticiones de venta independientes dentro
// de UNA transacción. Por cada petición:
//  1. las líneas elegibles se leen y bloquean (FOR UPDATE),
//  2. allocation.Plan valida disponibilidad total ANTES de escribir
//     (ErrNoStock / ErrInsufficientStock) y ordena según la política,
//  3. cada paso descuenta de la línea, descuenta del lote dueño y crea la
//     fila Sale; las líneas que llegan a 0 se eliminan del libro.
//
// Si cualquier petición falla, se aborta el lote completo (fail-fast): cero
// efectos secundarios.
func (uc *AllocateUseCase) AllocateBulk(ctx context.Context, in dto.BulkSaleRequest) ([]dto.SaleResponse, error) {
	if len(in.Sales) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validar referencias fuera de la transacción (solo lectura).
	for _, item := range in.Sales {
		if item.QuantitySold <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if !product.Status {
			return nil, fmt.Errorf("producto %s deshabilitado: %w", item.ProductID, domain.ErrConflict)
		}
		consumer, err := uc.consumerRepo.GetByID(item.ConsumerID)
		if err != nil {
			return nil, err
		}
		if consumer == nil {
			return nil, fmt.Errorf("consumidor %s: %w", item.ConsumerID, domain.ErrNotFound)
		}
	}

	now := time.Now()
	var results []dto.SaleResponse

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		batchRepo repository.BatchRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, item := range in.Sales {
			created, err := uc.allocateOne(stockRepo, batchRepo, saleRepo, item, now)
			if err != nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, err)
			}
			results = append(results, created...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Allocate aplica una única petición de venta (misma semántica que el bulk de un elemento).
func (uc *AllocateUseCase) Allocate(ctx context.Context, item dto.SaleItemRequest) ([]dto.SaleResponse, error) {
	return uc.AllocateBulk(ctx, dto.BulkSaleRequest{Sales: []dto.SaleItemRequest{item}})
}

// allocateOne ejecuta el plan de descuento de una petición dentro de la tx del caller.
func (uc *AllocateUseCase) allocateOne(
	stockRepo repository.StockLineRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
	item dto.SaleItemRequest,
	now time.Time,
) ([]dto.SaleResponse, error) {
	lines, err := stockRepo.ListForAllocationForUpdate(item.ProductID)
	if err != nil {
		return nil, err
	}

	steps, err := allocation.Plan(lines, item.QuantitySold, allocation.FromFIFOFlag(item.FIFO))
	if err != nil {
		return nil, err
	}

	created := make([]dto.SaleResponse, 0, len(steps))
	for _, step := range steps {
		if step.Exhausted {
			// Las líneas en 0 se eliminan: su existencia misma señala "hay stock".
			if err := stockRepo.Delete(step.Line.LineID); err != nil {
				return nil, err
			}
		} else {
			line := &entity.StockLine{
				ID:           step.Line.LineID,
				BatchID:      step.Line.BatchID,
				PalletID:     step.Line.PalletID,
				QuantityLeft: step.Line.QuantityLeft - step.Deduct,
				StoredOn:     time.Unix(0, step.Line.StoredOn),
			}
			if err := stockRepo.Update(line); err != nil {
				return nil, err
			}
		}

		// Mantiene el invariante Batch.Quantity == suma de sus líneas.
		if err := batchRepo.AddQuantity(step.Line.BatchID, -step.Deduct); err != nil {
			return nil, err
		}

		palletID := step.Line.PalletID
		sale := &entity.Sale{
			ID:            uuid.New().String(),
			BatchID:       step.Line.BatchID,
			PalletID:      &palletID,
			ProductID:     item.ProductID,
			ConsumerID:    item.ConsumerID,
			QuantitySold:  step.Deduct,
			SalePrice:     item.SalePrice,
			SaleTimestamp: now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return nil, err
		}
		created = append(created, toSaleResponse(sale))
	}
	return created, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		BatchID:       s.BatchID,
		PalletID:      s.PalletID,
		ProductID:     s.ProductID,
		ConsumerID:    s.ConsumerID,
		QuantitySold:  s.QuantitySold,
		SalePrice:     s.SalePrice,
		SaleTimestamp: s.SaleTimestamp,
	}
}
