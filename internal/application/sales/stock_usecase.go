package sales

import (
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el stock disponible.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	stockRepo   repository.StockLineRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	stockRepo repository.StockLineRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		stockRepo:   stockRepo,
	}
}

// TotalStock devuelve el total disponible de un producto (suma de todas sus líneas).
func (uc *StockQueryUseCase) TotalStock(productID string) (*dto.StockTotalResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	total, err := uc.stockRepo.SumByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockTotalResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		TotalStock:  total,
	}, nil
}

// StockDetails devuelve el desglose de stock de un producto por lote y pallet.
func (uc *StockQueryUseCase) StockDetails(productID string) (*dto.StockDetailsResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	batches, err := uc.batchRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}

	batchIDs := make([]string, 0, len(batches))
	for _, b := range batches {
		batchIDs = append(batchIDs, b.ID)
	}
	lines, err := uc.stockRepo.ListByBatchIDs(batchIDs)
	if err != nil {
		return nil, err
	}

	linesByBatch := make(map[string][]dto.StockLineDetail, len(batches))
	for _, line := range lines {
		linesByBatch[line.BatchID] = append(linesByBatch[line.BatchID], dto.StockLineDetail{
			PalletID:     line.PalletID,
			QuantityLeft: line.QuantityLeft,
			StoredOn:     line.StoredOn,
		})
	}

	resp := &dto.StockDetailsResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
	}
	for _, b := range batches {
		details := linesByBatch[b.ID]
		if len(details) == 0 {
			continue
		}
		var batchTotal int64
		for _, d := range details {
			batchTotal += d.QuantityLeft
		}
		resp.TotalStock += batchTotal
		resp.Batches = append(resp.Batches, dto.BatchStockDetail{
			BatchID:    b.ID,
			BatchNo:    b.BatchNo,
			ExpiryDate: b.ExpiryDate.Format("2006-01-02"),
			BatchTotal: batchTotal,
			Pallets:    details,
		})
	}
	return resp, nil
}
