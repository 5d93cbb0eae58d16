package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// BatchUseCase casos de uso para lotes y su colocación física (líneas de stock).
type BatchUseCase struct {
	repo        repository.BatchRepository
	productRepo repository.ProductRepository
	palletRepo  repository.PalletRepository
	stockRepo   repository.StockLineRepository
	txRunner    StockTxRunner
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	repo repository.BatchRepository,
	productRepo repository.ProductRepository,
	palletRepo repository.PalletRepository,
	stockRepo repository.StockLineRepository,
	txRunner StockTxRunner,
) *BatchUseCase {
	return &BatchUseCase{repo: repo, productRepo: productRepo, palletRepo: palletRepo, stockRepo: stockRepo, txRunner: txRunner}
}

// Create crea un lote. batch_no debe ser único, el producto debe existir y
// expiry_date no puede ser anterior a manufacture_date.
func (uc *BatchUseCase) Create(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByBatchNo(in.BatchNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	manufactureDate, err := time.Parse("2006-01-02", in.ManufactureDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	expiryDate, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if expiryDate.Before(manufactureDate) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:              uuid.New().String(),
		BatchNo:         in.BatchNo,
		ProductID:       in.ProductID,
		SKU:             in.SKU,
		ManufactureDate: manufactureDate,
		ExpiryDate:      expiryDate,
		Quantity:        in.Quantity,
		Status:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// CreateBulk crea varios lotes validando cada uno. Devuelve los creados y el
// primer error encontrado.
func (uc *BatchUseCase) CreateBulk(in []dto.CreateBatchRequest) ([]dto.BatchResponse, error) {
	results := make([]dto.BatchResponse, 0, len(in))
	for _, req := range in {
		created, err := uc.Create(req)
		if err != nil {
			return results, err
		}
		results = append(results, *created)
	}
	return results, nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch), nil
}

// Update actualiza fechas o estado de un lote. batch_no y product_id son
// inmutables; la cantidad la mantienen el motor de asignación y el putaway.
func (uc *BatchUseCase) Update(id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if in.ManufactureDate != nil {
		d, err := time.Parse("2006-01-02", *in.ManufactureDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		batch.ManufactureDate = d
	}
	if in.ExpiryDate != nil {
		d, err := time.Parse("2006-01-02", *in.ExpiryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		batch.ExpiryDate = d
	}
	if batch.ExpiryDate.Before(batch.ManufactureDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != nil {
		batch.Status = *in.Status
	}
	batch.UpdatedAt = time.Now()
	if err := uc.repo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// List lista lotes con paginación.
func (uc *BatchUseCase) List(page dto.PageRequest) ([]dto.BatchResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, nil
}

// ListByProduct lista los lotes de un producto.
func (uc *BatchUseCase) ListByProduct(productID string) ([]dto.BatchResponse, error) {
	list, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, nil
}

// Delete elimina un lote solo si no tiene líneas de stock vivas.
func (uc *BatchUseCase) Delete(id string) error {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	hasLines, err := uc.stockRepo.ExistsForBatch(id)
	if err != nil {
		return err
	}
	if hasLines {
		return domain.ErrDeletionBlocked
	}
	return uc.repo.Delete(id)
}

// CreateStockLine coloca parte de un lote sobre un pallet. El par
// (batch, pallet) debe ser único y la suma de líneas no puede exceder el
// total del lote.
func (uc *BatchUseCase) CreateStockLine(in dto.CreateStockLineRequest) (*dto.StockLineResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	batch, err := uc.repo.GetByID(in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	pallet, err := uc.palletRepo.GetByID(in.PalletID)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.stockRepo.GetByBatchAndPallet(in.BatchID, in.PalletID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	// La colocación reparte el total del lote: la suma de líneas no lo excede.
	lines, err := uc.stockRepo.ListByBatchIDs([]string{in.BatchID})
	if err != nil {
		return nil, err
	}
	var placed int64
	for _, l := range lines {
		placed += l.QuantityLeft
	}
	if placed+in.QuantityLeft > batch.Quantity {
		return nil, domain.ErrInvalidInput
	}

	line := &entity.StockLine{
		ID:           uuid.New().String(),
		BatchID:      in.BatchID,
		PalletID:     in.PalletID,
		QuantityLeft: in.QuantityLeft,
		StoredOn:     time.Now(),
	}
	if err := uc.stockRepo.Create(line); err != nil {
		return nil, err
	}
	return toStockLineResponse(line), nil
}

// GetStockLineByID obtiene una línea de stock por ID.
func (uc *BatchUseCase) GetStockLineByID(id string) (*dto.StockLineResponse, error) {
	line, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, nil
	}
	return toStockLineResponse(line), nil
}

// UpdateStockLine ajusta manualmente la cantidad de una línea (conteo físico).
// Si queda en cero, la línea se elimina del libro. Línea y lote se tocan en
// una sola transacción, con la línea bloqueada durante el ajuste.
func (uc *BatchUseCase) UpdateStockLine(id string, in dto.UpdateStockLineRequest) (*dto.StockLineResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var result *entity.StockLine
	err := uc.txRunner.Run(context.Background(), func(
		batchRepo repository.BatchRepository,
		stockRepo repository.StockLineRepository,
	) error {
		line, err := stockRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if line == nil {
			return nil
		}

		delta := in.QuantityLeft - line.QuantityLeft
		if err := batchRepo.AddQuantity(line.BatchID, delta); err != nil {
			return err
		}
		if in.QuantityLeft == 0 {
			if err := stockRepo.Delete(id); err != nil {
				return err
			}
			line.QuantityLeft = 0
			result = line
			return nil
		}
		line.QuantityLeft = in.QuantityLeft
		if err := stockRepo.Update(line); err != nil {
			return err
		}
		result = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return toStockLineResponse(result), nil
}

// ListStockLines lista líneas de stock con paginación.
func (uc *BatchUseCase) ListStockLines(page dto.PageRequest) ([]dto.StockLineResponse, error) {
	page.DefaultPage()
	list, err := uc.stockRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLineResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toStockLineResponse(l))
	}
	return items, nil
}

// DeleteStockLine elimina una línea de stock descontando su cantidad del lote,
// ambos dentro de la misma transacción.
func (uc *BatchUseCase) DeleteStockLine(id string) error {
	return uc.txRunner.Run(context.Background(), func(
		batchRepo repository.BatchRepository,
		stockRepo repository.StockLineRepository,
	) error {
		line, err := stockRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if err := batchRepo.AddQuantity(line.BatchID, -line.QuantityLeft); err != nil {
			return err
		}
		return stockRepo.Delete(id)
	})
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:              b.ID,
		BatchNo:         b.BatchNo,
		ProductID:       b.ProductID,
		SKU:             b.SKU,
		ManufactureDate: b.ManufactureDate.Format("2006-01-02"),
		ExpiryDate:      b.ExpiryDate.Format("2006-01-02"),
		Quantity:        b.Quantity,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toStockLineResponse(l *entity.StockLine) *dto.StockLineResponse {
	return &dto.StockLineResponse{
		ID:           l.ID,
		BatchID:      l.BatchID,
		PalletID:     l.PalletID,
		QuantityLeft: l.QuantityLeft,
		StoredOn:     l.StoredOn,
	}
}
