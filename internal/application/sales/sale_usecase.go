package sales

import (
	"context"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// SaleUseCase consultas y ediciones acotadas sobre el registro de ventas.
// No existe operación de borrado: las ventas son auditoría inmutable.
type SaleUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	consumerRepo repository.ConsumerRepository
	batchRepo    repository.BatchRepository
	pdfGen       ReceiptPDFGenerator
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	consumerRepo repository.ConsumerRepository,
	batchRepo repository.BatchRepository,
	pdfGen ReceiptPDFGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		consumerRepo: consumerRepo,
		batchRepo:    batchRepo,
		pdfGen:       pdfGen,
	}
}

// GetByID obtiene una venta por su ID.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// List devuelve ventas paginadas.
func (uc *SaleUseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update corrige consumer_id o sale_price de una venta. El resto de campos
// describe un evento físico ya ocurrido y no es editable.
func (uc *SaleUseCase) Update(id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	if in.ConsumerID != nil {
		consumer, err := uc.consumerRepo.GetByID(*in.ConsumerID)
		if err != nil {
			return nil, err
		}
		if consumer == nil {
			return nil, domain.ErrNotFound
		}
		sale.ConsumerID = *in.ConsumerID
	}
	if in.SalePrice != nil {
		sale.SalePrice = *in.SalePrice
	}

	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// GenerateReceiptPDF resuelve los datos de la venta y genera su comprobante PDF.
func (uc *SaleUseCase) GenerateReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(sale.ProductID)
	if err != nil {
		return nil, err
	}
	consumer, err := uc.consumerRepo.GetByID(sale.ConsumerID)
	if err != nil {
		return nil, err
	}
	batch, err := uc.batchRepo.GetByID(sale.BatchID)
	if err != nil {
		return nil, err
	}

	return uc.pdfGen.GenerateReceiptPDF(ctx, ReceiptData{
		Sale:     sale,
		Product:  product,
		Consumer: consumer,
		Batch:    batch,
	})
}
