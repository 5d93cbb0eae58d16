package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo maestro.
type ProductUseCase struct {
	repo      repository.ProductRepository
	brandRepo repository.BrandRepository
	batchRepo repository.BatchRepository
	saleRepo  repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, brandRepo: brandRepo, batchRepo: batchRepo, saleRepo: saleRepo}
}

// Create crea un producto. prod_id, sku y upc deben ser únicos globalmente
// y la marca debe existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByUniqueKeys(in.ProdID, in.SKU, in.UPC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		ProdID:         in.ProdID,
		SKU:            in.SKU,
		UPC:            in.UPC,
		Name:           in.Name,
		Description:    in.Description,
		BrandID:        in.BrandID,
		CategoryID:     in.CategoryID,
		SubcategoryID:  in.SubcategoryID,
		CompanyID:      in.CompanyID,
		UnitOfMeasure:  in.UnitOfMeasure,
		Weight:         in.Weight,
		ExpiryInMonths: in.ExpiryInMonths,
		Status:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// CreateBulk crea varios productos validando cada uno. No es transaccional:
// devuelve los creados y el primer error encontrado.
func (uc *ProductUseCase) CreateBulk(in []dto.CreateProductRequest) ([]dto.ProductResponse, error) {
	results := make([]dto.ProductResponse, 0, len(in))
	for _, req := range in {
		created, err := uc.Create(req)
		if err != nil {
			return results, err
		}
		results = append(results, *created)
	}
	return results, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto con merge explícito campo por campo.
// Las claves únicas (prod_id, sku, upc) son inmutables.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.BrandID != nil {
		brand, err := uc.brandRepo.GetByID(*in.BrandID)
		if err != nil {
			return nil, err
		}
		if brand == nil {
			return nil, domain.ErrNotFound
		}
		product.BrandID = *in.BrandID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		product.SubcategoryID = *in.SubcategoryID
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}
	if in.ExpiryInMonths != nil {
		product.ExpiryInMonths = *in.ExpiryInMonths
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Filter busca productos por filtros combinables.
func (uc *ProductUseCase) Filter(in dto.ProductFilterRequest) ([]dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	list, err := uc.repo.Filter(repository.ProductFilter{
		ProdID:        in.ProdID,
		BrandID:       in.BrandID,
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		SKU:           in.SKU,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto solo si nada lo referencia (lotes o ventas);
// si está referenciado, la eliminación se bloquea y debe usarse status=false.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	hasBatches, err := uc.batchRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	hasSales, err := uc.saleRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if hasBatches || hasSales {
		return domain.ErrDeletionBlocked
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		ProdID:         p.ProdID,
		SKU:            p.SKU,
		UPC:            p.UPC,
		Name:           p.Name,
		Description:    p.Description,
		BrandID:        p.BrandID,
		CategoryID:     p.CategoryID,
		SubcategoryID:  p.SubcategoryID,
		CompanyID:      p.CompanyID,
		UnitOfMeasure:  p.UnitOfMeasure,
		Weight:         p.Weight,
		ExpiryInMonths: p.ExpiryInMonths,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
