package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// PriceUseCase casos de uso para precios. El histórico es solo-añadir:
// no existe operación de borrado.
type PriceUseCase struct {
	repo        repository.PriceRepository
	productRepo repository.ProductRepository
}

// NewPriceUseCase construye el caso de uso.
func NewPriceUseCase(repo repository.PriceRepository, productRepo repository.ProductRepository) *PriceUseCase {
	return &PriceUseCase{repo: repo, productRepo: productRepo}
}

// Create registra un precio para un producto existente.
func (uc *PriceUseCase) Create(in dto.CreatePriceRequest) (*dto.PriceResponse, error) {
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
	if in.MRP.IsNegative() || in.MWP.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	effectiveFrom := now
	if in.EffectiveFrom != "" {
		effectiveFrom, err = time.Parse("2006-01-02", in.EffectiveFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	price := &entity.Price{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		MRP:           in.MRP,
		MWP:           in.MWP,
		EffectiveFrom: effectiveFrom,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(price); err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// GetByID obtiene un registro de precio por ID.
func (uc *PriceUseCase) GetByID(id string) (*dto.PriceResponse, error) {
	price, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, nil
	}
	return toPriceResponse(price), nil
}

// Update actualiza un registro de precio con merge parcial.
func (uc *PriceUseCase) Update(id string, in dto.UpdatePriceRequest) (*dto.PriceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	price, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, nil
	}
	if in.MRP != nil {
		if in.MRP.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price.MRP = *in.MRP
	}
	if in.MWP != nil {
		if in.MWP.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price.MWP = *in.MWP
	}
	if in.EffectiveFrom != nil {
		d, err := time.Parse("2006-01-02", *in.EffectiveFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		price.EffectiveFrom = d
	}
	price.UpdatedAt = time.Now()
	if err := uc.repo.Update(price); err != nil {
		return nil, err
	}
	return toPriceResponse(price), nil
}

// List lista registros de precio con paginación.
func (uc *PriceUseCase) List(page dto.PageRequest) ([]dto.PriceResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPriceResponse(p))
	}
	return items, nil
}

// ListByProduct lista el histórico de precios de un producto.
func (uc *PriceUseCase) ListByProduct(productID string) ([]dto.PriceResponse, error) {
	list, err := uc.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PriceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPriceResponse(p))
	}
	return items, nil
}

func toPriceResponse(p *entity.Price) *dto.PriceResponse {
	return &dto.PriceResponse{
		ID:            p.ID,
		ProductID:     p.ProductID,
		MRP:           p.MRP,
		MWP:           p.MWP,
		EffectiveFrom: p.EffectiveFrom,
		UpdatedAt:     p.UpdatedAt,
	}
}
