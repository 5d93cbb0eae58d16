package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca. El nombre debe ser único.
func (uc *BrandUseCase) Create(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	brand := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetByID obtiene una marca por ID.
func (uc *BrandUseCase) GetByID(id string) (*dto.BrandResponse, error) {
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, nil
	}
	return toBrandResponse(brand), nil
}

// Update actualiza una marca.
func (uc *BrandUseCase) Update(id string, in dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, nil
	}
	if in.Name != nil {
		brand.Name = *in.Name
	}
	if in.Description != nil {
		brand.Description = *in.Description
	}
	brand.UpdatedAt = time.Now()
	if err := uc.repo.Update(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// List lista marcas con paginación.
func (uc *BrandUseCase) List(page dto.PageRequest) ([]dto.BrandResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrandResponse(b))
	}
	return items, nil
}

// Delete elimina una marca.
func (uc *BrandUseCase) Delete(id string) error {
	brand, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
