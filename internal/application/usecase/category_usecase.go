package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías y subcategorías.
type CategoryUseCase struct {
	repo    repository.CategoryRepository
	subRepo repository.SubcategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, subRepo repository.SubcategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, subRepo: subRepo}
}

// Create crea una categoría. El nombre debe ser único.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
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
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(page dto.PageRequest) ([]dto.CategoryResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// CreateSubcategory crea una subcategoría bajo una categoría existente.
func (uc *CategoryUseCase) CreateSubcategory(in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	sub := &entity.Subcategory{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.subRepo.Create(sub); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(sub), nil
}

// GetSubcategoryByID obtiene una subcategoría por ID.
func (uc *CategoryUseCase) GetSubcategoryByID(id string) (*dto.SubcategoryResponse, error) {
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return toSubcategoryResponse(sub), nil
}

// UpdateSubcategory actualiza una subcategoría.
func (uc *CategoryUseCase) UpdateSubcategory(id string, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	if in.Name != nil {
		sub.Name = *in.Name
	}
	sub.UpdatedAt = time.Now()
	if err := uc.subRepo.Update(sub); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(sub), nil
}

// ListSubcategories lista subcategorías, opcionalmente por categoría.
func (uc *CategoryUseCase) ListSubcategories(categoryID string, page dto.PageRequest) ([]dto.SubcategoryResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Subcategory
		err  error
	)
	if categoryID != "" {
		list, err = uc.subRepo.ListByCategory(categoryID, page.Limit, page.Offset)
	} else {
		list, err = uc.subRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSubcategoryResponse(s))
	}
	return items, nil
}

// DeleteSubcategory elimina una subcategoría.
func (uc *CategoryUseCase) DeleteSubcategory(id string) error {
	sub, err := uc.subRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}
	return uc.subRepo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	return &dto.SubcategoryResponse{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
