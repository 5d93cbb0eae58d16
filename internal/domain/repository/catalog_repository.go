package repository

import "github.com/tu-usuario/almacen-pro/internal/domain/entity"

// Puertos de persistencia para el catálogo maestro (DIP).

type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	GetByName(name string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	List(limit, offset int) ([]*entity.Brand, error)
	Delete(id string) error
}

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
}

type SubcategoryRepository interface {
	Create(subcategory *entity.Subcategory) error
	GetByID(id string) (*entity.Subcategory, error)
	Update(subcategory *entity.Subcategory) error
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Subcategory, error)
	List(limit, offset int) ([]*entity.Subcategory, error)
	Delete(id string) error
}

type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(name string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	Delete(id string) error
}

type ConsumerRepository interface {
	Create(consumer *entity.Consumer) error
	GetByID(id string) (*entity.Consumer, error)
	Update(consumer *entity.Consumer) error
	List(limit, offset int) ([]*entity.Consumer, error)
	Delete(id string) error
}
