package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ConsumerUseCase casos de uso CRUD para consumidores (clientes finales).
type ConsumerUseCase struct {
	repo repository.ConsumerRepository
}

// NewConsumerUseCase construye el caso de uso.
func NewConsumerUseCase(repo repository.ConsumerRepository) *ConsumerUseCase {
	return &ConsumerUseCase{repo: repo}
}

// Create crea un consumidor.
func (uc *ConsumerUseCase) Create(in dto.CreateConsumerRequest) (*dto.ConsumerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	consumer := &entity.Consumer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Company:   in.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(consumer); err != nil {
		return nil, err
	}
	return toConsumerResponse(consumer), nil
}

// GetByID obtiene un consumidor por ID.
func (uc *ConsumerUseCase) GetByID(id string) (*dto.ConsumerResponse, error) {
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, nil
	}
	return toConsumerResponse(consumer), nil
}

// Update actualiza un consumidor.
func (uc *ConsumerUseCase) Update(id string, in dto.UpdateConsumerRequest) (*dto.ConsumerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, nil
	}
	if in.Name != nil {
		consumer.Name = *in.Name
	}
	if in.Phone != nil {
		consumer.Phone = *in.Phone
	}
	if in.Email != nil {
		consumer.Email = *in.Email
	}
	if in.Address != nil {
		consumer.Address = *in.Address
	}
	if in.Company != nil {
		consumer.Company = *in.Company
	}
	consumer.UpdatedAt = time.Now()
	if err := uc.repo.Update(consumer); err != nil {
		return nil, err
	}
	return toConsumerResponse(consumer), nil
}

// List lista consumidores con paginación.
func (uc *ConsumerUseCase) List(page dto.PageRequest) ([]dto.ConsumerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toConsumerResponse(c))
	}
	return items, nil
}

// Delete elimina un consumidor.
func (uc *ConsumerUseCase) Delete(id string) error {
	consumer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if consumer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toConsumerResponse(c *entity.Consumer) *dto.ConsumerResponse {
	return &dto.ConsumerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Company:   c.Company,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
