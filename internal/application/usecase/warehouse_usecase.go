package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes y sus pallets.
type WarehouseUseCase struct {
	repo       repository.WarehouseRepository
	palletRepo repository.PalletRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, palletRepo repository.PalletRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, palletRepo: palletRepo}
}

// Create crea un almacén.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista almacenes con paginación.
func (uc *WarehouseUseCase) List(page dto.PageRequest) ([]dto.WarehouseResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// Delete elimina un almacén.
func (uc *WarehouseUseCase) Delete(id string) error {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// CreatePallet crea un pallet dentro de un almacén existente.
// El código físico del pallet debe ser único.
func (uc *WarehouseUseCase) CreatePallet(in dto.CreatePalletRequest) (*dto.PalletResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse, err := uc.repo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.palletRepo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	pallet := &entity.Pallet{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Dimensions:  in.Dimensions,
		Capacity:    in.Capacity,
		WarehouseID: in.WarehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.palletRepo.Create(pallet); err != nil {
		return nil, err
	}
	return toPalletResponse(pallet), nil
}

// GetPalletByID obtiene un pallet por ID.
func (uc *WarehouseUseCase) GetPalletByID(id string) (*dto.PalletResponse, error) {
	pallet, err := uc.palletRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, nil
	}
	return toPalletResponse(pallet), nil
}

// UpdatePallet actualiza un pallet. El código físico es inmutable.
func (uc *WarehouseUseCase) UpdatePallet(id string, in dto.UpdatePalletRequest) (*dto.PalletResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	pallet, err := uc.palletRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, nil
	}
	if in.WarehouseID != nil {
		warehouse, err := uc.repo.GetByID(*in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrNotFound
		}
		pallet.WarehouseID = *in.WarehouseID
	}
	if in.Dimensions != nil {
		pallet.Dimensions = *in.Dimensions
	}
	if in.Capacity != nil {
		pallet.Capacity = *in.Capacity
	}
	pallet.UpdatedAt = time.Now()
	if err := uc.palletRepo.Update(pallet); err != nil {
		return nil, err
	}
	return toPalletResponse(pallet), nil
}

// ListPallets lista pallets, opcionalmente por almacén.
func (uc *WarehouseUseCase) ListPallets(warehouseID string, page dto.PageRequest) ([]dto.PalletResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Pallet
		err  error
	)
	if warehouseID != "" {
		list, err = uc.palletRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	} else {
		list, err = uc.palletRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PalletResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPalletResponse(p))
	}
	return items, nil
}

// DeletePallet elimina un pallet.
func (uc *WarehouseUseCase) DeletePallet(id string) error {
	pallet, err := uc.palletRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pallet == nil {
		return domain.ErrNotFound
	}
	return uc.palletRepo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toPalletResponse(p *entity.Pallet) *dto.PalletResponse {
	return &dto.PalletResponse{
		ID:          p.ID,
		Code:        p.Code,
		Dimensions:  p.Dimensions,
		Capacity:    p.Capacity,
		WarehouseID: p.WarehouseID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
