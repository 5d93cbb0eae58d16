package staging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// UseCase gestiona la zona de staging: recepción de mercancía en HOLD,
// registro único de control de calidad y materialización (putaway) de la
// cantidad aprobada en el libro de stock.
type UseCase struct {
	stagingRepo   repository.StagingRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	palletRepo    repository.PalletRepository
	txRunner      TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	stagingRepo repository.StagingRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	palletRepo repository.PalletRepository,
	txRunner TxRunner,
) *UseCase {
	return &UseCase{
		stagingRepo:   stagingRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		palletRepo:    palletRepo,
		txRunner:      txRunner,
	}
}

// Create registra una recepción de mercancía. La entrada nace en HOLD con
// cantidades aprobada/rechazada en cero.
func (uc *UseCase) Create(in dto.CreateStagingRequest) (*dto.StagingResponse, error) {
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
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	receivedOn := now
	if in.ReceivedOn != "" {
		receivedOn, err = time.Parse("2006-01-02", in.ReceivedOn)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	entry := &entity.StagingEntry{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		InvoiceNo:     in.InvoiceNo,
		ReceivedOn:    receivedOn,
		TotalQuantity: in.TotalQuantity,
		QCStatus:      entity.QCStatusHold,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stagingRepo.Create(entry); err != nil {
		return nil, err
	}
	resp := toStagingResponse(entry)
	return &resp, nil
}

// GetByID obtiene una entrada de staging.
func (uc *UseCase) GetByID(id string) (*dto.StagingResponse, error) {
	entry, err := uc.stagingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStagingResponse(entry)
	return &resp, nil
}

// Filter lista entradas de staging. Si llega fecha exacta, el rango
// start/end se ignora.
func (uc *UseCase) Filter(in dto.StagingFilterRequest) ([]dto.StagingResponse, error) {
	f := repository.StagingFilter{
		QCStatus:    in.QCStatus,
		InvoiceNo:   in.InvoiceNo,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
	}
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return &t, nil
	}
	var err error
	if f.ExactDate, err = parse(in.ExactDate); err != nil {
		return nil, err
	}
	if f.ExactDate == nil {
		if f.StartDate, err = parse(in.StartDate); err != nil {
			return nil, err
		}
		if f.EndDate, err = parse(in.EndDate); err != nil {
			return nil, err
		}
	}

	entries, err := uc.stagingRepo.Filter(f)
	if err != nil {
		return nil, err
	}
	results := make([]dto.StagingResponse, 0, len(entries))
	for _, e := range entries {
		results = append(results, toStagingResponse(e))
	}
	return results, nil
}

// RecordQC registra el veredicto de control de calidad de una entrada.
// Es una transición de una sola vía: solo aplica sobre HOLD y deja la entrada
// en un estado terminal (APPROVED o REJECTED). Una segunda invocación
// devuelve ErrQCAlreadyDone sin tocar nada.
func (uc *UseCase) RecordQC(ctx context.Context, id string, in dto.RecordQCRequest) (*dto.StagingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.ApprovedQuantity < 0 || in.RejectedQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StagingEntry
	err := uc.txRunner.Run(ctx, func(
		stagingRepo repository.StagingRepository,
		_ repository.BatchRepository,
		_ repository.StockLineRepository,
	) error {
		entry, err := stagingRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.QCStatus != entity.QCStatusHold {
			return domain.ErrQCAlreadyDone
		}
		if in.ApprovedQuantity+in.RejectedQuantity > entry.TotalQuantity {
			return domain.ErrConflict
		}

		now := time.Now()
		entry.QCStatus = in.QCStatus
		entry.ApprovedQuantity = in.ApprovedQuantity
		entry.RejectedQuantity = in.RejectedQuantity
		entry.QCDoneOn = &now
		entry.UpdatedAt = now
		if err := stagingRepo.Update(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toStagingResponse(result)
	return &resp, nil
}

// PutAway materializa la cantidad aprobada de una entrada APPROVED en una
// StockLine del par lote+pallet indicado, incrementando el total del lote.
// Todo dentro de una transacción; solo puede ejecutarse una vez por entrada.
func (uc *UseCase) PutAway(ctx context.Context, id string, in dto.PutAwayRequest) (*dto.StagingResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	pallet, err := uc.palletRepo.GetByID(in.PalletID)
	if err != nil {
		return nil, err
	}
	if pallet == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.StagingEntry
	err = uc.txRunner.Run(ctx, func(
		stagingRepo repository.StagingRepository,
		batchRepo repository.BatchRepository,
		stockRepo repository.StockLineRepository,
	) error {
		entry, err := stagingRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.QCStatus != entity.QCStatusApproved {
			return domain.ErrConflict
		}
		if entry.PutAway {
			return domain.ErrConflict
		}
		if entry.ApprovedQuantity <= 0 {
			return domain.ErrInvalidInput
		}

		batch, err := batchRepo.GetByID(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.ProductID != entry.ProductID {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		existing, err := stockRepo.GetByBatchAndPalletForUpdate(in.BatchID, in.PalletID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.QuantityLeft += entry.ApprovedQuantity
			if err := stockRepo.Update(existing); err != nil {
				return err
			}
		} else {
			line := &entity.StockLine{
				ID:           uuid.New().String(),
				BatchID:      in.BatchID,
				PalletID:     in.PalletID,
				QuantityLeft: entry.ApprovedQuantity,
				StoredOn:     now,
			}
			if err := stockRepo.Create(line); err != nil {
				return err
			}
		}

		if err := batchRepo.AddQuantity(in.BatchID, entry.ApprovedQuantity); err != nil {
			return err
		}

		entry.PutAway = true
		entry.UpdatedAt = now
		if err := stagingRepo.Update(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toStagingResponse(result)
	return &resp, nil
}

// Delete elimina una entrada de staging. Solo se permite en HOLD: una entrada
// con veredicto registrado es parte del histórico de recepción.
func (uc *UseCase) Delete(id string) error {
	entry, err := uc.stagingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	if entry.QCStatus != entity.QCStatusHold {
		return domain.ErrDeletionBlocked
	}
	return uc.stagingRepo.Delete(id)
}

func toStagingResponse(e *entity.StagingEntry) dto.StagingResponse {
	return dto.StagingResponse{
		ID:               e.ID,
		ProductID:        e.ProductID,
		WarehouseID:      e.WarehouseID,
		InvoiceNo:        e.InvoiceNo,
		ReceivedOn:       e.ReceivedOn,
		TotalQuantity:    e.TotalQuantity,
		QCStatus:         e.QCStatus,
		QCDoneOn:         e.QCDoneOn,
		ApprovedQuantity: e.ApprovedQuantity,
		RejectedQuantity: e.RejectedQuantity,
		PutAway:          e.PutAway,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
