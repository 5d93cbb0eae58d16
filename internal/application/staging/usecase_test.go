package staging_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/staging"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria. El TxRunner es passthrough: estos tests verifican
// los guards de estado, no la atomicidad (eso lo cubre la capa postgres).
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	pallets    map[string]*entity.Pallet
	entries    map[string]*entity.StagingEntry
	batches    map[string]*entity.Batch
	lines      map[string]*entity.StockLine

	lockedPairReads int
}

func newWorld() *world {
	return &world{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		pallets:    map[string]*entity.Pallet{},
		entries:    map[string]*entity.StagingEntry{},
		batches:    map[string]*entity.Batch{},
		lines:      map[string]*entity.StockLine{},
	}
}

type stubProductRepo struct{ w *world }

func (s *stubProductRepo) Create(*entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return s.w.products[id], nil
}
func (s *stubProductRepo) GetByUniqueKeys(string, string, string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(*entity.Product) error             { return nil }
func (s *stubProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (s *stubProductRepo) Filter(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Delete(string) error { return nil }

type stubWarehouseRepo struct{ w *world }

func (s *stubWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (s *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return s.w.warehouses[id], nil
}
func (s *stubWarehouseRepo) Update(*entity.Warehouse) error             { return nil }
func (s *stubWarehouseRepo) List(int, int) ([]*entity.Warehouse, error) { return nil, nil }
func (s *stubWarehouseRepo) Delete(string) error                        { return nil }

type stubPalletRepo struct{ w *world }

func (s *stubPalletRepo) Create(*entity.Pallet) error { return nil }
func (s *stubPalletRepo) GetByID(id string) (*entity.Pallet, error) {
	return s.w.pallets[id], nil
}
func (s *stubPalletRepo) GetByCode(string) (*entity.Pallet, error) { return nil, nil }
func (s *stubPalletRepo) Update(*entity.Pallet) error              { return nil }
func (s *stubPalletRepo) ListByWarehouse(string, int, int) ([]*entity.Pallet, error) {
	return nil, nil
}
func (s *stubPalletRepo) List(int, int) ([]*entity.Pallet, error) { return nil, nil }
func (s *stubPalletRepo) Delete(string) error                     { return nil }

type stubStagingRepo struct{ w *world }

func (s *stubStagingRepo) Create(e *entity.StagingEntry) error {
	s.w.entries[e.ID] = e
	return nil
}
func (s *stubStagingRepo) GetByID(id string) (*entity.StagingEntry, error) {
	return s.w.entries[id], nil
}
func (s *stubStagingRepo) GetByIDForUpdate(id string) (*entity.StagingEntry, error) {
	return s.w.entries[id], nil
}
func (s *stubStagingRepo) Update(e *entity.StagingEntry) error {
	s.w.entries[e.ID] = e
	return nil
}
func (s *stubStagingRepo) Filter(repository.StagingFilter) ([]*entity.StagingEntry, error) {
	return nil, nil
}
func (s *stubStagingRepo) Delete(id string) error {
	delete(s.w.entries, id)
	return nil
}

type stubBatchRepo struct{ w *world }

func (s *stubBatchRepo) Create(b *entity.Batch) error { s.w.batches[b.ID] = b; return nil }
func (s *stubBatchRepo) GetByID(id string) (*entity.Batch, error) {
	return s.w.batches[id], nil
}
func (s *stubBatchRepo) GetByBatchNo(string) (*entity.Batch, error)    { return nil, nil }
func (s *stubBatchRepo) Update(*entity.Batch) error                    { return nil }
func (s *stubBatchRepo) List(int, int) ([]*entity.Batch, error)        { return nil, nil }
func (s *stubBatchRepo) ListByProduct(string) ([]*entity.Batch, error) { return nil, nil }
func (s *stubBatchRepo) AddQuantity(batchID string, delta int64) error {
	b, ok := s.w.batches[batchID]
	if !ok || b.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}
func (s *stubBatchRepo) ExistsForProduct(string) (bool, error) { return false, nil }
func (s *stubBatchRepo) Delete(string) error                   { return nil }

type stubStockRepo struct{ w *world }

func (s *stubStockRepo) Create(l *entity.StockLine) error { s.w.lines[l.ID] = l; return nil }
func (s *stubStockRepo) GetByID(id string) (*entity.StockLine, error) {
	return s.w.lines[id], nil
}
func (s *stubStockRepo) GetByIDForUpdate(id string) (*entity.StockLine, error) {
	return s.w.lines[id], nil
}
func (s *stubStockRepo) GetByBatchAndPallet(batchID, palletID string) (*entity.StockLine, error) {
	for _, l := range s.w.lines {
		if l.BatchID == batchID && l.PalletID == palletID {
			return l, nil
		}
	}
	return nil, nil
}
func (s *stubStockRepo) GetByBatchAndPalletForUpdate(batchID, palletID string) (*entity.StockLine, error) {
	s.w.lockedPairReads++
	return s.GetByBatchAndPallet(batchID, palletID)
}
func (s *stubStockRepo) Update(l *entity.StockLine) error           { s.w.lines[l.ID] = l; return nil }
func (s *stubStockRepo) List(int, int) ([]*entity.StockLine, error) { return nil, nil }
func (s *stubStockRepo) ListByBatchIDs([]string) ([]*entity.StockLine, error) {
	return nil, nil
}
func (s *stubStockRepo) SumByProduct(string) (int64, error) { return 0, nil }
func (s *stubStockRepo) ListForAllocationForUpdate(string) ([]allocation.Line, error) {
	return nil, nil
}
func (s *stubStockRepo) ExistsForBatch(string) (bool, error) { return false, nil }
func (s *stubStockRepo) Delete(id string) error {
	delete(s.w.lines, id)
	return nil
}

type stubTxRunner struct{ w *world }

func (s *stubTxRunner) Run(_ context.Context, fn func(
	stagingRepo repository.StagingRepository,
	batchRepo repository.BatchRepository,
	stockRepo repository.StockLineRepository,
) error) error {
	return fn(&stubStagingRepo{w: s.w}, &stubBatchRepo{w: s.w}, &stubStockRepo{w: s.w})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	stgProductID   = "11111111-1111-1111-1111-111111111111"
	stgWarehouseID = "33333333-3333-3333-3333-333333333333"
	stgPalletID    = "44444444-4444-4444-4444-444444444444"
	stgBatchID     = "55555555-5555-5555-5555-555555555555"
	stgOtherBatch  = "66666666-6666-6666-6666-666666666666"
)

func seedWorld() *world {
	w := newWorld()
	w.products[stgProductID] = &entity.Product{ID: stgProductID, Name: "Café 500g", Status: true}
	w.warehouses[stgWarehouseID] = &entity.Warehouse{ID: stgWarehouseID, Name: "Bodega Norte"}
	w.pallets[stgPalletID] = &entity.Pallet{ID: stgPalletID, Code: "PAL-001", WarehouseID: stgWarehouseID}
	w.batches[stgBatchID] = &entity.Batch{
		ID: stgBatchID, BatchNo: "LOT-77", ProductID: stgProductID,
		ManufactureDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Quantity:        0, Status: true,
	}
	return w
}

func newStagingUC(w *world) *staging.UseCase {
	return staging.NewUseCase(
		&stubStagingRepo{w: w},
		&stubProductRepo{w: w},
		&stubWarehouseRepo{w: w},
		&stubPalletRepo{w: w},
		&stubTxRunner{w: w},
	)
}

func createEntry(t *testing.T, uc *staging.UseCase, qty int64) string {
	t.Helper()
	out, err := uc.Create(dto.CreateStagingRequest{
		ProductID:     stgProductID,
		WarehouseID:   stgWarehouseID,
		InvoiceNo:     "FAC-2025-001",
		TotalQuantity: qty,
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada nueva nace en HOLD con cantidades en cero y sin fecha de QC.
func TestCreate_NaceEnHold(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)

	out, err := uc.Create(dto.CreateStagingRequest{
		ProductID:     stgProductID,
		WarehouseID:   stgWarehouseID,
		InvoiceNo:     "FAC-2025-001",
		TotalQuantity: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QCStatusHold, out.QCStatus)
	assert.Zero(t, out.ApprovedQuantity)
	assert.Zero(t, out.RejectedQuantity)
	assert.False(t, out.PutAway)
	assert.Nil(t, out.QCDoneOn)
}

func TestCreate_ReferenciasInexistentes(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)

	_, err := uc.Create(dto.CreateStagingRequest{
		ProductID:     "99999999-9999-9999-9999-999999999999",
		WarehouseID:   stgWarehouseID,
		InvoiceNo:     "FAC-1",
		TotalQuantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(dto.CreateStagingRequest{
		ProductID:     stgProductID,
		WarehouseID:   "99999999-9999-9999-9999-999999999999",
		InvoiceNo:     "FAC-1",
		TotalQuantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El veredicto QC es de una sola vía: HOLD → APPROVED/REJECTED, y queda sellado.
func TestRecordQC_TransicionUnicaVia(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)
	id := createEntry(t, uc, 100)

	out, err := uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 90,
		RejectedQuantity: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QCStatusApproved, out.QCStatus)
	assert.Equal(t, int64(90), out.ApprovedQuantity)
	assert.Equal(t, int64(10), out.RejectedQuantity)
	require.NotNil(t, out.QCDoneOn, "el veredicto debe sellar la fecha de QC")

	// Segunda invocación: rechazada sin tocar la entrada.
	_, err = uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusRejected,
		RejectedQuantity: 100,
	})
	assert.ErrorIs(t, err, domain.ErrQCAlreadyDone)
	assert.Equal(t, entity.QCStatusApproved, w.entries[id].QCStatus,
		"el veredicto original debe conservarse")
}

// approved+rejected no puede exceder la cantidad total recibida.
func TestRecordQC_CantidadesAcotadasPorTotal(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)
	id := createEntry(t, uc, 100)

	_, err := uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 80,
		RejectedQuantity: 30, // 110 > 100
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.QCStatusHold, w.entries[id].QCStatus,
		"un QC inválido no debe cambiar el estado")
}

// PutAway materializa la cantidad aprobada como línea de stock e incrementa el lote.
func TestPutAway_MaterializaStock(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)
	id := createEntry(t, uc, 100)

	_, err := uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 90,
		RejectedQuantity: 10,
	})
	require.NoError(t, err)

	out, err := uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgBatchID,
		PalletID: stgPalletID,
	})
	require.NoError(t, err)
	assert.True(t, out.PutAway)

	assert.Equal(t, int64(90), w.batches[stgBatchID].Quantity,
		"el total del lote debe crecer en la cantidad aprobada")
	require.Len(t, w.lines, 1)
	for _, l := range w.lines {
		assert.Equal(t, int64(90), l.QuantityLeft)
		assert.Equal(t, stgBatchID, l.BatchID)
		assert.Equal(t, stgPalletID, l.PalletID)
	}

	// Repetir el putaway: bloqueado, sin duplicar stock.
	_, err = uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgBatchID,
		PalletID: stgPalletID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(90), w.batches[stgBatchID].Quantity)
}

// Si el par (lote, pallet) ya tiene línea, el putaway suma sobre ella en vez
// de violar la unicidad del par.
func TestPutAway_SumaSobreLineaExistente(t *testing.T) {
	w := seedWorld()
	w.lines["existing"] = &entity.StockLine{
		ID: "existing", BatchID: stgBatchID, PalletID: stgPalletID,
		QuantityLeft: 40, StoredOn: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	w.batches[stgBatchID].Quantity = 40
	uc := newStagingUC(w)
	id := createEntry(t, uc, 60)

	_, err := uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 60,
	})
	require.NoError(t, err)

	_, err = uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgBatchID,
		PalletID: stgPalletID,
	})
	require.NoError(t, err)

	require.Len(t, w.lines, 1, "no debe crearse una segunda línea para el mismo par")
	assert.Equal(t, int64(100), w.lines["existing"].QuantityLeft)
	assert.Equal(t, int64(100), w.batches[stgBatchID].Quantity)
	assert.Positive(t, w.lockedPairReads,
		"la línea existente debe leerse bloqueada: una venta concurrente no puede quedar pisada por la suma")
}

func TestPutAway_Guards(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)
	id := createEntry(t, uc, 50)

	// Todavía en HOLD: no hay nada aprobado que guardar.
	_, err := uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgBatchID,
		PalletID: stgPalletID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Lote de otro producto.
	w.batches[stgOtherBatch] = &entity.Batch{
		ID: stgOtherBatch, BatchNo: "LOT-99", ProductID: "99999999-9999-9999-9999-999999999999",
		ExpiryDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Status: true,
	}
	_, err = uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 50,
	})
	require.NoError(t, err)
	_, err = uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgOtherBatch,
		PalletID: stgPalletID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el lote destino debe pertenecer al producto de la entrada")
}

// Una entrada REJECTED nunca llega al libro de stock.
func TestPutAway_RechazadaNoSePuedeGuardar(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)
	id := createEntry(t, uc, 50)

	_, err := uc.RecordQC(context.Background(), id, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusRejected,
		RejectedQuantity: 50,
	})
	require.NoError(t, err)

	_, err = uc.PutAway(context.Background(), id, dto.PutAwayRequest{
		BatchID:  stgBatchID,
		PalletID: stgPalletID,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, w.lines, 0)
	assert.Zero(t, w.batches[stgBatchID].Quantity)
}

// Solo las entradas en HOLD se pueden borrar; con veredicto son histórico.
func TestDelete_SoloEnHold(t *testing.T) {
	w := seedWorld()
	uc := newStagingUC(w)

	idHold := createEntry(t, uc, 10)
	require.NoError(t, uc.Delete(idHold))
	assert.NotContains(t, w.entries, idHold)

	idDone := createEntry(t, uc, 10)
	_, err := uc.RecordQC(context.Background(), idDone, dto.RecordQCRequest{
		QCStatus:         entity.QCStatusApproved,
		ApprovedQuantity: 10,
	})
	require.NoError(t, err)

	err = uc.Delete(idDone)
	assert.ErrorIs(t, err, domain.ErrDeletionBlocked)
	assert.Contains(t, w.entries, idDone)
}
