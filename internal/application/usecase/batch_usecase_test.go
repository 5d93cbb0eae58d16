package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test en memoria compartidos por los tests del paquete.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	products map[string]*entity.Product
	pallets  map[string]*entity.Pallet
	batches  map[string]*entity.Batch
	lines    map[string]*entity.StockLine
	prices   map[string]*entity.Price
}

func newStore() *store {
	return &store{
		products: map[string]*entity.Product{},
		pallets:  map[string]*entity.Pallet{},
		batches:  map[string]*entity.Batch{},
		lines:    map[string]*entity.StockLine{},
		prices:   map[string]*entity.Price{},
	}
}

type memProductRepo struct{ st *store }

func (m *memProductRepo) Create(p *entity.Product) error { m.st.products[p.ID] = p; return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.st.products[id], nil
}
func (m *memProductRepo) GetByUniqueKeys(string, string, string) (*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) Update(*entity.Product) error             { return nil }
func (m *memProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (m *memProductRepo) Filter(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) Delete(string) error { return nil }

type memPalletRepo struct{ st *store }

func (m *memPalletRepo) Create(p *entity.Pallet) error { m.st.pallets[p.ID] = p; return nil }
func (m *memPalletRepo) GetByID(id string) (*entity.Pallet, error) {
	return m.st.pallets[id], nil
}
func (m *memPalletRepo) GetByCode(string) (*entity.Pallet, error) { return nil, nil }
func (m *memPalletRepo) Update(*entity.Pallet) error              { return nil }
func (m *memPalletRepo) ListByWarehouse(string, int, int) ([]*entity.Pallet, error) {
	return nil, nil
}
func (m *memPalletRepo) List(int, int) ([]*entity.Pallet, error) { return nil, nil }
func (m *memPalletRepo) Delete(string) error                     { return nil }

type memBatchRepo struct{ st *store }

func (m *memBatchRepo) Create(b *entity.Batch) error { m.st.batches[b.ID] = b; return nil }
func (m *memBatchRepo) GetByID(id string) (*entity.Batch, error) {
	return m.st.batches[id], nil
}
func (m *memBatchRepo) GetByBatchNo(no string) (*entity.Batch, error) {
	for _, b := range m.st.batches {
		if b.BatchNo == no {
			return b, nil
		}
	}
	return nil, nil
}
func (m *memBatchRepo) Update(b *entity.Batch) error           { m.st.batches[b.ID] = b; return nil }
func (m *memBatchRepo) List(int, int) ([]*entity.Batch, error) { return nil, nil }
func (m *memBatchRepo) ListByProduct(string) ([]*entity.Batch, error) {
	return nil, nil
}
func (m *memBatchRepo) AddQuantity(batchID string, delta int64) error {
	b, ok := m.st.batches[batchID]
	if !ok || b.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}
func (m *memBatchRepo) ExistsForProduct(string) (bool, error) { return false, nil }
func (m *memBatchRepo) Delete(id string) error {
	delete(m.st.batches, id)
	return nil
}

type memStockRepo struct {
	st        *store
	updateErr error // inyectable para simular un fallo a mitad del ajuste
}

func (m *memStockRepo) Create(l *entity.StockLine) error { m.st.lines[l.ID] = l; return nil }
func (m *memStockRepo) GetByID(id string) (*entity.StockLine, error) {
	return m.st.lines[id], nil
}
func (m *memStockRepo) GetByIDForUpdate(id string) (*entity.StockLine, error) {
	return m.st.lines[id], nil
}
func (m *memStockRepo) GetByBatchAndPallet(batchID, palletID string) (*entity.StockLine, error) {
	for _, l := range m.st.lines {
		if l.BatchID == batchID && l.PalletID == palletID {
			return l, nil
		}
	}
	return nil, nil
}
func (m *memStockRepo) GetByBatchAndPalletForUpdate(batchID, palletID string) (*entity.StockLine, error) {
	return m.GetByBatchAndPallet(batchID, palletID)
}
func (m *memStockRepo) Update(l *entity.StockLine) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.st.lines[l.ID] = l
	return nil
}
func (m *memStockRepo) List(int, int) ([]*entity.StockLine, error) { return nil, nil }
func (m *memStockRepo) ListByBatchIDs(ids []string) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, l := range m.st.lines {
		for _, id := range ids {
			if l.BatchID == id {
				out = append(out, l)
			}
		}
	}
	return out, nil
}
func (m *memStockRepo) SumByProduct(string) (int64, error) { return 0, nil }
func (m *memStockRepo) ListForAllocationForUpdate(string) ([]allocation.Line, error) {
	return nil, nil
}
func (m *memStockRepo) ExistsForBatch(batchID string) (bool, error) {
	for _, l := range m.st.lines {
		if l.BatchID == batchID {
			return true, nil
		}
	}
	return false, nil
}
func (m *memStockRepo) Delete(id string) error {
	delete(m.st.lines, id)
	return nil
}

// memStockTxRunner clona lote y líneas, ejecuta fn contra la copia y publica
// solo si fn termina sin error. Así los tests verifican que un fallo a mitad
// del ajuste no deja el lote desincronizado de sus líneas.
type memStockTxRunner struct {
	st        *store
	updateErr error
}

func (r *memStockTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	stockRepo repository.StockLineRepository,
) error) error {
	tx := &store{
		products: r.st.products,
		pallets:  r.st.pallets,
		prices:   r.st.prices,
		batches:  map[string]*entity.Batch{},
		lines:    map[string]*entity.StockLine{},
	}
	for id, b := range r.st.batches {
		cp := *b
		tx.batches[id] = &cp
	}
	for id, l := range r.st.lines {
		cp := *l
		tx.lines[id] = &cp
	}
	if err := fn(&memBatchRepo{st: tx}, &memStockRepo{st: tx, updateErr: r.updateErr}); err != nil {
		return err
	}
	r.st.batches = tx.batches
	r.st.lines = tx.lines
	return nil
}

type memPriceRepo struct{ st *store }

func (m *memPriceRepo) Create(p *entity.Price) error { m.st.prices[p.ID] = p; return nil }
func (m *memPriceRepo) GetByID(id string) (*entity.Price, error) {
	return m.st.prices[id], nil
}
func (m *memPriceRepo) Update(p *entity.Price) error           { m.st.prices[p.ID] = p; return nil }
func (m *memPriceRepo) List(int, int) ([]*entity.Price, error) { return nil, nil }
func (m *memPriceRepo) ListByProduct(productID string) ([]*entity.Price, error) {
	var out []*entity.Price
	for _, p := range m.st.prices {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "11111111-1111-1111-1111-111111111111"
	testPalletID  = "44444444-4444-4444-4444-444444444444"
	testPalletID2 = "66666666-6666-6666-6666-666666666666"
)

func seedStore() *store {
	st := newStore()
	st.products[testProductID] = &entity.Product{ID: testProductID, SKU: "CAFE500", Status: true}
	st.pallets[testPalletID] = &entity.Pallet{ID: testPalletID, Code: "PAL-001"}
	return st
}

func newBatchUC(st *store) *usecase.BatchUseCase {
	return newBatchUCWithRunner(st, &memStockTxRunner{st: st})
}

func newBatchUCWithRunner(st *store, runner *memStockTxRunner) *usecase.BatchUseCase {
	return usecase.NewBatchUseCase(
		&memBatchRepo{st: st},
		&memProductRepo{st: st},
		&memPalletRepo{st: st},
		&memStockRepo{st: st},
		runner,
	)
}

func validBatchRequest(batchNo string) dto.CreateBatchRequest {
	return dto.CreateBatchRequest{
		BatchNo:         batchNo,
		ProductID:       testProductID,
		SKU:             "CAFE500",
		ManufactureDate: "2025-01-10",
		ExpiryDate:      "2026-01-10",
		Quantity:        100,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchCreate_Valido(t *testing.T) {
	uc := newBatchUC(seedStore())

	out, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)
	assert.Equal(t, "LOT-1", out.BatchNo)
	assert.Equal(t, int64(100), out.Quantity)
	assert.True(t, out.Status)
}

func TestBatchCreate_BatchNoDuplicado(t *testing.T) {
	uc := newBatchUC(seedStore())

	_, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)

	_, err = uc.Create(validBatchRequest("LOT-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestBatchCreate_VencimientoAnteriorAFabricacion(t *testing.T) {
	uc := newBatchUC(seedStore())

	in := validBatchRequest("LOT-1")
	in.ManufactureDate = "2025-06-01"
	in.ExpiryDate = "2025-01-01"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatchCreate_ProductoInexistente(t *testing.T) {
	uc := newBatchUC(seedStore())

	in := validBatchRequest("LOT-1")
	in.ProductID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un lote con líneas de stock en bodega no se puede borrar.
func TestBatchDelete_BloqueadoConLineas(t *testing.T) {
	st := seedStore()
	uc := newBatchUC(st)

	out, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)
	st.lines["l1"] = &entity.StockLine{ID: "l1", BatchID: out.ID, PalletID: testPalletID, QuantityLeft: 5, StoredOn: time.Now()}

	err = uc.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrDeletionBlocked)

	delete(st.lines, "l1")
	assert.NoError(t, uc.Delete(out.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de líneas de stock
// ──────────────────────────────────────────────────────────────────────────────

// La colocación no puede exceder el total del lote y el par (lote, pallet) es único.
func TestCreateStockLine_Guards(t *testing.T) {
	st := seedStore()
	uc := newBatchUC(st)
	batch, err := uc.Create(validBatchRequest("LOT-1")) // quantity 100
	require.NoError(t, err)

	_, err = uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID, QuantityLeft: 60,
	})
	require.NoError(t, err)

	// Par duplicado
	_, err = uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID, QuantityLeft: 10,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Colocar 50 más excedería el total (60+50 > 100)
	st.pallets[testPalletID2] = &entity.Pallet{ID: testPalletID2, Code: "PAL-002"}
	_, err = uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID2, QuantityLeft: 50,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// 40 exactos caben
	_, err = uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID2, QuantityLeft: 40,
	})
	assert.NoError(t, err)
}

// El ajuste manual propaga la diferencia al total del lote, y un ajuste a
// cero elimina la línea del libro.
func TestUpdateStockLine_PropagaDeltaYEliminaEnCero(t *testing.T) {
	st := seedStore()
	uc := newBatchUC(st)
	batch, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)

	line, err := uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID, QuantityLeft: 60,
	})
	require.NoError(t, err)

	// 60 -> 45: el lote baja 15
	_, err = uc.UpdateStockLine(line.ID, dto.UpdateStockLineRequest{QuantityLeft: 45})
	require.NoError(t, err)
	assert.Equal(t, int64(85), st.batches[batch.ID].Quantity)
	assert.Equal(t, int64(45), st.lines[line.ID].QuantityLeft)

	// 45 -> 0: línea eliminada, lote baja a 40
	_, err = uc.UpdateStockLine(line.ID, dto.UpdateStockLineRequest{QuantityLeft: 0})
	require.NoError(t, err)
	assert.NotContains(t, st.lines, line.ID, "una línea en cero debe salir del libro")
	assert.Equal(t, int64(40), st.batches[batch.ID].Quantity)
}

func TestDeleteStockLine_DescuentaDelLote(t *testing.T) {
	st := seedStore()
	uc := newBatchUC(st)
	batch, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)

	line, err := uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID, QuantityLeft: 30,
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteStockLine(line.ID))
	assert.NotContains(t, st.lines, line.ID)
	assert.Equal(t, int64(70), st.batches[batch.ID].Quantity)
}

// Un fallo a mitad del ajuste no puede dejar el total del lote desincronizado
// de sus líneas: ambas escrituras confirman o revierten juntas.
func TestUpdateStockLine_FalloRevierteAmbasTablas(t *testing.T) {
	st := seedStore()
	runner := &memStockTxRunner{st: st}
	uc := newBatchUCWithRunner(st, runner)
	batch, err := uc.Create(validBatchRequest("LOT-1"))
	require.NoError(t, err)

	line, err := uc.CreateStockLine(dto.CreateStockLineRequest{
		BatchID: batch.ID, PalletID: testPalletID, QuantityLeft: 60,
	})
	require.NoError(t, err)

	// El descuento del lote ocurre antes de reescribir la línea; si esa
	// segunda escritura falla, el descuento debe revertirse con ella.
	runner.updateErr = assert.AnError
	_, err = uc.UpdateStockLine(line.ID, dto.UpdateStockLineRequest{QuantityLeft: 45})
	require.Error(t, err)
	assert.Equal(t, int64(100), st.batches[batch.ID].Quantity)
	assert.Equal(t, int64(60), st.lines[line.ID].QuantityLeft)

	runner.updateErr = nil
	_, err = uc.UpdateStockLine(line.ID, dto.UpdateStockLineRequest{QuantityLeft: 45})
	require.NoError(t, err)
	assert.Equal(t, int64(85), st.batches[batch.ID].Quantity)
}
