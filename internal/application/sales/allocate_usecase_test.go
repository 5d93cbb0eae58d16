package sales_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/sales"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: estado en memoria + TxRunner con semántica commit/rollback.
// El estado se clona al entrar a Run; solo un fn exitoso publica el clon.
// Así los tests pueden verificar "cero efectos secundarios" tras un fallo.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	products  map[string]*entity.Product
	consumers map[string]*entity.Consumer
	batches   map[string]*entity.Batch
	lines     map[string]*entity.StockLine
	sales     []*entity.Sale
}

func newMemState() *memState {
	return &memState{
		products:  map[string]*entity.Product{},
		consumers: map[string]*entity.Consumer{},
		batches:   map[string]*entity.Batch{},
		lines:     map[string]*entity.StockLine{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.consumers {
		cp := *v
		c.consumers[k] = &cp
	}
	for k, v := range s.batches {
		cp := *v
		c.batches[k] = &cp
	}
	for k, v := range s.lines {
		cp := *v
		c.lines[k] = &cp
	}
	for _, v := range s.sales {
		cp := *v
		c.sales = append(c.sales, &cp)
	}
	return c
}

// sumLines suma quantity_left de las líneas de un lote.
func (s *memState) sumLines(batchID string) int64 {
	var total int64
	for _, l := range s.lines {
		if l.BatchID == batchID {
			total += l.QuantityLeft
		}
	}
	return total
}

type fakeProductRepo struct{ s *memState }

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.s.products[id], nil
}
func (f *fakeProductRepo) GetByUniqueKeys(string, string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error             { return nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Filter(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(string) error { return nil }

type fakeConsumerRepo struct{ s *memState }

func (f *fakeConsumerRepo) Create(*entity.Consumer) error { return nil }
func (f *fakeConsumerRepo) GetByID(id string) (*entity.Consumer, error) {
	return f.s.consumers[id], nil
}
func (f *fakeConsumerRepo) Update(*entity.Consumer) error             { return nil }
func (f *fakeConsumerRepo) List(int, int) ([]*entity.Consumer, error) { return nil, nil }
func (f *fakeConsumerRepo) Delete(string) error                       { return nil }

type fakeStockRepo struct{ s *memState }

func (f *fakeStockRepo) Create(line *entity.StockLine) error {
	f.s.lines[line.ID] = line
	return nil
}
func (f *fakeStockRepo) GetByID(id string) (*entity.StockLine, error) { return f.s.lines[id], nil }
func (f *fakeStockRepo) GetByIDForUpdate(id string) (*entity.StockLine, error) {
	return f.s.lines[id], nil
}
func (f *fakeStockRepo) GetByBatchAndPallet(batchID, palletID string) (*entity.StockLine, error) {
	for _, l := range f.s.lines {
		if l.BatchID == batchID && l.PalletID == palletID {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakeStockRepo) GetByBatchAndPalletForUpdate(batchID, palletID string) (*entity.StockLine, error) {
	return f.GetByBatchAndPallet(batchID, palletID)
}
func (f *fakeStockRepo) Update(line *entity.StockLine) error {
	f.s.lines[line.ID] = line
	return nil
}
func (f *fakeStockRepo) List(int, int) ([]*entity.StockLine, error)           { return nil, nil }
func (f *fakeStockRepo) ListByBatchIDs([]string) ([]*entity.StockLine, error) { return nil, nil }
func (f *fakeStockRepo) SumByProduct(string) (int64, error)                   { return 0, nil }
func (f *fakeStockRepo) ListForAllocationForUpdate(productID string) ([]allocation.Line, error) {
	var out []allocation.Line
	for _, l := range f.s.lines {
		if l.QuantityLeft <= 0 {
			continue
		}
		b := f.s.batches[l.BatchID]
		if b == nil || b.ProductID != productID {
			continue
		}
		out = append(out, allocation.Line{
			LineID:       l.ID,
			BatchID:      b.ID,
			BatchNo:      b.BatchNo,
			PalletID:     l.PalletID,
			QuantityLeft: l.QuantityLeft,
			StoredOn:     l.StoredOn.UnixNano(),
			ExpiryUnix:   b.ExpiryDate.Unix(),
		})
	}
	// Orden estable por id, igual que el SELECT ... FOR UPDATE real.
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}
func (f *fakeStockRepo) ExistsForBatch(string) (bool, error) { return false, nil }
func (f *fakeStockRepo) Delete(id string) error {
	delete(f.s.lines, id)
	return nil
}

type fakeBatchRepo struct{ s *memState }

func (f *fakeBatchRepo) Create(b *entity.Batch) error { f.s.batches[b.ID] = b; return nil }
func (f *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	return f.s.batches[id], nil
}
func (f *fakeBatchRepo) GetByBatchNo(string) (*entity.Batch, error)    { return nil, nil }
func (f *fakeBatchRepo) Update(*entity.Batch) error                    { return nil }
func (f *fakeBatchRepo) List(int, int) ([]*entity.Batch, error)        { return nil, nil }
func (f *fakeBatchRepo) ListByProduct(string) ([]*entity.Batch, error) { return nil, nil }
func (f *fakeBatchRepo) AddQuantity(batchID string, delta int64) error {
	b, ok := f.s.batches[batchID]
	if !ok || b.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}
func (f *fakeBatchRepo) ExistsForProduct(string) (bool, error) { return false, nil }
func (f *fakeBatchRepo) Delete(string) error                   { return nil }

type fakeSaleRepo struct{ s *memState }

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	f.s.sales = append(f.s.sales, sale)
	return nil
}
func (f *fakeSaleRepo) GetByID(string) (*entity.Sale, error)  { return nil, nil }
func (f *fakeSaleRepo) List(int, int) ([]*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) Update(*entity.Sale) error             { return nil }
func (f *fakeSaleRepo) ExistsForProduct(string) (bool, error) { return false, nil }

// fakeTxRunner ejecuta fn sobre un clon del estado y publica el clon solo si
// fn termina sin error (commit); en error el estado original queda intacto.
type fakeTxRunner struct{ s *memState }

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockLineRepository,
	batchRepo repository.BatchRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx := f.s.clone()
	if err := fn(&fakeStockRepo{s: tx}, &fakeBatchRepo{s: tx}, &fakeSaleRepo{s: tx}); err != nil {
		return err
	}
	*f.s = *tx
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un producto con dos lotes repartidos en tres líneas.
//
//	lote A (vence 2025-06-01): línea a1=10 (almacenada día 1), línea a2=5 (día 3)
//	lote B (vence 2025-03-01): línea b1=20 (día 2)
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID  = "11111111-1111-1111-1111-111111111111"
	consumerID = "22222222-2222-2222-2222-222222222222"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func seedState() *memState {
	s := newMemState()
	s.products[productID] = &entity.Product{ID: productID, Name: "Café 500g", Status: true}
	s.consumers[consumerID] = &entity.Consumer{ID: consumerID, Name: "Mercado La 14"}
	s.batches["batch-a"] = &entity.Batch{
		ID: "batch-a", BatchNo: "LOT-A", ProductID: productID,
		ExpiryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 15, Status: true,
	}
	s.batches["batch-b"] = &entity.Batch{
		ID: "batch-b", BatchNo: "LOT-B", ProductID: productID,
		ExpiryDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Quantity: 20, Status: true,
	}
	s.lines["a1"] = &entity.StockLine{ID: "a1", BatchID: "batch-a", PalletID: "p1", QuantityLeft: 10, StoredOn: day(1)}
	s.lines["a2"] = &entity.StockLine{ID: "a2", BatchID: "batch-a", PalletID: "p2", QuantityLeft: 5, StoredOn: day(3)}
	s.lines["b1"] = &entity.StockLine{ID: "b1", BatchID: "batch-b", PalletID: "p3", QuantityLeft: 20, StoredOn: day(2)}
	return s
}

func newAllocator(s *memState) *sales.AllocateUseCase {
	return sales.NewAllocateUseCase(&fakeTxRunner{s: s}, &fakeProductRepo{s: s}, &fakeConsumerRepo{s: s})
}

func saleItem(qty int64, fifo bool) dto.SaleItemRequest {
	return dto.SaleItemRequest{
		ProductID:    productID,
		ConsumerID:   consumerID,
		QuantitySold: qty,
		SalePrice:    decimal.NewFromFloat(12_500),
		FIFO:         fifo,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// FIFO: descuenta de la línea más antigua (a1, día 1) y mantiene el invariante
// Batch.Quantity == suma de sus líneas.
func TestAllocate_FIFO_DescuentaLineaMasAntigua(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	out, err := uc.Allocate(context.Background(), saleItem(4, true))
	require.NoError(t, err)
	require.Len(t, out, 1, "una sola línea alcanza: una sola venta")

	assert.Equal(t, "batch-a", out[0].BatchID)
	assert.Equal(t, int64(4), out[0].QuantitySold)
	assert.Equal(t, int64(6), s.lines["a1"].QuantityLeft)

	assert.Equal(t, s.batches["batch-a"].Quantity, s.sumLines("batch-a"),
		"el lote debe seguir cuadrando con sus líneas")
	assert.Equal(t, int64(11), s.batches["batch-a"].Quantity)
}

// FEFO: el lote B vence primero, así que absorbe el descuento aunque su línea
// se haya almacenado después que a1.
func TestAllocate_FEFO_DescuentaLoteQueVencePrimero(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	out, err := uc.Allocate(context.Background(), saleItem(4, false))
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "batch-b", out[0].BatchID)
	assert.Equal(t, int64(16), s.lines["b1"].QuantityLeft)
	assert.Equal(t, int64(16), s.batches["batch-b"].Quantity)
	assert.Equal(t, int64(15), s.batches["batch-a"].Quantity, "el lote A no se toca")
}

// Una venta que cruza varias líneas genera una fila Sale por línea tocada,
// elimina del libro las líneas agotadas y la suma vendida es lo solicitado.
func TestAllocate_VentaCruzaVariasLineas(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	// FIFO: a1 (10, día 1) + b1 (20, día 2) => 10 + 2
	out, err := uc.Allocate(context.Background(), saleItem(12, true))
	require.NoError(t, err)
	require.Len(t, out, 2)

	var sold int64
	for _, r := range out {
		sold += r.QuantitySold
	}
	assert.Equal(t, int64(12), sold)

	_, stillThere := s.lines["a1"]
	assert.False(t, stillThere, "la línea agotada debe eliminarse del libro")
	assert.Equal(t, int64(18), s.lines["b1"].QuantityLeft)

	assert.Equal(t, s.batches["batch-a"].Quantity, s.sumLines("batch-a"))
	assert.Equal(t, s.batches["batch-b"].Quantity, s.sumLines("batch-b"))
}

// Stock insuficiente: error tipado y cero efectos secundarios.
func TestAllocate_StockInsuficiente_SinEfectos(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	_, err := uc.Allocate(context.Background(), saleItem(36, true)) // hay 35
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Len(t, s.sales, 0)
	assert.Equal(t, int64(10), s.lines["a1"].QuantityLeft)
	assert.Equal(t, int64(15), s.batches["batch-a"].Quantity)
	assert.Equal(t, int64(20), s.batches["batch-b"].Quantity)
}

// Bulk: si el segundo ítem no alcanza, el primero tampoco se persiste.
func TestAllocateBulk_TodoONada(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	_, err := uc.AllocateBulk(context.Background(), dto.BulkSaleRequest{
		Sales: []dto.SaleItemRequest{
			saleItem(5, true),
			saleItem(31, true), // tras el primero quedarían 30
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Len(t, s.sales, 0, "ninguna venta del lote debe persistirse")
	assert.Equal(t, int64(10), s.lines["a1"].QuantityLeft,
		"el descuento del primer ítem debe revertirse")
}

// Bulk exitoso con varios ítems en una misma transacción.
func TestAllocateBulk_VariosItemsExitosos(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	out, err := uc.AllocateBulk(context.Background(), dto.BulkSaleRequest{
		Sales: []dto.SaleItemRequest{
			saleItem(10, true), // agota a1
			saleItem(5, true),  // sigue con b1 (día 2)
		},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Len(t, s.sales, 2)
	assert.Equal(t, int64(15), s.lines["b1"].QuantityLeft)
	assert.Equal(t, s.batches["batch-b"].Quantity, s.sumLines("batch-b"))
}

func TestAllocate_ReferenciasInvalidas(t *testing.T) {
	s := seedState()
	uc := newAllocator(s)

	// Producto inexistente
	item := saleItem(1, true)
	item.ProductID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.Allocate(context.Background(), item)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Producto deshabilitado
	s.products[productID].Status = false
	_, err = uc.Allocate(context.Background(), saleItem(1, true))
	assert.ErrorIs(t, err, domain.ErrConflict)
	s.products[productID].Status = true

	// Consumidor inexistente
	item = saleItem(1, true)
	item.ConsumerID = "99999999-9999-9999-9999-999999999999"
	_, err = uc.Allocate(context.Background(), item)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cantidad inválida y lote vacío
	_, err = uc.Allocate(context.Background(), saleItem(0, true))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AllocateBulk(context.Background(), dto.BulkSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
