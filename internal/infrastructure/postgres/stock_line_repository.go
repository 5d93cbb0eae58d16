package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.StockLineRepository = (*StockLineRepo)(nil)

// StockLineRepo implementación del puerto StockLineRepository sobre PostgreSQL
// (usable con pool o tx). El motor de asignación siempre lo usa con tx.
type StockLineRepo struct {
	q Querier
}

// NewStockLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLineRepository(q Querier) *StockLineRepo {
	return &StockLineRepo{q: q}
}

// Create persiste una nueva línea de stock. El par (batch_id, pallet_id) es único.
func (r *StockLineRepo) Create(line *entity.StockLine) error {
	query := `
		INSERT INTO stock_lines (id, batch_id, pallet_id, quantity_left, stored_on)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.BatchID, line.PalletID, line.QuantityLeft, line.StoredOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de stock por ID.
func (r *StockLineRepo) GetByID(id string) (*entity.StockLine, error) {
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines WHERE id = $1`
	var l entity.StockLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.BatchID, &l.PalletID, &l.QuantityLeft, &l.StoredOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock line: %w", err)
	}
	return &l, nil
}

// GetByIDForUpdate obtiene una línea por ID bloqueando la fila dentro de la
// transacción actual.
func (r *StockLineRepo) GetByIDForUpdate(id string) (*entity.StockLine, error) {
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines WHERE id = $1 FOR UPDATE`
	var l entity.StockLine
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.BatchID, &l.PalletID, &l.QuantityLeft, &l.StoredOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock line for update: %w", err)
	}
	return &l, nil
}

// GetByBatchAndPallet obtiene la línea de un par lote+pallet.
func (r *StockLineRepo) GetByBatchAndPallet(batchID, palletID string) (*entity.StockLine, error) {
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines WHERE batch_id = $1 AND pallet_id = $2`
	var l entity.StockLine
	err := r.q.QueryRow(context.Background(), query, batchID, palletID).Scan(
		&l.ID, &l.BatchID, &l.PalletID, &l.QuantityLeft, &l.StoredOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock line by batch and pallet: %w", err)
	}
	return &l, nil
}

// GetByBatchAndPalletForUpdate igual que GetByBatchAndPallet pero bloqueando
// la fila. El putaway acumula sobre la línea existente con una escritura
// absoluta; sin el bloqueo, un descuento de venta concurrente quedaría pisado.
func (r *StockLineRepo) GetByBatchAndPalletForUpdate(batchID, palletID string) (*entity.StockLine, error) {
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines WHERE batch_id = $1 AND pallet_id = $2 FOR UPDATE`
	var l entity.StockLine
	err := r.q.QueryRow(context.Background(), query, batchID, palletID).Scan(
		&l.ID, &l.BatchID, &l.PalletID, &l.QuantityLeft, &l.StoredOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock line by batch and pallet for update: %w", err)
	}
	return &l, nil
}

// Update actualiza la cantidad de una línea. stored_on es inmutable.
func (r *StockLineRepo) Update(line *entity.StockLine) error {
	query := `UPDATE stock_lines SET quantity_left = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, line.ID, line.QuantityLeft)
	if err != nil {
		return fmt.Errorf("update stock line: %w", err)
	}
	return nil
}

// List lista líneas de stock con paginación.
func (r *StockLineRepo) List(limit, offset int) ([]*entity.StockLine, error) {
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines ORDER BY stored_on LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock lines: %w", err)
	}
	defer rows.Close()
	return collectStockLines(rows)
}

// ListByBatchIDs lista las líneas de un conjunto de lotes.
func (r *StockLineRepo) ListByBatchIDs(batchIDs []string) ([]*entity.StockLine, error) {
	if len(batchIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, batch_id, pallet_id, quantity_left, stored_on FROM stock_lines WHERE batch_id = ANY($1) ORDER BY stored_on`
	rows, err := r.q.Query(context.Background(), query, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("list stock lines by batches: %w", err)
	}
	defer rows.Close()
	return collectStockLines(rows)
}

func collectStockLines(rows pgx.Rows) ([]*entity.StockLine, error) {
	var list []*entity.StockLine
	for rows.Next() {
		var l entity.StockLine
		if err := rows.Scan(&l.ID, &l.BatchID, &l.PalletID, &l.QuantityLeft, &l.StoredOn); err != nil {
			return nil, fmt.Errorf("scan stock line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumByProduct suma el stock disponible de un producto a través de todos sus lotes.
func (r *StockLineRepo) SumByProduct(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(sl.quantity_left), 0)
		FROM stock_lines sl
		JOIN batches b ON b.id = sl.batch_id
		WHERE b.product_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// ListForAllocationForUpdate devuelve las líneas elegibles de un producto con
// los datos del lote que el ordenamiento FEFO necesita, bloqueándolas con
// SELECT ... FOR UPDATE. El orden por id es estable entre transacciones
// concurrentes para evitar deadlocks; el orden por política lo aplica el
// dominio después.
func (r *StockLineRepo) ListForAllocationForUpdate(productID string) ([]allocation.Line, error) {
	query := `
		SELECT sl.id, sl.batch_id, b.batch_no, sl.pallet_id, sl.quantity_left, sl.stored_on, b.expiry_date
		FROM stock_lines sl
		JOIN batches b ON b.id = sl.batch_id
		WHERE b.product_id = $1 AND sl.quantity_left > 0
		ORDER BY sl.id
		FOR UPDATE OF sl`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("lock stock lines for allocation: %w", err)
	}
	defer rows.Close()

	var lines []allocation.Line
	for rows.Next() {
		var (
			line     allocation.Line
			storedOn time.Time
			expiry   time.Time
		)
		if err := rows.Scan(&line.LineID, &line.BatchID, &line.BatchNo, &line.PalletID,
			&line.QuantityLeft, &storedOn, &expiry); err != nil {
			return nil, fmt.Errorf("scan allocation line: %w", err)
		}
		line.StoredOn = storedOn.UnixNano()
		line.ExpiryUnix = expiry.Unix()
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ExistsForBatch indica si el lote tiene líneas de stock vivas.
func (r *StockLineRepo) ExistsForBatch(batchID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_lines WHERE batch_id = $1)`, batchID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("stock line exists for batch: %w", err)
	}
	return exists, nil
}

// Delete elimina una línea de stock por ID.
func (r *StockLineRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock line: %w", err)
	}
	return nil
}
