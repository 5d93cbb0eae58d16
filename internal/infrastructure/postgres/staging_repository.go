package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.StagingRepository = (*StagingRepo)(nil)

const stagingColumns = `id, product_id, warehouse_id, invoice_no, received_on, total_quantity, qc_status, qc_done_on, approved_quantity, rejected_quantity, put_away, created_at, updated_at`

// StagingRepo implementación del puerto StagingRepository sobre PostgreSQL (usable con pool o tx).
type StagingRepo struct {
	q Querier
}

// NewStagingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStagingRepository(q Querier) *StagingRepo {
	return &StagingRepo{q: q}
}

func scanStaging(row pgx.Row) (*entity.StagingEntry, error) {
	var e entity.StagingEntry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.WarehouseID, &e.InvoiceNo, &e.ReceivedOn, &e.TotalQuantity,
		&e.QCStatus, &e.QCDoneOn, &e.ApprovedQuantity, &e.RejectedQuantity, &e.PutAway,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una nueva entrada de staging.
func (r *StagingRepo) Create(entry *entity.StagingEntry) error {
	query := `
		INSERT INTO staging_entries (` + stagingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.WarehouseID, entry.InvoiceNo, entry.ReceivedOn,
		entry.TotalQuantity, entry.QCStatus, entry.QCDoneOn, entry.ApprovedQuantity,
		entry.RejectedQuantity, entry.PutAway, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert staging entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada de staging por ID.
func (r *StagingRepo) GetByID(id string) (*entity.StagingEntry, error) {
	query := `SELECT ` + stagingColumns + ` FROM staging_entries WHERE id = $1`
	e, err := scanStaging(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staging entry: %w", err)
	}
	return e, nil
}

// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE): el guard de estado
// terminal de recordQC y el putaway dependen de este lock.
func (r *StagingRepo) GetByIDForUpdate(id string) (*entity.StagingEntry, error) {
	query := `SELECT ` + stagingColumns + ` FROM staging_entries WHERE id = $1 FOR UPDATE`
	e, err := scanStaging(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock staging entry: %w", err)
	}
	return e, nil
}

// Update actualiza una entrada de staging.
func (r *StagingRepo) Update(entry *entity.StagingEntry) error {
	query := `
		UPDATE staging_entries SET qc_status = $2, qc_done_on = $3, approved_quantity = $4,
			rejected_quantity = $5, put_away = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.QCStatus, entry.QCDoneOn, entry.ApprovedQuantity,
		entry.RejectedQuantity, entry.PutAway, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update staging entry: %w", err)
	}
	return nil
}

// Filter lista entradas por filtros combinables (AND). La fecha exacta tiene
// precedencia sobre el rango.
func (r *StagingRepo) Filter(f repository.StagingFilter) ([]*entity.StagingEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}
	if f.QCStatus != "" {
		add("qc_status =", f.QCStatus)
	}
	if f.InvoiceNo != "" {
		add("invoice_no =", f.InvoiceNo)
	}
	if f.ProductID != "" {
		add("product_id =", f.ProductID)
	}
	if f.WarehouseID != "" {
		add("warehouse_id =", f.WarehouseID)
	}
	if f.ExactDate != nil {
		add("received_on::date =", *f.ExactDate)
	} else {
		if f.StartDate != nil {
			add("received_on::date >=", *f.StartDate)
		}
		if f.EndDate != nil {
			add("received_on::date <=", *f.EndDate)
		}
	}

	query := `SELECT ` + stagingColumns + ` FROM staging_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY received_on DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter staging entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StagingEntry
	for rows.Next() {
		e, err := scanStaging(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staging entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina una entrada de staging por ID.
func (r *StagingRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM staging_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete staging entry: %w", err)
	}
	return nil
}
