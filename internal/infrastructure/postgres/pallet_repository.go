package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.PalletRepository = (*PalletRepo)(nil)

// PalletRepo implementación del puerto PalletRepository sobre PostgreSQL (usable con pool o tx).
type PalletRepo struct {
	q Querier
}

// NewPalletRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPalletRepository(q Querier) *PalletRepo {
	return &PalletRepo{q: q}
}

// Create persiste un nuevo pallet. El código físico es único.
func (r *PalletRepo) Create(pallet *entity.Pallet) error {
	query := `
		INSERT INTO pallets (id, code, dimensions, capacity, warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pallet.ID, pallet.Code, pallet.Dimensions, pallet.Capacity, pallet.WarehouseID,
		pallet.CreatedAt, pallet.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pallet: %w", err)
	}
	return nil
}

// GetByID obtiene un pallet por ID.
func (r *PalletRepo) GetByID(id string) (*entity.Pallet, error) {
	query := `SELECT id, code, dimensions, capacity, warehouse_id, created_at, updated_at FROM pallets WHERE id = $1`
	var p entity.Pallet
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.Dimensions, &p.Capacity, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet: %w", err)
	}
	return &p, nil
}

// GetByCode obtiene un pallet por su código físico.
func (r *PalletRepo) GetByCode(code string) (*entity.Pallet, error) {
	query := `SELECT id, code, dimensions, capacity, warehouse_id, created_at, updated_at FROM pallets WHERE code = $1`
	var p entity.Pallet
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&p.ID, &p.Code, &p.Dimensions, &p.Capacity, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pallet by code: %w", err)
	}
	return &p, nil
}

// Update actualiza un pallet existente. El código físico no se toca.
func (r *PalletRepo) Update(pallet *entity.Pallet) error {
	query := `UPDATE pallets SET dimensions = $2, capacity = $3, warehouse_id = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		pallet.ID, pallet.Dimensions, pallet.Capacity, pallet.WarehouseID, pallet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pallet: %w", err)
	}
	return nil
}

// ListByWarehouse lista pallets de un almacén con paginación.
func (r *PalletRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Pallet, error) {
	query := `SELECT id, code, dimensions, capacity, warehouse_id, created_at, updated_at FROM pallets WHERE warehouse_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pallets by warehouse: %w", err)
	}
	defer rows.Close()
	return collectPallets(rows)
}

// List lista pallets con paginación.
func (r *PalletRepo) List(limit, offset int) ([]*entity.Pallet, error) {
	query := `SELECT id, code, dimensions, capacity, warehouse_id, created_at, updated_at FROM pallets ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pallets: %w", err)
	}
	defer rows.Close()
	return collectPallets(rows)
}

func collectPallets(rows pgx.Rows) ([]*entity.Pallet, error) {
	var list []*entity.Pallet
	for rows.Next() {
		var p entity.Pallet
		if err := rows.Scan(&p.ID, &p.Code, &p.Dimensions, &p.Capacity, &p.WarehouseID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pallet: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un pallet por ID.
func (r *PalletRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pallet: %w", err)
	}
	return nil
}
