package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación del puerto PriceRepository sobre PostgreSQL (usable
// con pool o tx). No hay Delete: el histórico de precios se preserva.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Create persiste un nuevo registro de precio.
func (r *PriceRepo) Create(price *entity.Price) error {
	query := `
		INSERT INTO prices (id, product_id, mrp, mwp, effective_from, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.ProductID, price.MRP, price.MWP, price.EffectiveFrom, price.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de precio por ID.
func (r *PriceRepo) GetByID(id string) (*entity.Price, error) {
	query := `SELECT id, product_id, mrp, mwp, effective_from, updated_at FROM prices WHERE id = $1`
	var p entity.Price
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.ProductID, &p.MRP, &p.MWP, &p.EffectiveFrom, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return &p, nil
}

// List lista registros de precio con paginación.
func (r *PriceRepo) List(limit, offset int) ([]*entity.Price, error) {
	query := `SELECT id, product_id, mrp, mwp, effective_from, updated_at FROM prices ORDER BY effective_from DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	return collectPrices(rows)
}

// ListByProduct lista el histórico de precios de un producto, más recientes primero.
func (r *PriceRepo) ListByProduct(productID string) ([]*entity.Price, error) {
	query := `SELECT id, product_id, mrp, mwp, effective_from, updated_at FROM prices WHERE product_id = $1 ORDER BY effective_from DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list prices by product: %w", err)
	}
	defer rows.Close()
	return collectPrices(rows)
}

func collectPrices(rows pgx.Rows) ([]*entity.Price, error) {
	var list []*entity.Price
	for rows.Next() {
		var p entity.Price
		if err := rows.Scan(&p.ID, &p.ProductID, &p.MRP, &p.MWP, &p.EffectiveFrom, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un registro de precio.
func (r *PriceRepo) Update(price *entity.Price) error {
	query := `UPDATE prices SET mrp = $2, mwp = $3, effective_from = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.MRP, price.MWP, price.EffectiveFrom, price.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}
