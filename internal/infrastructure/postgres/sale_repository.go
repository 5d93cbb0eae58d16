package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, batch_id, pallet_id, product_id, consumer_id, quantity_sold, sale_price, sale_timestamp`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable
// con pool o tx). No hay Delete: las ventas son auditoría inmutable.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta. Solo la invoca el motor de asignación.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.BatchID, sale.PalletID, sale.ProductID, sale.ConsumerID,
		sale.QuantitySold, sale.SalePrice, sale.SaleTimestamp,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BatchID, &s.PalletID, &s.ProductID, &s.ConsumerID,
		&s.QuantitySold, &s.SalePrice, &s.SaleTimestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List lista ventas con paginación, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_timestamp DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.BatchID, &s.PalletID, &s.ProductID, &s.ConsumerID,
			&s.QuantitySold, &s.SalePrice, &s.SaleTimestamp); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update corrige consumer_id y sale_price; el resto del registro no se toca.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `UPDATE sales SET consumer_id = $2, sale_price = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, sale.ID, sale.ConsumerID, sale.SalePrice)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// ExistsForProduct indica si el producto tiene ventas registradas.
func (r *SaleRepo) ExistsForProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM sales WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("sale exists for product: %w", err)
	}
	return exists, nil
}
