package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ConsumerRepository = (*ConsumerRepo)(nil)

// ConsumerRepo implementación del puerto ConsumerRepository sobre PostgreSQL (usable con pool o tx).
type ConsumerRepo struct {
	q Querier
}

// NewConsumerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumerRepository(q Querier) *ConsumerRepo {
	return &ConsumerRepo{q: q}
}

// Create persiste un nuevo consumidor.
func (r *ConsumerRepo) Create(consumer *entity.Consumer) error {
	query := `
		INSERT INTO consumers (id, name, phone, email, address, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		consumer.ID, consumer.Name, consumer.Phone, consumer.Email, consumer.Address,
		consumer.Company, consumer.CreatedAt, consumer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumer: %w", err)
	}
	return nil
}

// GetByID obtiene un consumidor por ID.
func (r *ConsumerRepo) GetByID(id string) (*entity.Consumer, error) {
	query := `SELECT id, name, phone, email, address, company, created_at, updated_at FROM consumers WHERE id = $1`
	var c entity.Consumer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Company, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumer: %w", err)
	}
	return &c, nil
}

// Update actualiza un consumidor existente.
func (r *ConsumerRepo) Update(consumer *entity.Consumer) error {
	query := `UPDATE consumers SET name = $2, phone = $3, email = $4, address = $5, company = $6, updated_at = $7 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		consumer.ID, consumer.Name, consumer.Phone, consumer.Email, consumer.Address,
		consumer.Company, consumer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update consumer: %w", err)
	}
	return nil
}

// List lista consumidores con paginación.
func (r *ConsumerRepo) List(limit, offset int) ([]*entity.Consumer, error) {
	query := `SELECT id, name, phone, email, address, company, created_at, updated_at FROM consumers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consumers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumer
	for rows.Next() {
		var c entity.Consumer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan consumer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina un consumidor por ID.
func (r *ConsumerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM consumers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumer: %w", err)
	}
	return nil
}
