package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, prod_id, sku, upc, name, description, brand_id, category_id, subcategory_id, company_id, unit_of_measure, weight, expiry_in_months, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.ProdID, &p.SKU, &p.UPC, &p.Name, &p.Description, &p.BrandID,
		&p.CategoryID, &p.SubcategoryID, &p.CompanyID, &p.UnitOfMeasure,
		&p.Weight, &p.ExpiryInMonths, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ProdID, product.SKU, product.UPC, product.Name, product.Description,
		product.BrandID, product.CategoryID, product.SubcategoryID, product.CompanyID,
		product.UnitOfMeasure, product.Weight, product.ExpiryInMonths, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByUniqueKeys busca por cualquiera de las tres claves únicas (prod_id, sku, upc).
func (r *ProductRepo) GetByUniqueKeys(prodID, sku, upc string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE prod_id = $1 OR sku = $2 OR upc = $3 LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, prodID, sku, upc))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by unique keys: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. Las claves únicas no se tocan.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, brand_id = $4, category_id = $5,
			subcategory_id = $6, unit_of_measure = $7, weight = $8, expiry_in_months = $9,
			status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.BrandID, product.CategoryID,
		product.SubcategoryID, product.UnitOfMeasure, product.Weight, product.ExpiryInMonths,
		product.Status, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Filter busca productos por filtros combinables (AND); name es parcial, case-insensitive.
func (r *ProductRepo) Filter(f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}
	if f.ProdID != "" {
		add("prod_id =", f.ProdID)
	}
	if f.BrandID != "" {
		add("brand_id =", f.BrandID)
	}
	if f.Name != "" {
		add("name ILIKE", "%"+f.Name+"%")
	}
	if f.CategoryID != "" {
		add("category_id =", f.CategoryID)
	}
	if f.SubcategoryID != "" {
		add("subcategory_id =", f.SubcategoryID)
	}
	if f.SKU != "" {
		add("sku =", f.SKU)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
