package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar db o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, unit_price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(context.Background(), query,
		product.ID, product.Name, product.UnitPrice, product.Stock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at, updated_at
		FROM products WHERE id = ?`
	var p entity.Product
	err := r.q.QueryRowContext(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación, ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at, updated_at
		FROM products ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.q.QueryContext(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precio y stock del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = ?, unit_price = ?, stock = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(context.Background(), query,
		product.Name, product.UnitPrice, product.Stock, product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta stock de forma condicional en una sola sentencia:
// si el stock disponible es menor que qty no modifica nada y retorna
// ErrInsufficientStock. El caller valida antes que el producto exista.
func (r *ProductRepo) DecrementStock(id string, qty int) error {
	query := `
		UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?`
	res, err := r.q.ExecContext(context.Background(), query, qty, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
