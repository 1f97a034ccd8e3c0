package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// DecrementStock descuenta qty unidades de forma condicional: falla con
	// ErrInsufficientStock si el stock disponible es menor que qty.
	DecrementStock(id string, qty int) error
}
