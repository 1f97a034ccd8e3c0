package repository

import (
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas. Valores cero = sin filtro.
// To es inclusivo hasta fin de día (lo resuelve el use case).
type InvoiceFilter struct {
	CustomerID string
	From       time.Time
	To         time.Time
}

// InvoiceRepository define el puerto de persistencia para Invoice y detalles.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateDetail(detail *entity.InvoiceDetail) error
	GetByID(id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error)
	List(filter InvoiceFilter) ([]*entity.Invoice, error)
	// CountByCustomer cuenta facturas del cliente (guardia de borrado).
	CountByCustomer(customerID string) (int, error)
	// CountDetailsByProduct cuenta líneas que referencian el producto (guardia de borrado).
	CountDetailsByProduct(productID string) (int, error)
}
