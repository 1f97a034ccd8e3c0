package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con db o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar db o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, customer_id, number, date, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Number, invoice.Date, invoice.Total, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle.
func (r *InvoiceRepo) CreateDetail(detail *entity.InvoiceDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, quantity, unit_price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(context.Background(), query,
		detail.ID, detail.InvoiceID, detail.ProductID, detail.Quantity, detail.UnitPrice, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, customer_id, number, date, total, created_at
		FROM invoices WHERE id = ?`
	var inv entity.Invoice
	err := r.q.QueryRowContext(context.Background(), query, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.Number, &inv.Date, &inv.Total, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetDetailsByInvoiceID obtiene las líneas de una factura.
func (r *InvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, unit_price, subtotal
		FROM invoice_details WHERE invoice_id = ? ORDER BY id`
	rows, err := r.q.QueryContext(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List lista facturas según el filtro (cliente y/o ventana de fechas),
// ordenadas de la más reciente a la más antigua.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT id, customer_id, number, date, total, created_at
		FROM invoices WHERE 1=1`
	var args []any
	if filter.CustomerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, filter.CustomerID)
	}
	if !filter.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.To)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.q.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Number, &inv.Date, &inv.Total, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// CountByCustomer cuenta facturas del cliente.
func (r *InvoiceRepo) CountByCustomer(customerID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE customer_id = ?`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices by customer: %w", err)
	}
	return n, nil
}

// CountDetailsByProduct cuenta líneas de factura que referencian el producto.
func (r *InvoiceRepo) CountDetailsByProduct(productID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM invoice_details WHERE product_id = ?`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count details by product: %w", err)
	}
	return n, nil
}
