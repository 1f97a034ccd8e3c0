package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de ventas.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// SalesTotals devuelve la cantidad de facturas y la suma de totales de la
// ventana. COALESCE devuelve cero si el período no tiene ventas.
func (r *ReportRepo) SalesTotals(customerID string, from, to time.Time) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM invoices WHERE 1=1`
	var args []any
	if customerID != "" {
		query += ` AND customer_id = ?`
		args = append(args, customerID)
	}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		query += ` AND date <= ?`
		args = append(args, to)
	}

	var count int
	var total decimal.Decimal
	err := r.db.QueryRowContext(context.Background(), query, args...).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return count, total, nil
}

// Counts devuelve el conteo de filas por tabla transaccional.
func (r *ReportRepo) Counts() (*repository.CountsSummary, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM invoice_details)`
	var s repository.CountsSummary
	err := r.db.QueryRowContext(context.Background(), query).Scan(
		&s.Customers, &s.Products, &s.Invoices, &s.InvoiceDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.Counts: %w", err)
	}
	return &s, nil
}
