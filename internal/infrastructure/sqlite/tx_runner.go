package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.BillingTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunBilling inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback. Si fn retorna error nada queda persistido
// (atomicidad factura + detalles + descuento de stock).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	productRepo := NewProductRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(productRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
