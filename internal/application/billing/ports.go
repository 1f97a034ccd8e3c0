package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de productos y facturas (para CreateInvoice).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceDetailForPDF línea de detalle enriquecida con el nombre del producto
// (el PDF no debe consultar repos).
type InvoiceDetailForPDF struct {
	Detail      *entity.InvoiceDetail
	ProductName string
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		details []InvoiceDetailForPDF,
	) ([]byte, error)
}
