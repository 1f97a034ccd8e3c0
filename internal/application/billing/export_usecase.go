package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/xmlexport"
)

// ExportUseCase genera representaciones descargables de una factura emitida
// (PDF y XML). Solo lectura.
type ExportUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	pdfGenerator InvoicePDFGenerator
	xmlBuilder   *xmlexport.BuilderService
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	pdfGenerator InvoicePDFGenerator,
	xmlBuilder *xmlexport.BuilderService,
) *ExportUseCase {
	return &ExportUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		pdfGenerator: pdfGenerator,
		xmlBuilder:   xmlBuilder,
	}
}

// InvoicePDF genera el PDF de la factura.
func (uc *ExportUseCase) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	inv, customer, details, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateInvoicePDF(ctx, inv, customer, details)
}

// InvoiceXML genera el XML de la factura.
func (uc *ExportUseCase) InvoiceXML(ctx context.Context, id string) ([]byte, error) {
	inv, customer, details, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	lines := make([]xmlexport.InvoiceLine, 0, len(details))
	for _, d := range details {
		lines = append(lines, xmlexport.InvoiceLine{
			ProductID:   d.Detail.ProductID,
			ProductName: d.ProductName,
			Quantity:    d.Detail.Quantity,
			UnitPrice:   d.Detail.UnitPrice,
			Subtotal:    d.Detail.Subtotal,
		})
	}
	return uc.xmlBuilder.Build(&xmlexport.InvoiceContext{
		Invoice:  inv,
		Customer: customer,
		Lines:    lines,
	})
}

// load resuelve factura, cliente y detalles con nombre de producto.
func (uc *ExportUseCase) load(id string) (*entity.Invoice, *entity.Customer, []InvoiceDetailForPDF, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if inv == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(inv.CustomerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if customer == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	out := make([]InvoiceDetailForPDF, 0, len(details))
	for _, d := range details {
		name := d.ProductID
		if p, _ := uc.productRepo.GetByID(d.ProductID); p != nil {
			name = p.Name
		}
		out = append(out, InvoiceDetailForPDF{Detail: d, ProductName: name})
	}
	return inv, customer, out, nil
}
