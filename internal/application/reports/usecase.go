package reports

import (
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ReportUseCase agregados de ventas: vista derivada sobre las facturas
// persistidas, sin estado propio.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, invoiceRepo: invoiceRepo, customerRepo: customerRepo}
}

// SalesReport agrega todas las facturas de la ventana: conteo, suma de
// totales y el listado de cabeceras.
func (uc *ReportUseCase) SalesReport(in dto.ReportWindowRequest) (*dto.SalesReportResponse, error) {
	return uc.report("", in)
}

// CustomerReport agrega las facturas de un cliente en la ventana.
func (uc *ReportUseCase) CustomerReport(customerID string, in dto.ReportWindowRequest) (*dto.SalesReportResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.report(customerID, in)
}

func (uc *ReportUseCase) report(customerID string, in dto.ReportWindowRequest) (*dto.SalesReportResponse, error) {
	from, err := parseDay(in.From, false)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	to, err := parseDay(in.To, true)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	count, total, err := uc.reportRepo.SalesTotals(customerID, from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.List(repository.InvoiceFilter{
		CustomerID: customerID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SalesReportResponse{
		From:         in.From,
		To:           in.To,
		CustomerID:   customerID,
		InvoiceCount: count,
		Total:        total,
		Invoices:     make([]dto.InvoiceSummaryResponse, 0, len(list)),
	}
	for _, inv := range list {
		resp.Invoices = append(resp.Invoices, toSummary(inv))
	}
	return resp, nil
}

// Counts devuelve el conteo de filas por tabla transaccional.
func (uc *ReportUseCase) Counts() (*dto.CountsResponse, error) {
	s, err := uc.reportRepo.Counts()
	if err != nil {
		return nil, err
	}
	return &dto.CountsResponse{
		Customers:      s.Customers,
		Products:       s.Products,
		Invoices:       s.Invoices,
		InvoiceDetails: s.InvoiceDetails,
	}, nil
}

// parseDay interpreta YYYY-MM-DD; endOfDay hace el límite superior inclusivo.
func parseDay(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func toSummary(inv *entity.Invoice) dto.InvoiceSummaryResponse {
	return dto.InvoiceSummaryResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Number:     inv.Number,
		Date:       inv.Date.Format("2006-01-02"),
		Total:      inv.Total,
	}
}
