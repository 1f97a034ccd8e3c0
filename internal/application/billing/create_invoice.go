package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// CreateInvoiceUseCase crea una factura y descuenta el stock en una sola transacción.
// Las facturas son inmutables: no hay edición ni anulación posterior.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateInvoice valida cliente, productos y stock, consolida líneas repetidas,
// calcula subtotales y total, y persiste cabecera + detalles + descuento de
// stock de forma atómica. Si algo falla no queda nada persistido.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Consolidar cantidades por producto (líneas repetidas se suman)
	quantities := make(map[string]int)
	var order []string
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := quantities[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	// Validar productos y resolver precios (fuera de la tx, solo lectura).
	// Precio cero = tomar el precio vigente del producto.
	prices := make(map[string]decimal.Decimal)
	productsByID := make(map[string]*entity.Product)
	for _, item := range in.Items {
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, ok := productsByID[item.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			productsByID[item.ProductID] = product
			prices[item.ProductID] = product.UnitPrice
		}
		if !item.UnitPrice.IsZero() {
			prices[item.ProductID] = item.UnitPrice
		}
	}

	// Chequeo temprano de stock consolidado; el descuento condicional dentro
	// de la tx vuelve a verificar, así que esto solo mejora el mensaje.
	for pid, qty := range quantities {
		if productsByID[pid].Stock < qty {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Number:     fmt.Sprintf("F-%d", now.UnixNano()),
		Date:       now,
		CreatedAt:  now,
	}
	var details []*entity.InvoiceDetail

	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		total := decimal.Zero
		for _, pid := range order {
			qty := quantities[pid]
			// Descuento condicional: falla con ErrInsufficientStock y la tx
			// completa se revierte (atomicidad).
			if err := productRepo.DecrementStock(pid, qty); err != nil {
				return err
			}
			price := prices[pid]
			subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
			details = append(details, &entity.InvoiceDetail{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: pid,
				Quantity:  qty,
				UnitPrice: price,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)
		}
		inv.Total = total

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, customer.Name, details), nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, details), nil
}

// ListInvoices lista cabeceras según filtros de cliente y ventana de fechas
// (formato YYYY-MM-DD; "to" es inclusivo hasta fin de día).
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, in dto.ListInvoicesRequest) ([]dto.InvoiceSummaryResponse, error) {
	filter := repository.InvoiceFilter{CustomerID: in.CustomerID}

	var err error
	if filter.From, err = parseDay(in.From, false); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if filter.To, err = parseDay(in.To, true); err != nil {
		return nil, domain.ErrInvalidInput
	}

	list, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toSummary(inv))
	}
	return out, nil
}

// parseDay interpreta YYYY-MM-DD. endOfDay mueve el límite al último instante
// del día para que "to" sea inclusivo (igual que el listado original).
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

func (uc *CreateInvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		Number:       inv.Number,
		Date:         inv.Date.Format("2006-01-02"),
		Total:        inv.Total,
		Details:      make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
