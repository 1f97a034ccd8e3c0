package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
// UnitPrice opcional: si va en cero se toma el precio actual del producto.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                  `json:"id"`
	CustomerID   string                  `json:"customer_id"`
	CustomerName string                  `json:"customer_name,omitempty"`
	Number       string                  `json:"number"`
	Date         string                  `json:"date"`
	Total        decimal.Decimal         `json:"total"`
	Details      []InvoiceDetailResponse `json:"details"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// InvoiceSummaryResponse cabecera en listados y reportes (sin detalle).
type InvoiceSummaryResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Number     string          `json:"number"`
	Date       string          `json:"date"`
	Total      decimal.Decimal `json:"total"`
}

// ListInvoicesRequest filtros del listado: cliente y ventana de fechas (YYYY-MM-DD).
type ListInvoicesRequest struct {
	CustomerID string `query:"customer_id"`
	From       string `query:"from"`
	To         string `query:"to"`
}
