package dto

import "github.com/shopspring/decimal"

// ReportWindowRequest ventana de fechas para reportes (YYYY-MM-DD, ambos opcionales).
type ReportWindowRequest struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// SalesReportResponse agregado de ventas del período.
type SalesReportResponse struct {
	From         string                   `json:"from,omitempty"`
	To           string                   `json:"to,omitempty"`
	CustomerID   string                   `json:"customer_id,omitempty"`
	InvoiceCount int                      `json:"invoice_count"`
	Total        decimal.Decimal          `json:"total"`
	Invoices     []InvoiceSummaryResponse `json:"invoices"`
}

// CountsResponse conteo de filas por tabla transaccional.
type CountsResponse struct {
	Customers      int `json:"customers"`
	Products       int `json:"products"`
	Invoices       int `json:"invoices"`
	InvoiceDetails int `json:"invoice_details"`
}
