package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountsSummary conteo de filas por tabla transaccional.
// Lo produce la DB; el use case lo convierte en DTO.
type CountsSummary struct {
	Customers      int
	Products       int
	Invoices       int
	InvoiceDetails int
}

// ReportRepository consultas de solo lectura para reportes de ventas.
type ReportRepository interface {
	// SalesTotals devuelve cantidad de facturas y suma de totales en la ventana.
	// customerID vacío = todos los clientes; fechas cero = sin límite.
	SalesTotals(customerID string, from, to time.Time) (count int, total decimal.Decimal, err error)
	Counts() (*CountsSummary, error)
}
