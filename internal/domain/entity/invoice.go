package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura.
// Inmutable una vez emitida: no hay flujo de edición ni anulación.
// Invariante: Total == suma de Subtotal de sus detalles.
type Invoice struct {
	ID         string
	CustomerID string
	Number     string // consecutivo legible, único
	Date       time.Time
	Total      decimal.Decimal
	CreatedAt  time.Time
}
