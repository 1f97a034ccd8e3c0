package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock se descuenta al facturar (en la misma transacción que la factura).
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal // precio de venta, >= 0
	Stock     int             // unidades disponibles, >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
