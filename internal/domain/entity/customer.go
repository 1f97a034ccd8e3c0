package entity

import "time"

// Customer representa un cliente (facturación).
type Customer struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
