package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStandard
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, standard
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
