package dto

import "time"

// RegisterRequest entrada para crear un usuario (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"omitempty,oneof=admin standard"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT (el token es la sesión).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
