package dto

import "rooms-api/domain"

// RegisterRequest representa el request para registrar un usuario
// El rol es opcional: si no viene, es usuario común
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest representa el request para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa la respuesta del login
// Devuelve el token JWT firmado y los datos del usuario
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
