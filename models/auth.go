package models

import "time"

// AuthRequest representa uma requisição de autenticação
type AuthRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest representa uma requisição de renovação de token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthUser representa um usuário autenticado
type AuthUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// AuthResponse representa a resposta de autenticação
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         AuthUser  `json:"user"`
}

// TokenValidationResponse representa a resposta de validação de token
type TokenValidationResponse struct {
	Valid bool     `json:"valid"`
	User  AuthUser `json:"user"`
}
