package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/services/auth"
	"sweetcrumb-bakery-api/utils"
)

type AuthHandler struct {
	jwtService *auth.JWTService
}

func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{jwtService: jwtService}
}

// Login autentica o usuário e retorna os tokens JWT
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	response, err := h.jwtService.Authenticate(strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			log.Printf("Failed login attempt for %s from %s", req.Email, r.RemoteAddr)
			utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Error authenticating %s: %v", req.Email, err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	log.Printf("User %s logged in", response.User.Email)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RefreshToken renova o par de tokens
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.RefreshToken == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	response, err := h.jwtService.RefreshToken(req.RefreshToken)
	if err != nil {
		log.Printf("Refresh token rejected from %s: %v", r.RemoteAddr, err)
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ValidateToken confirma que o access token enviado ainda é válido
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Missing or malformed authorization header")
		return
	}

	user, err := h.jwtService.ValidateToken(parts[1])
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.TokenValidationResponse{Valid: false})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.TokenValidationResponse{
		Valid: true,
		User:  *user,
	})
}
