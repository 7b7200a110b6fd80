package auth

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/models"
)

const (
	AccessTokenDuration  = 15 * time.Minute  // Token de acesso expira em 15 minutos
	RefreshTokenDuration = 7 * 24 * time.Hour // Refresh token expira em 7 dias
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

type JWTService struct {
	secretKey []byte
	issuer    string
	db        *database.Connection
}

type Claims struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

func NewJWTService(secretKey, issuer string, db *database.Connection) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		db:        db,
	}
}

// Authenticate valida as credenciais e emite os tokens
func (j *JWTService) Authenticate(email, password string) (*models.AuthResponse, error) {
	// Hash da senha usando SHA256 (compatível com o sistema legado)
	hasher := sha256.New()
	hasher.Write([]byte(password))
	hashedPassword := hex.EncodeToString(hasher.Sum(nil))

	name, storedPassphrase, isAdmin, err := j.db.GetUserForAuth(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %v", err)
	}

	if storedPassphrase != hashedPassword {
		return nil, ErrInvalidCredentials
	}

	authUser := models.AuthUser{
		Email:   email,
		Name:    name,
		IsAdmin: isAdmin,
	}

	accessToken, err := j.GenerateToken(authUser, "access", AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %v", err)
	}

	refreshToken, err := j.GenerateToken(authUser, "refresh", RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %v", err)
	}

	return &models.AuthResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(AccessTokenDuration),
		User:         authUser,
	}, nil
}

// GenerateToken gera um token JWT
func (j *JWTService) GenerateToken(user models.AuthUser, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateToken valida um token JWT e retorna as informações do usuário
func (j *JWTService) ValidateToken(tokenString string) (*models.AuthUser, error) {
	claims, err := j.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	// Verificar se é um access token
	if claims.TokenType != "access" {
		return nil, ErrInvalidToken
	}

	return &models.AuthUser{
		Email:   claims.Email,
		Name:    claims.Name,
		IsAdmin: claims.IsAdmin,
	}, nil
}

// RefreshToken renova o par de tokens a partir de um refresh token válido
func (j *JWTService) RefreshToken(refreshTokenString string) (*models.AuthResponse, error) {
	claims, err := j.parseClaims(refreshTokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verificar se o usuário ainda existe e buscar o is_admin atual
	name, _, isAdmin, err := j.db.GetUserForAuth(claims.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user := models.AuthUser{
		Email:   claims.Email,
		Name:    name,
		IsAdmin: isAdmin,
	}

	accessToken, err := j.GenerateToken(user, "access", AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating new access token: %v", err)
	}

	newRefreshToken, err := j.GenerateToken(user, "refresh", RefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating new refresh token: %v", err)
	}

	return &models.AuthResponse{
		Token:        accessToken,
		RefreshToken: newRefreshToken,
		ExpiresAt:    time.Now().Add(AccessTokenDuration),
		User:         user,
	}, nil
}

func (j *JWTService) parseClaims(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
