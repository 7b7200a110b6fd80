// middleware/rate_limit.go
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"sweetcrumb-bakery-api/models"
)

type RateLimiter struct {
	client *redis.Client
}

// RateLimitConfig representa a configuração de rate limiting
type RateLimitConfig struct {
	Requests int           // Número de requests permitidos
	Window   time.Duration // Janela de tempo
	Message  string        // Mensagem personalizada
}

// Configurações padrão para diferentes endpoints
var defaultConfigs = map[string]RateLimitConfig{
	"/api/auth/login": {
		Requests: 5,
		Window:   time.Minute * 15,
		Message:  "Too many login attempts. Please try again in 15 minutes.",
	},
	"/api/newsletter/subscribe": {
		Requests: 3,
		Window:   time.Minute * 10,
		Message:  "Too many subscription attempts. Please wait a few minutes.",
	},
	"/api/reviews": {
		Requests: 5,
		Window:   time.Minute * 10,
		Message:  "Too many reviews submitted. Please wait a few minutes.",
	},
	"/api/custom-requests": {
		Requests: 5,
		Window:   time.Minute * 10,
		Message:  "Too many custom cake requests. Please wait a few minutes.",
	},
	"/api/offers/validate": {
		Requests: 20,
		Window:   time.Minute * 5,
		Message:  "Too many promo code attempts. Please wait 5 minutes.",
	},
	"default": {
		Requests: 60,
		Window:   time.Minute,
		Message:  "Rate limit exceeded. Please slow down your requests.",
	},
}

// NewRateLimiter cria um novo rate limiter
func NewRateLimiter(redisURL string) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL for rate limiter: %v", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %v", err)
	}

	return &RateLimiter{client: client}, nil
}

// RateLimitMiddleware retorna middleware de rate limiting
func (rl *RateLimiter) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Rate limiting só nas escritas públicas; leituras de catálogo
			// são atendidas sem custo relevante
			if r.Method == http.MethodGet || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			config := rl.getConfigForEndpoint(r.URL.Path)
			key := rl.getRateLimitKey(r)

			allowed, remaining, resetTime, err := rl.checkRateLimit(r.Context(), key, config)
			if err != nil {
				log.Printf("Rate limit check error: %v", err)
				// Em caso de erro, permitir o request mas logar
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				log.Printf("Rate limit exceeded for key: %s, endpoint: %s", key, r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds()), 10))
				w.WriteHeader(http.StatusTooManyRequests)

				json.NewEncoder(w).Encode(models.APIResponse{
					Status:  "error",
					Message: config.Message,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getConfigForEndpoint retorna a configuração apropriada para o endpoint
func (rl *RateLimiter) getConfigForEndpoint(path string) RateLimitConfig {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	if config, exists := defaultConfigs[path]; exists {
		return config
	}

	if strings.HasPrefix(path, "/api/auth/") {
		return RateLimitConfig{
			Requests: 20,
			Window:   time.Minute * 5,
			Message:  "Too many authentication requests. Please wait 5 minutes.",
		}
	}

	if strings.HasPrefix(path, "/api/admin/") {
		return RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
			Message:  "Admin API rate limit exceeded.",
		}
	}

	return defaultConfigs["default"]
}

// getRateLimitKey gera chave única para rate limiting
func (rl *RateLimiter) getRateLimitKey(r *http.Request) string {
	ip := rl.getClientIP(r)
	endpoint := r.URL.Path

	if strings.HasPrefix(endpoint, "/api/auth/") {
		userAgentHash := fmt.Sprintf("%x", r.Header.Get("User-Agent"))
		if len(userAgentHash) > 8 {
			userAgentHash = userAgentHash[:8]
		}
		return fmt.Sprintf("rate_limit:auth:%s:%s", ip, userAgentHash)
	}

	return fmt.Sprintf("rate_limit:default:%s:%s", ip, endpoint)
}

// getClientIP extrai o IP real do cliente
func (rl *RateLimiter) getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" { // Cloudflare
		return ip
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// checkRateLimit verifica se o request está dentro do limite usando uma
// janela fixa por chave
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string, config RateLimitConfig) (allowed bool, remaining int, resetTime time.Time, err error) {
	now := time.Now()
	windowStart := now.Truncate(config.Window)
	windowEnd := windowStart.Add(config.Window)

	windowKey := fmt.Sprintf("%s:%d", key, windowStart.Unix())

	count, err := rl.client.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, 0, windowEnd, err
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, windowKey, config.Window).Err(); err != nil {
			log.Printf("Warning: failed to set expiry on rate limit key %s: %v", windowKey, err)
		}
	}

	remaining = config.Requests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return int(count) <= config.Requests, remaining, windowEnd, nil
}

// SecurityHeadersMiddleware adiciona headers de segurança
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}

		next.ServeHTTP(w, r)
	})
}

// Close fecha a conexão Redis
func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}
