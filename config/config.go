package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"sweetcrumb-bakery-api/database"
	"sweetcrumb-bakery-api/services/email"
)

type Config struct {
	Database database.DatabaseConfig
	SMTP     email.SMTPConfig
	Server   ServerConfig
	Redis    RedisConfig
	Session  SessionConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	URL               string
	WorkerConcurrency int
}

type SessionConfig struct {
	Secret string
	Domain string
	MaxAge int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Default worker concurrency
	workerConcurrency := 2
	if v := os.Getenv("WORKER_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			workerConcurrency = n
		}
	}

	sessionMaxAge := 86400 * 7
	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sessionMaxAge = n
		}
	}

	cfg := &Config{
		Database: database.DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		SMTP: email.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		Server: ServerConfig{
			Port: os.Getenv("SERVER_PORT"),
		},
		Redis: RedisConfig{
			URL:               os.Getenv("REDIS_URL"),
			WorkerConcurrency: workerConcurrency,
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			Domain: os.Getenv("SESSION_DOMAIN"),
			MaxAge: sessionMaxAge,
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: os.Getenv("JWT_ISSUER"),
		},
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	if cfg.Redis.URL == "" {
		cfg.Redis.URL = "redis://localhost:6379/0"
		log.Printf("Warning: REDIS_URL not set, using default: %s", cfg.Redis.URL)
	}

	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "sweetcrumb-bakery-api"
	}

	return cfg
}
