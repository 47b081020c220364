package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the eMall API.
type Config struct {
	Port             string // HTTP port (default: 5000)
	AppEnv           string // "production" or anything else for dev
	MongoURI         string // MongoDB connection string (required)
	MongoDB          string // Database name (default: emall)
	JWTSecret        string // JWT signing secret (required)
	RedisURL         string // Optional; caching is skipped when empty
	SMTPHost         string // Optional; restock mail is skipped when empty
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	DefaultFromEmail string // Fallback sender for restock mail
	FrontendURL      string // CORS origin (default: http://localhost:3000)
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             os.Getenv("PORT"),
		AppEnv:           os.Getenv("APP_ENV"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          os.Getenv("MONGO_DB"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisURL:         os.Getenv("REDIS_URL"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         os.Getenv("SMTP_PORT"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		DefaultFromEmail: os.Getenv("DEFAULT_FROM_EMAIL"),
		FrontendURL:      os.Getenv("FRONTEND_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "emall"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}
	if cfg.DefaultFromEmail == "" {
		cfg.DefaultFromEmail = cfg.SMTPUsername
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
