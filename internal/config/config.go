// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// defaultSecret is the placeholder shipped in .env.example. It is accepted
// in development and rejected in production.
const defaultSecret = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"folio"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"folio"`

	// Valkey (Redis-compatible cache + session store)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// S3-compatible object storage for uploaded images
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"uploads"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Email relay. A missing key is not a boot error: the relay endpoint
	// answers 500 per request instead.
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL"`
	MailFrom      string `env:"MAIL_FROM" envDefault:"My Digital Universe <onboarding@resend.dev>"`
	MailTo        string `env:"MAIL_TO" envDefault:"owner@folio.local"`

	// ContactRelayURL, when set, makes the contact form notify the owner by
	// POSTing to an external relay instead of calling the provider in-process.
	ContactRelayURL string `env:"CONTACT_RELAY_URL"`

	// Site owner account, created on first boot.
	OwnerEmail    string `env:"OWNER_EMAIL" envDefault:"owner@folio.local"`
	OwnerPassword string `env:"OWNER_PASSWORD" envDefault:"changeme"`

	// TrustProxy honours X-Forwarded-For and X-Real-IP for the client
	// address. Enable it only when a reverse proxy sets those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// CORS origins allowed to call the JSON API.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads configuration from the environment (and a .env file when one
// exists), applying defaults for development. Returns an error if critical
// values are left at their defaults in production.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == defaultSecret {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.OwnerPassword == defaultSecret {
			return nil, errors.New("OWNER_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StorageEnabled reports whether S3 credentials are present.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// MailEnabled reports whether the email provider key is present.
func (c *Config) MailEnabled() bool {
	return c.ResendAPIKey != ""
}
