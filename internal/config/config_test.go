// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv sets every variable Load reads to the empty string. caarlos0/env
// treats an empty value as unset, so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
		"RESEND_API_KEY", "RESEND_BASE_URL", "MAIL_FROM", "MAIL_TO",
		"CONTACT_RELAY_URL", "OWNER_EMAIL", "OWNER_PASSWORD", "CORS_ALLOWED_ORIGINS", "TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "folio", cfg.DBUser)
	assert.Equal(t, "uploads", cfg.S3Bucket)
	assert.Equal(t, "owner@folio.local", cfg.OwnerEmail)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.MailEnabled())
	assert.False(t, cfg.StorageEnabled())
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("S3_ENDPOINT", "https://s3.example")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.True(t, cfg.MailEnabled())
	assert.True(t, cfg.StorageEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_ProductionRejectsDefaultSecrets(t *testing.T) {
	t.Run("database password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("OWNER_PASSWORD", "s3cret-owner")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "POSTGRES_PASSWORD")
	})

	t.Run("owner password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("POSTGRES_PASSWORD", "s3cret-db")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OWNER_PASSWORD")
	})

	t.Run("both set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("POSTGRES_PASSWORD", "s3cret-db")
		t.Setenv("OWNER_PASSWORD", "s3cret-owner")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.IsDev())
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.DSN())
}
