// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_LOG_LEVEL":         "warn",
		"APP_FIREWALL_DISABLED": "true",
		"APP_REPLAY_MAX_AGE":    "2m",
		"APP_MAX_BODY_BYTES":    "2048",
		"APP_TOKEN_SIGN_KEY":    "jwt_secret",
		"APP_TOKEN_ISSUER":      "hub",
		"APP_SERVICE_CACHE_TTL": "15s",

		"SERVER_ADDRESS":             "localhost:8080",
		"SERVER_REQUEST_TIMEOUT":     "30s",
		"SERVER_WEBHOOK_PATH":        "/hooks",
		"SERVER_TRUST_PROXY_HEADERS": "true",

		// Storage has nested prefixes: STORAGE_ + DB_ / REDIS_
		"STORAGE_DB_DRIVER":       "sqlite",
		"STORAGE_DB_DATABASE_URI": "file:hub.db",
		"STORAGE_REDIS_ADDRESS":   "localhost:6379",
		"STORAGE_REDIS_PASSWORD":  "secret",
		"STORAGE_REDIS_DB":        "2",

		"TRANSPORT_DEFAULT_TIMEOUT": "10s",
		"TRANSPORT_MAX_ATTEMPTS":    "3",
		"TRANSPORT_RETRY_BACKOFF":   "250ms",
		"TRANSPORT_WSDL_CACHE_TTL":  "5m",

		"WORKERS_NONCE_PRUNE_INTERVAL": "10m",
		"WORKERS_NONCE_RETENTION":      "48h",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.True(t, cfg.App.FirewallDisabled)
	assert.Equal(t, 2*time.Minute, cfg.App.ReplayMaxAge)
	assert.Equal(t, int64(2048), cfg.App.MaxBodyBytes)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "hub", cfg.App.TokenIssuer)
	assert.Equal(t, 15*time.Second, cfg.App.ServiceCacheTTL)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/hooks", cfg.Server.WebhookPath)
	assert.True(t, cfg.Server.TrustProxyHeaders)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:hub.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "secret", cfg.Storage.Redis.Password)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)

	assert.Equal(t, 10*time.Second, cfg.Transport.DefaultTimeout)
	assert.Equal(t, 3, cfg.Transport.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Transport.RetryBackoff)
	assert.Equal(t, 5*time.Minute, cfg.Transport.WSDLCacheTTL)

	assert.Equal(t, 10*time.Minute, cfg.Workers.NoncePruneInterval)
	assert.Equal(t, 48*time.Hour, cfg.Workers.NonceRetention)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"SERVER_ADDRESS":     "localhost:8080",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Empty(t, cfg.App.TokenIssuer)
	assert.Zero(t, cfg.App.ReplayMaxAge)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "duration", key: "APP_REPLAY_MAX_AGE", val: "not-a-duration"},
		{name: "bool", key: "APP_FIREWALL_DISABLED", val: "maybe"},
		{name: "int", key: "TRANSPORT_MAX_ATTEMPTS", val: "three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{tt.key: tt.val})

			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "error getting env configs")
		})
	}
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
	}{
		{"seconds", "30s", 30 * time.Second},
		{"minutes", "5m", 5 * time.Minute},
		{"hours", "2h", 2 * time.Hour},
		{"mixed", "1h30m", 90 * time.Minute},
		{"milliseconds", "500ms", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": tt.value})

			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Server.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_LOG_LEVEL",
		"APP_FIREWALL_DISABLED",
		"APP_REPLAY_MAX_AGE",
		"APP_MAX_BODY_BYTES",
		"APP_TOKEN_SIGN_KEY",
		"APP_TOKEN_ISSUER",
		"APP_SERVICE_CACHE_TTL",
		"APP_VERSION",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_WEBHOOK_PATH",
		"SERVER_TRUST_PROXY_HEADERS",

		"STORAGE_DB_DRIVER",
		"STORAGE_DB_DATABASE_URI",
		"STORAGE_REDIS_ADDRESS",
		"STORAGE_REDIS_PASSWORD",
		"STORAGE_REDIS_DB",

		"TRANSPORT_DEFAULT_TIMEOUT",
		"TRANSPORT_MAX_ATTEMPTS",
		"TRANSPORT_RETRY_BACKOFF",
		"TRANSPORT_WSDL_CACHE_TTL",

		"WORKERS_NONCE_PRUNE_INTERVAL",
		"WORKERS_NONCE_RETENTION",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}

func TestGetAppConfig(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "jwt_secret")
	t.Setenv("APP_TOKEN_ISSUER", "hub")
	t.Setenv("STORAGE_DB_DATABASE_URI", "")

	app, err := GetAppConfig()

	require.NoError(t, err)
	assert.Equal(t, "jwt_secret", app.TokenSignKey)
	assert.Equal(t, "hub", app.TokenIssuer)
}

func TestGetAppConfig_MissingSignKey(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "")

	_, err := GetAppConfig()

	assert.ErrorIs(t, err, ErrMissingTokenSignKey)
}
