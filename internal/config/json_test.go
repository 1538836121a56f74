package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"log_level": "error",
			"firewall_disabled": true,
			"replay_max_age": "1m",
			"max_body_bytes": 4096,
			"token_sign_key": "jwt_secret",
			"token_issuer": "hub",
			"service_cache_ttl": "20s",
			"version": "1.2.3"
		},
		"server": {
			"http_address": "localhost:8080",
			"request_timeout": "30s",
			"webhook_path": "/in",
			"trust_proxy_headers": true
		},
		"storage": {
			"db": { "driver": "sqlite", "dsn": "file:hub.db" },
			"redis": { "address": "localhost:6379", "password": "pw", "db": 1 }
		},
		"transport": {
			"default_timeout": "5s",
			"max_attempts": 4,
			"retry_backoff": "100ms",
			"wsdl_cache_ttl": "10m"
		},
		"workers": {
			"nonce_prune_interval": "15m",
			"nonce_retention": "12h"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.True(t, cfg.App.FirewallDisabled)
	assert.Equal(t, time.Minute, cfg.App.ReplayMaxAge)
	assert.Equal(t, int64(4096), cfg.App.MaxBodyBytes)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "hub", cfg.App.TokenIssuer)
	assert.Equal(t, 20*time.Second, cfg.App.ServiceCacheTTL)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "/in", cfg.Server.WebhookPath)
	assert.True(t, cfg.Server.TrustProxyHeaders)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:hub.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "pw", cfg.Storage.Redis.Password)
	assert.Equal(t, 1, cfg.Storage.Redis.DB)

	assert.Equal(t, 5*time.Second, cfg.Transport.DefaultTimeout)
	assert.Equal(t, 4, cfg.Transport.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Transport.RetryBackoff)
	assert.Equal(t, 10*time.Minute, cfg.Transport.WSDLCacheTTL)

	assert.Equal(t, 15*time.Minute, cfg.Workers.NoncePruneInterval)
	assert.Equal(t, 12*time.Hour, cfg.Workers.NonceRetention)

	// the JSON file never points to another JSON file
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	// Act
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"replay_max_age": "forever"}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server": {"request_timeout": 1000000000}}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	// Arrange
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()

	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
