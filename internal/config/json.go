package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the on-disk JSON layout.
type StructuredJSONConfig struct {
	App struct {
		LogLevel         string   `json:"log_level"`
		FirewallDisabled bool     `json:"firewall_disabled"`
		ReplayMaxAge     Duration `json:"replay_max_age"`
		MaxBodyBytes     int64    `json:"max_body_bytes"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		ServiceCacheTTL  Duration `json:"service_cache_ttl"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		WebhookPath       string   `json:"webhook_path"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Transport struct {
		DefaultTimeout Duration `json:"default_timeout"`
		MaxAttempts    int      `json:"max_attempts"`
		RetryBackoff   Duration `json:"retry_backoff"`
		WSDLCacheTTL   Duration `json:"wsdl_cache_ttl"`
	} `json:"transport,omitempty"`

	Workers struct {
		NoncePruneInterval Duration `json:"nonce_prune_interval"`
		NonceRetention     Duration `json:"nonce_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel:         jsonCfg.App.LogLevel,
			FirewallDisabled: jsonCfg.App.FirewallDisabled,
			ReplayMaxAge:     time.Duration(jsonCfg.App.ReplayMaxAge),
			MaxBodyBytes:     jsonCfg.App.MaxBodyBytes,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			ServiceCacheTTL:  time.Duration(jsonCfg.App.ServiceCacheTTL),
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			WebhookPath:       jsonCfg.Server.WebhookPath,
			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Transport: Transport{
			DefaultTimeout: time.Duration(jsonCfg.Transport.DefaultTimeout),
			MaxAttempts:    jsonCfg.Transport.MaxAttempts,
			RetryBackoff:   time.Duration(jsonCfg.Transport.RetryBackoff),
			WSDLCacheTTL:   time.Duration(jsonCfg.Transport.WSDLCacheTTL),
		},
		Workers: Workers{
			NoncePruneInterval: time.Duration(jsonCfg.Workers.NoncePruneInterval),
			NonceRetention:     time.Duration(jsonCfg.Workers.NonceRetention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
