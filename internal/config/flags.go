package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres or sqlite)
//	-redis redis address for rate counters
//	-c/-config json file path with configs
//	-log-level log level name
//	-firewall-disabled skip the request firewall
//	-replay-max-age replay guard window (e.g., "5m")
//	-token-sign-key operator token signing key
//	-token-issuer operator token issuer name
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-webhook-path webhook ingress route
//	-max-attempts outbound call attempts
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("integration-hub", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var redisAddress string
	var jsonConfigPath string
	var logLevel string
	var firewallDisabled bool
	var replayMaxAge time.Duration
	var tokenSignKey, tokenIssuer string
	var requestTimeout time.Duration
	var webhookPath string
	var maxAttempts int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.BoolVar(&firewallDisabled, "firewall-disabled", false, "Disable the request firewall")
	fs.DurationVar(&replayMaxAge, "replay-max-age", 0, "Replay guard window (e.g., 5m)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Operator token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Operator token issuer")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&webhookPath, "webhook-path", "", "Webhook ingress route")
	fs.IntVar(&maxAttempts, "max-attempts", 0, "Outbound call attempts")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel:         logLevel,
			FirewallDisabled: firewallDisabled,
			ReplayMaxAge:     replayMaxAge,
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Redis: Redis{
				Address: redisAddress,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			WebhookPath:    webhookPath,
		},
		Transport: Transport{
			MaxAttempts: maxAttempts,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
