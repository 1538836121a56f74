package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errInvalidAMQPURL = errors.New("invalid AMQP connection string")

// amqpTarget is a parsed AMQP connection string. The query parameters
// exchange, routing_key and queue_declare select where messages go; they are
// not part of the broker address.
type amqpTarget struct {
	URI          amqp.URI
	Exchange     string
	RoutingKey   string
	QueueDeclare string
}

// parseAMQPTarget parses
//
//	amqp[s]://user:pass@host:port/vhost?exchange=&routing_key=&queue_declare=
//
// Missing credentials default to guest/guest, the port to 5672 (5671 for
// amqps) and the vhost to "/".
func parseAMQPTarget(raw string) (amqpTarget, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return amqpTarget{}, fmt.Errorf("%w: %s", errInvalidAMQPURL, raw)
	}
	if u.Hostname() == "" {
		return amqpTarget{}, fmt.Errorf("%w: %s", errInvalidAMQPURL, raw)
	}

	uri := amqp.URI{
		Scheme:   "amqp",
		Host:     u.Hostname(),
		Port:     5672,
		Username: "guest",
		Password: "guest",
		Vhost:    "/",
	}
	switch strings.ToLower(u.Scheme) {
	case "", "amqp":
	case "amqps":
		uri.Scheme = "amqps"
		uri.Port = 5671
	default:
		return amqpTarget{}, fmt.Errorf("%w: unsupported scheme %q", errInvalidAMQPURL, u.Scheme)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return amqpTarget{}, fmt.Errorf("%w: bad port %q", errInvalidAMQPURL, p)
		}
		uri.Port = port
	}
	if u.User != nil {
		uri.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			uri.Password = pass
		}
	}
	if path := u.Path; path != "" && path != "/" {
		uri.Vhost = strings.TrimPrefix(path, "/")
	}

	query := u.Query()
	return amqpTarget{
		URI:          uri,
		Exchange:     query.Get("exchange"),
		RoutingKey:   query.Get("routing_key"),
		QueueDeclare: query.Get("queue_declare"),
	}, nil
}

// routingKey picks the key a message is published with: the call endpoint,
// then the configured routing_key, then the declared queue when no exchange
// is set (direct-to-queue on the default exchange).
func (t amqpTarget) routingKey(endpoint string) string {
	key := strings.TrimLeft(endpoint, "/")
	if key == "" {
		key = t.RoutingKey
	}
	if key == "" && t.Exchange == "" && t.QueueDeclare != "" {
		key = t.QueueDeclare
	}
	return key
}

// describe renders the publish target for the success response.
func (t amqpTarget) describe(routingKey string) string {
	if t.Exchange == "" {
		return "DefEx -> RK:" + routingKey
	}
	return "Ex:" + t.Exchange + " -> RK:" + routingKey
}
