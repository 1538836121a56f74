package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/models"
)

// AMQPChannel is the subset of *amqp.Channel used by [AMQPDriver].
type AMQPChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPConnection is the subset of *amqp.Connection used by [AMQPDriver].
type AMQPConnection interface {
	Channel() (AMQPChannel, error)
	Close() error
}

// AMQPDialer opens a broker connection.
type AMQPDialer func(ctx context.Context, uri amqp.URI, timeout time.Duration) (AMQPConnection, error)

// AMQPDriver publishes the payload as a persistent JSON message. A fresh
// connection is opened per call and closed afterwards; publisher confirms
// are not used, so success means the broker accepted the frame.
type AMQPDriver struct {
	dial           AMQPDialer
	defaultTimeout time.Duration
	logger         *logger.Logger
}

// NewAMQPDriver constructs an AMQP [Driver]. A nil dialer dials a real
// broker with amqp091-go.
func NewAMQPDriver(dial AMQPDialer, opts ...Option) *AMQPDriver {
	o := newOptions(opts)
	if dial == nil {
		dial = DialAMQP
	}
	return &AMQPDriver{dial: dial, defaultTimeout: o.defaultTimeout, logger: o.log}
}

// Execute implements [Driver]. method is ignored.
func (d *AMQPDriver) Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, _ string) models.TransportResult {
	start := time.Now()

	target, err := parseAMQPTarget(service.BaseURL)
	if err != nil {
		return d.fail(service, err, start)
	}

	timeout := service.TimeoutDuration(d.defaultTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := d.dial(ctx, target.URI, timeout)
	if err != nil {
		return d.fail(service, err, start)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return d.fail(service, err, start)
	}
	defer ch.Close()

	if target.QueueDeclare != "" {
		if _, err = ch.QueueDeclare(target.QueueDeclare, true, false, false, false, nil); err != nil {
			return d.fail(service, err, start)
		}
	}

	routingKey := target.routingKey(endpoint)

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return d.fail(service, err, start)
	}

	err = ch.PublishWithContext(ctx, target.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return d.fail(service, err, start)
	}

	return models.SuccessResult("Published to "+target.describe(routingKey), start, 1, 0)
}

func (d *AMQPDriver) fail(service models.ServiceConfig, err error, start time.Time) models.TransportResult {
	d.logger.Err(err).
		Str("func", "AMQPDriver.Execute").
		Str("service", service.Slug).
		Msg("amqp publish failed")
	return models.ErrorResult(fmt.Sprintf("AMQP Error: %v", err), start, 1, 0)
}

// DialAMQP connects to a broker with amqp091-go.
func DialAMQP(_ context.Context, uri amqp.URI, timeout time.Duration) (AMQPConnection, error) {
	conn, err := amqp.DialConfig(uri.String(), amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (AMQPChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}
