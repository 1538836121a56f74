package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

// HTTPDriver calls REST services with a JSON body.
type HTTPDriver struct {
	client         *utils.HTTPClient
	defaultTimeout time.Duration
	logger         *logger.Logger
}

// NewHTTPDriver constructs an HTTP [Driver] on top of the shared resty
// client.
func NewHTTPDriver(client *utils.HTTPClient, opts ...Option) *HTTPDriver {
	o := newOptions(opts)
	if client == nil {
		client = utils.NewHTTPClient()
	}
	return &HTTPDriver{client: client, defaultTimeout: o.defaultTimeout, logger: o.log}
}

// Execute implements [Driver].
//
// GET and HEAD requests carry the payload as a query string and no body.
// Every other method sends the payload as JSON. A 2xx status is a success
// holding the response body; any other status is reported as "HTTP <code>".
func (d *HTTPDriver) Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, method string) models.TransportResult {
	start := time.Now()

	endpointURL := joinURL(service.BaseURL, endpoint)
	target := endpointURL
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodPost
	}

	ctx, cancel := context.WithTimeout(ctx, service.TimeoutDuration(d.defaultTimeout))
	defer cancel()

	req := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if token := service.AuthToken; token != "" {
		switch service.AuthType {
		case models.AuthBearer:
			req.SetAuthToken(token)
		case models.AuthAPIKey:
			req.SetHeader("X-API-Key", token)
		case models.AuthBasic:
			user, pass, _ := strings.Cut(token, ":")
			req.SetBasicAuth(user, pass)
		}
	}

	switch method {
	case http.MethodGet, http.MethodHead:
		if query := buildQuery(payload); query != "" {
			separator := "?"
			if strings.Contains(target, "?") {
				separator = "&"
			}
			target += separator + query
		}
	default:
		if len(payload) > 0 {
			req.SetBody(payload)
		}
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		// url.Error repeats the full target, query payload included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		d.logger.Err(err).
			Str("func", "HTTPDriver.Execute").
			Str("service", service.Slug).
			Str("method", method).
			Msg("http call failed")
		return models.ErrorResult(fmt.Sprintf("HTTP request to %s failed: %v", endpointURL, err), start, 1, 0)
	}

	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return models.SuccessResult(string(resp.Body()), start, 1, code)
	}

	return models.ErrorResult(fmt.Sprintf("HTTP %d", code), start, 1, code)
}
