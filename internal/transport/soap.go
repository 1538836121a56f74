package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/integration-hub/internal/logger"
	"github.com/MKhiriev/integration-hub/internal/utils"
	"github.com/MKhiriev/integration-hub/models"
)

const (
	// DefaultWSDLCacheTTL is how long a parsed WSDL is reused.
	DefaultWSDLCacheTTL = time.Hour

	wsdlCacheSize = 128
)

// soapFault is an error reported by the remote service itself.
type soapFault struct {
	message string
}

func (f *soapFault) Error() string {
	return f.message
}

// SOAPDriver calls document/literal SOAP services. The service base URL is
// the WSDL location; the call endpoint is the operation name and the payload
// keys become the operation's child elements.
type SOAPDriver struct {
	client         *utils.HTTPClient
	wsdl           *expirable.LRU[string, wsdlInfo]
	defaultTimeout time.Duration
	logger         *logger.Logger
}

// NewSOAPDriver constructs a SOAP [Driver]. Parsed WSDL documents are cached
// per URL for cacheTTL.
func NewSOAPDriver(client *utils.HTTPClient, cacheTTL time.Duration, opts ...Option) *SOAPDriver {
	o := newOptions(opts)
	if client == nil {
		client = utils.NewHTTPClient()
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultWSDLCacheTTL
	}
	return &SOAPDriver{
		client:         client,
		wsdl:           expirable.NewLRU[string, wsdlInfo](wsdlCacheSize, nil, cacheTTL),
		defaultTimeout: o.defaultTimeout,
		logger:         o.log,
	}
}

// Execute implements [Driver]. method is ignored.
//
// A SOAP fault answers "SOAP Fault: <faultstring>", every other failure
// "SOAP Error: <message>"; both carry code 500. A successful response body
// element is returned as JSON with code 200.
func (d *SOAPDriver) Execute(ctx context.Context, service models.ServiceConfig, endpoint string, payload map[string]any, _ string) models.TransportResult {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, service.TimeoutDuration(d.defaultTimeout))
	defer cancel()

	response, err := d.call(ctx, service, strings.TrimLeft(endpoint, "/"), payload)
	if err != nil {
		d.logger.Err(err).
			Str("func", "SOAPDriver.Execute").
			Str("service", service.Slug).
			Str("operation", endpoint).
			Msg("soap call failed")

		var fault *soapFault
		if errors.As(err, &fault) {
			return models.ErrorResult("SOAP Fault: "+fault.message, start, 1, http.StatusInternalServerError)
		}
		return models.ErrorResult(fmt.Sprintf("SOAP Error: %v", err), start, 1, http.StatusInternalServerError)
	}

	return models.SuccessResult(response, start, 1, http.StatusOK)
}

func (d *SOAPDriver) call(ctx context.Context, service models.ServiceConfig, operation string, payload map[string]any) (string, error) {
	info, err := d.describe(ctx, service)
	if err != nil {
		return "", err
	}
	if !info.hasOperation(operation) {
		return "", &soapFault{message: fmt.Sprintf("Function (%q) is not a valid method for this service", operation)}
	}

	envelope, err := buildEnvelope(info.Version, info.Namespace, operation, payload)
	if err != nil {
		return "", err
	}

	action := info.Actions[operation]
	req := d.request(ctx, service).
		SetHeader("Content-Type", info.Version.contentType(action)).
		SetBody(envelope)
	if info.Version == soap11 {
		req.SetHeader("SOAPAction", `"`+action+`"`)
	}

	resp, err := req.Post(info.Endpoint)
	if err != nil {
		return "", err
	}

	parsed, parseErr := parseSOAPResponse(resp.Body())
	if parseErr == nil && parsed.Fault != "" {
		return "", &soapFault{message: parsed.Fault}
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode())
	}
	if parseErr != nil {
		return "", fmt.Errorf("decode response: %w", parseErr)
	}

	encoded, err := json.Marshal(parsed.Result)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// describe returns the parsed WSDL of service, fetching it on a cache miss.
func (d *SOAPDriver) describe(ctx context.Context, service models.ServiceConfig) (wsdlInfo, error) {
	if info, ok := d.wsdl.Get(service.BaseURL); ok {
		return info, nil
	}

	resp, err := d.request(ctx, service).Get(service.BaseURL)
	if err != nil {
		return wsdlInfo{}, fmt.Errorf("fetch WSDL: %w", err)
	}
	if resp.IsError() {
		return wsdlInfo{}, fmt.Errorf("fetch WSDL: HTTP %d", resp.StatusCode())
	}

	info, err := parseWSDL(resp.Body())
	if err != nil {
		return wsdlInfo{}, err
	}

	d.wsdl.Add(service.BaseURL, info)
	return info, nil
}

func (d *SOAPDriver) request(ctx context.Context, service models.ServiceConfig) *resty.Request {
	req := d.client.R().SetContext(ctx)
	if service.AuthType == models.AuthBasic && service.AuthToken != "" {
		user, pass, _ := strings.Cut(service.AuthToken, ":")
		req.SetBasicAuth(user, pass)
	}
	return req
}
