package transport

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/integration-hub/models"
)

const calculatorWSDL = `<?xml version="1.0" encoding="utf-8"?>
<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/"
    xmlns:soap="http://schemas.xmlsoap.org/wsdl/soap/"
    xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/"
    xmlns:tns="http://tempuri.org/"
    targetNamespace="http://tempuri.org/">
  <wsdl:binding name="CalculatorSoap" type="tns:CalculatorSoap">
    <soap:binding transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Add">
      <soap:operation soapAction="http://tempuri.org/Add" style="document"/>
    </wsdl:operation>
    <wsdl:operation name="Divide">
      <soap:operation soapAction="http://tempuri.org/Divide" style="document"/>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:binding name="CalculatorSoap12" type="tns:CalculatorSoap">
    <soap12:binding transport="http://schemas.xmlsoap.org/soap/http"/>
    <wsdl:operation name="Add">
      <soap12:operation soapAction="http://tempuri.org/Add12" style="document"/>
    </wsdl:operation>
  </wsdl:binding>
  <wsdl:service name="Calculator">
    <wsdl:port name="CalculatorSoap12" binding="tns:CalculatorSoap12">
      <soap12:address location="%[1]s/calculator12"/>
    </wsdl:port>
    <wsdl:port name="CalculatorSoap" binding="tns:CalculatorSoap">
      <soap:address location="%[1]s/calculator"/>
    </wsdl:port>
  </wsdl:service>
</wsdl:definitions>`

const addResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <AddResponse xmlns="http://tempuri.org/">
      <AddResult>5</AddResult>
      <Trace><Step>a</Step><Step>b</Step></Trace>
    </AddResponse>
  </soap:Body>
</soap:Envelope>`

const divideFault = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Server</faultcode>
      <faultstring>Attempted to divide by zero.</faultstring>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

type calculatorServer struct {
	*httptest.Server
	wsdlFetches atomic.Int32
	lastAction  atomic.Value
	lastBody    atomic.Value
}

func newCalculatorServer(t *testing.T) *calculatorServer {
	t.Helper()
	s := &calculatorServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/calculator.asmx":
			s.wsdlFetches.Add(1)
			_, _ = fmt.Fprintf(w, calculatorWSDL, s.URL)
		case r.Method == http.MethodPost && r.URL.Path == "/calculator":
			body, _ := io.ReadAll(r.Body)
			s.lastBody.Store(string(body))
			s.lastAction.Store(r.Header.Get("SOAPAction"))
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			if strings.Contains(string(body), "<Divide") {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(divideFault))
				return
			}
			_, _ = w.Write([]byte(addResponse))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func TestSOAPDriver_Success(t *testing.T) {
	srv := newCalculatorServer(t)
	driver := NewSOAPDriver(nil, 0)
	service := models.ServiceConfig{Type: models.TransportSOAP, BaseURL: srv.URL + "/calculator.asmx"}

	result := driver.Execute(context.Background(), service, "/Add", map[string]any{"intA": 2.0, "intB": 3.0}, "")

	require.True(t, result.Success, "%v", result.Error)
	assert.Equal(t, http.StatusOK, result.HTTPCode)
	assert.JSONEq(t, `{"AddResult":"5","Trace":{"Step":["a","b"]}}`, *result.Response)
	assert.Equal(t, `"http://tempuri.org/Add"`, srv.lastAction.Load())

	body := srv.lastBody.Load().(string)
	assert.Contains(t, body, `<Add xmlns="http://tempuri.org/"><intA>2</intA><intB>3</intB></Add>`)
	assert.Contains(t, body, `xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)
}

func TestSOAPDriver_WSDLIsCached(t *testing.T) {
	srv := newCalculatorServer(t)
	driver := NewSOAPDriver(nil, 0)
	service := models.ServiceConfig{BaseURL: srv.URL + "/calculator.asmx"}

	for i := 0; i < 3; i++ {
		result := driver.Execute(context.Background(), service, "Add", map[string]any{"intA": 1, "intB": 1}, "")
		require.True(t, result.Success)
	}
	assert.Equal(t, int32(1), srv.wsdlFetches.Load())
}

func TestSOAPDriver_Fault(t *testing.T) {
	srv := newCalculatorServer(t)
	service := models.ServiceConfig{BaseURL: srv.URL + "/calculator.asmx"}

	result := NewSOAPDriver(nil, 0).Execute(context.Background(), service, "Divide", map[string]any{"intA": 1, "intB": 0}, "")

	assert.False(t, result.Success)
	assert.Equal(t, http.StatusInternalServerError, result.HTTPCode)
	assert.Equal(t, "SOAP Fault: Attempted to divide by zero.", *result.Error)
}

func TestSOAPDriver_UnknownOperation(t *testing.T) {
	srv := newCalculatorServer(t)
	service := models.ServiceConfig{BaseURL: srv.URL + "/calculator.asmx"}

	result := NewSOAPDriver(nil, 0).Execute(context.Background(), service, "Multiply", nil, "")

	assert.False(t, result.Success)
	assert.True(t, strings.HasPrefix(*result.Error, "SOAP Fault: "))
}

func TestSOAPDriver_WSDLUnavailable(t *testing.T) {
	srv := newCalculatorServer(t)
	service := models.ServiceConfig{BaseURL: srv.URL + "/missing.wsdl"}

	result := NewSOAPDriver(nil, 0).Execute(context.Background(), service, "Add", nil, "")

	assert.False(t, result.Success)
	assert.Equal(t, http.StatusInternalServerError, result.HTTPCode)
	assert.Equal(t, "SOAP Error: fetch WSDL: HTTP 404", *result.Error)
}

func TestBuildEnvelope_EscapesAndNests(t *testing.T) {
	out, err := buildEnvelope(soap11, "urn:x", "Send", map[string]any{
		"note":  "a<b & c",
		"items": []any{"one", "two"},
		"user":  map[string]any{"name": "ann", "active": true},
	})
	require.NoError(t, err)

	var probe struct{}
	require.NoError(t, xml.Unmarshal(out, &probe))

	s := string(out)
	assert.Contains(t, s, "<note>a&lt;b &amp; c</note>")
	assert.Contains(t, s, "<items>one</items><items>two</items>")
	assert.Contains(t, s, "<user><active>true</active><name>ann</name></user>")
}

func TestBuildEnvelope_RejectsBadNames(t *testing.T) {
	_, err := buildEnvelope(soap11, "", "Send", map[string]any{"1bad": "x"})
	assert.ErrorIs(t, err, errInvalidElementName)

	_, err = buildEnvelope(soap11, "", "<script>", nil)
	assert.ErrorIs(t, err, errInvalidElementName)
}

func TestParseWSDL_PrefersSOAP11(t *testing.T) {
	info, err := parseWSDL([]byte(fmt.Sprintf(calculatorWSDL, "http://svc")))
	require.NoError(t, err)

	assert.Equal(t, "http://svc/calculator", info.Endpoint)
	assert.Equal(t, "http://tempuri.org/", info.Namespace)
	assert.Equal(t, soap11, info.Version)
	assert.Equal(t, map[string]string{"Add": "http://tempuri.org/Add", "Divide": "http://tempuri.org/Divide"}, info.Actions)
}

func TestParseSOAPResponse_SOAP12Fault(t *testing.T) {
	fault := `<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope"><env:Body><env:Fault>
<env:Code><env:Value>env:Sender</env:Value></env:Code>
<env:Reason><env:Text xml:lang="en">Bad input</env:Text></env:Reason>
</env:Fault></env:Body></env:Envelope>`

	resp, err := parseSOAPResponse([]byte(fault))
	require.NoError(t, err)
	assert.Equal(t, "Bad input", resp.Fault)
}
