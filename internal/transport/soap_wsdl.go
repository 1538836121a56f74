package transport

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const (
	nsWSDLSOAP11 = "http://schemas.xmlsoap.org/wsdl/soap/"
	nsWSDLSOAP12 = "http://schemas.xmlsoap.org/wsdl/soap12/"
)

var errNoSOAPEndpoint = errors.New("WSDL does not declare a SOAP endpoint")

type wsdlDefinitions struct {
	XMLName         xml.Name      `xml:"definitions"`
	TargetNamespace string        `xml:"targetNamespace,attr"`
	Bindings        []wsdlBinding `xml:"binding"`
	Services        []wsdlService `xml:"service"`
}

type wsdlBinding struct {
	Name       string                 `xml:"name,attr"`
	Operations []wsdlBindingOperation `xml:"operation"`
}

type wsdlBindingOperation struct {
	Name   string             `xml:"name,attr"`
	SOAP11 *wsdlSOAPOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap/ operation"`
	SOAP12 *wsdlSOAPOperation `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ operation"`
}

type wsdlSOAPOperation struct {
	SOAPAction string `xml:"soapAction,attr"`
}

type wsdlService struct {
	Name  string     `xml:"name,attr"`
	Ports []wsdlPort `xml:"port"`
}

type wsdlPort struct {
	Name    string       `xml:"name,attr"`
	Binding string       `xml:"binding,attr"`
	SOAP11  *wsdlAddress `xml:"http://schemas.xmlsoap.org/wsdl/soap/ address"`
	SOAP12  *wsdlAddress `xml:"http://schemas.xmlsoap.org/wsdl/soap12/ address"`
}

type wsdlAddress struct {
	Location string `xml:"location,attr"`
}

// wsdlInfo is what a call needs from a WSDL document.
type wsdlInfo struct {
	Endpoint  string
	Namespace string
	Version   soapVersion
	// Actions maps operation names to their SOAPAction.
	Actions map[string]string
}

func (w wsdlInfo) hasOperation(name string) bool {
	if len(w.Actions) == 0 {
		return true
	}
	_, ok := w.Actions[name]
	return ok
}

// parseWSDL extracts the service address, the target namespace and the
// SOAPAction of every operation. SOAP 1.1 ports are preferred over SOAP 1.2.
func parseWSDL(data []byte) (wsdlInfo, error) {
	var defs wsdlDefinitions
	if err := xml.Unmarshal(data, &defs); err != nil {
		return wsdlInfo{}, fmt.Errorf("parse WSDL: %w", err)
	}

	port, version, ok := pickPort(defs.Services)
	if !ok {
		return wsdlInfo{}, errNoSOAPEndpoint
	}

	info := wsdlInfo{
		Namespace: defs.TargetNamespace,
		Version:   version,
		Actions:   make(map[string]string),
	}
	if version == soap12 {
		info.Endpoint = port.SOAP12.Location
	} else {
		info.Endpoint = port.SOAP11.Location
	}

	bindingName := localName(port.Binding)
	for _, binding := range defs.Bindings {
		if binding.Name != bindingName {
			continue
		}
		for _, op := range binding.Operations {
			action := ""
			switch {
			case version == soap12 && op.SOAP12 != nil:
				action = op.SOAP12.SOAPAction
			case op.SOAP11 != nil:
				action = op.SOAP11.SOAPAction
			}
			info.Actions[op.Name] = action
		}
	}

	return info, nil
}

func pickPort(services []wsdlService) (wsdlPort, soapVersion, bool) {
	for _, svc := range services {
		for _, port := range svc.Ports {
			if port.SOAP11 != nil && port.SOAP11.Location != "" {
				return port, soap11, true
			}
		}
	}
	for _, svc := range services {
		for _, port := range svc.Ports {
			if port.SOAP12 != nil && port.SOAP12.Location != "" {
				return port, soap12, true
			}
		}
	}
	return wsdlPort{}, soap11, false
}

// localName strips the namespace prefix of a QName ("tns:Foo" -> "Foo").
func localName(qname string) string {
	if i := strings.LastIndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
