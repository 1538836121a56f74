package transport

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode"
)

type soapVersion int

const (
	soap11 soapVersion = iota
	soap12
)

const (
	nsEnvelope11 = "http://schemas.xmlsoap.org/soap/envelope/"
	nsEnvelope12 = "http://www.w3.org/2003/05/soap-envelope"
)

func (v soapVersion) envelopeNamespace() string {
	if v == soap12 {
		return nsEnvelope12
	}
	return nsEnvelope11
}

func (v soapVersion) contentType(action string) string {
	if v == soap12 {
		ct := "application/soap+xml; charset=utf-8"
		if action != "" {
			ct += `; action="` + action + `"`
		}
		return ct
	}
	return "text/xml; charset=utf-8"
}

var (
	errInvalidElementName = errors.New("invalid XML element name")
	errNoSOAPBody         = errors.New("response has no SOAP body")
)

// buildEnvelope renders a document/literal request: the operation element
// in the target namespace, payload keys as its child elements.
func buildEnvelope(version soapVersion, namespace, operation string, payload map[string]any) ([]byte, error) {
	if !validElementName(operation) {
		return nil, fmt.Errorf("%w: %q", errInvalidElementName, operation)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)

	envelope := xml.StartElement{
		Name: xml.Name{Local: "soap:Envelope"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "xmlns:soap"}, Value: version.envelopeNamespace()}},
	}
	body := xml.StartElement{Name: xml.Name{Local: "soap:Body"}}
	op := xml.StartElement{Name: xml.Name{Local: operation}}
	if namespace != "" {
		op.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: namespace}}
	}

	for _, start := range []xml.StartElement{envelope, body, op} {
		if err := enc.EncodeToken(start); err != nil {
			return nil, err
		}
	}
	for _, key := range sortedKeys(payload) {
		if err := encodeElement(enc, key, payload[key]); err != nil {
			return nil, err
		}
	}
	for _, start := range []xml.StartElement{op, body, envelope} {
		if err := enc.EncodeToken(start.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeElement(enc *xml.Encoder, name string, value any) error {
	if !validElementName(name) {
		return fmt.Errorf("%w: %q", errInvalidElementName, name)
	}

	switch v := value.(type) {
	case nil:
		return enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}}.End())
	case map[string]any:
		start := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, key := range sortedKeys(v) {
			if err := encodeElement(enc, key, v[key]); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	case []any:
		for _, item := range v {
			if err := encodeElement(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			if err := encodeElement(enc, name, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(xmlScalar(value))); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func xmlScalar(value any) string {
	if b, ok := value.(bool); ok {
		if b {
			return "true"
		}
		return "false"
	}
	return scalarString(value)
}

func validElementName(name string) bool {
	if name == "" || strings.HasPrefix(strings.ToLower(name), "xml") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// xmlNode is a namespace-agnostic element tree.
type xmlNode struct {
	Name     string
	Text     string
	Children []*xmlNode
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func parseXMLTree(data []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		root  *xmlNode
		stack []*xmlNode
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{Name: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errNoSOAPBody
	}
	return root, nil
}

// soapResponse is a decoded response envelope. Exactly one of Fault and
// Result is set.
type soapResponse struct {
	Fault  string
	Result any
}

func parseSOAPResponse(data []byte) (soapResponse, error) {
	root, err := parseXMLTree(data)
	if err != nil {
		return soapResponse{}, err
	}
	body := root.child("Body")
	if root.Name != "Envelope" || body == nil {
		return soapResponse{}, errNoSOAPBody
	}
	if len(body.Children) == 0 {
		return soapResponse{Result: map[string]any{}}, nil
	}

	first := body.Children[0]
	if first.Name == "Fault" {
		return soapResponse{Fault: faultMessage(first)}, nil
	}

	result := nodeValue(first)
	if s, ok := result.(string); ok && s == "" {
		result = map[string]any{}
	}
	return soapResponse{Result: result}, nil
}

func faultMessage(fault *xmlNode) string {
	// SOAP 1.1
	if fs := fault.child("faultstring"); fs != nil {
		return strings.TrimSpace(fs.Text)
	}
	// SOAP 1.2
	if reason := fault.child("Reason"); reason != nil {
		if text := reason.child("Text"); text != nil {
			return strings.TrimSpace(text.Text)
		}
		return strings.TrimSpace(reason.Text)
	}
	return "unknown fault"
}

// nodeValue converts an element into JSON-friendly values: leaves become
// strings, elements with children become maps, repeated children become
// slices.
func nodeValue(n *xmlNode) any {
	if len(n.Children) == 0 {
		return strings.TrimSpace(n.Text)
	}
	out := make(map[string]any, len(n.Children))
	for _, c := range n.Children {
		v := nodeValue(c)
		existing, seen := out[c.Name]
		if !seen {
			out[c.Name] = v
			continue
		}
		if list, ok := existing.([]any); ok {
			out[c.Name] = append(list, v)
		} else {
			out[c.Name] = []any{existing, v}
		}
	}
	return out
}
