package transport

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// buildQuery encodes payload the way PHP's http_build_query does: nested
// maps and slices become bracketed keys ("a[b]=c", "list[0]=x"), booleans
// become 1 and 0, nil values are dropped. Keys are emitted in sorted order.
func buildQuery(payload map[string]any) string {
	var parts []string
	for _, key := range sortedKeys(payload) {
		parts = appendQueryValue(parts, url.QueryEscape(key), payload[key])
	}
	return strings.Join(parts, "&")
}

func appendQueryValue(parts []string, prefix string, value any) []string {
	switch v := value.(type) {
	case nil:
		return parts
	case map[string]any:
		for _, key := range sortedKeys(v) {
			parts = appendQueryValue(parts, prefix+url.QueryEscape("["+key+"]"), v[key])
		}
		return parts
	case []any:
		for i, item := range v {
			parts = appendQueryValue(parts, prefix+url.QueryEscape("["+strconv.Itoa(i)+"]"), item)
		}
		return parts
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			parts = appendQueryValue(parts, prefix+url.QueryEscape("["+strconv.Itoa(i)+"]"), rv.Index(i).Interface())
		}
		return parts
	}

	return append(parts, prefix+"="+url.QueryEscape(scalarString(value)))
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// joinURL joins base and endpoint with exactly one slash between them.
func joinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
