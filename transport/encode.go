package transport

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// encodeQuery serializes the query in insertion order, returning either an
// empty string or a leading-"?" query string with percent-encoded keys and
// values.
func encodeQuery(query *core.Query) string {
	params := query.Params()
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, param := range params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(stringifyQueryValue(param.Value)))
	}
	return sb.String()
}

func stringifyQueryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case []string:
		return strings.Join(v, ",")
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return stringifyQueryValue(rv.Elem().Interface())
	case reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringifyQueryValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprintf("%v", value)
}

// encodeJSONBody marshals the request body to JSON. A nil body yields a nil
// payload so no Content-Type header is sent. Map bodies have nil-valued
// entries stripped first; an absent optional field must not serialize as an
// explicit null.
func encodeJSONBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if payload, ok := body.(map[string]any); ok {
		body = stripNilEntries(payload)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, core.NewTransformError(err, "transport: marshal request body")
	}
	return raw, nil
}

func stripNilEntries(payload map[string]any) map[string]any {
	cleaned := make(map[string]any, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				continue
			}
		}
		if nested, ok := value.(map[string]any); ok {
			value = stripNilEntries(nested)
		}
		cleaned[key] = value
	}
	return cleaned
}
