package transport

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-openfinance/core"
)

// isoInstantLayout matches the millisecond-precision UTC instants the API
// emits. Only strings in exactly this shape are revived; date-only values
// and free-form text pass through untouched.
const isoInstantLayout = "2006-01-02T15:04:05.000Z"

var isoInstantPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// ReviveDates walks a decoded JSON document and replaces every string that
// matches the API's instant format with a time.Time. Other values, including
// near-miss strings, are returned unchanged.
func ReviveDates(value any) any {
	switch v := value.(type) {
	case string:
		if isoInstantPattern.MatchString(v) {
			if parsed, err := time.Parse(isoInstantLayout, v); err == nil {
				return parsed.UTC()
			}
		}
		return v
	case map[string]any:
		for key, entry := range v {
			v[key] = ReviveDates(entry)
		}
		return v
	case []any:
		for i, entry := range v {
			v[i] = ReviveDates(entry)
		}
		return v
	default:
		return value
	}
}

// decodeResponse unmarshals a 2xx body into out. A nil out discards the
// body. When out is *any the decoded document additionally has its instant
// strings revived into time.Time values.
func decodeResponse(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if target, ok := out.(*any); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return core.NewTransformError(err, "transport: decode response body")
		}
		*target = ReviveDates(decoded)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return core.NewTransformError(err, "transport: decode response body")
	}
	return nil
}

// decodeErrorBody decodes a non-2xx body for error reporting. Bodies that
// are not valid JSON are wrapped as {"message": <raw text>} so callers always
// get a structured value.
func decodeErrorBody(raw []byte) any {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return map[string]any{"message": text}
	}
	return decoded
}
