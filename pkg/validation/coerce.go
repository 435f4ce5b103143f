package validation

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// DateLayouts are tried in order when a date value arrives as text.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Coerce converts a raw form value to the Go type of the field's kind:
// string, float64, bool, time.Time or []string. Upload widgets keep the
// handle untouched. Empty input coerces to nil for number and date fields
// so "required" can tell it apart from zero. Zone-less date text is read
// as UTC.
func Coerce(field model.Field, raw any) (any, error) {
	return CoerceIn(field, raw, time.UTC)
}

// CoerceIn is Coerce with zone-less date text read in loc.
func CoerceIn(field model.Field, raw any, loc *time.Location) (any, error) {
	if widgets.IsUpload(field.Widget) {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return raw, nil
	}

	switch field.Kind {
	case schema.KindNumber:
		return coerceNumber(raw)
	case schema.KindBoolean:
		return coerceBool(raw)
	case schema.KindDate:
		return coerceDate(raw, loc)
	case schema.KindArray:
		return coerceArray(raw)
	default:
		return coerceString(raw), nil
	}
}

func coerceString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func coerceNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case float64:
		return finite(v)
	case gojson.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return finite(rv.Float())
	default:
		return nil, errNotNumber
	}
}

func parseNumber(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, errNotNumber
	}
	return finite(n)
}

func finite(n float64) (any, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, errNotNumber
	}
	return n, nil
}

func coerceBool(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "off":
			return false, nil
		case "on":
			return true, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, errNotBoolean
		}
		return b, nil
	default:
		return nil, errNotBoolean
	}
}

func coerceDate(raw any, loc *time.Location) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		if t, ok := ParseTimeIn(trimmed, loc); ok {
			return t, nil
		}
		return nil, errNotDate
	default:
		return nil, errNotDate
	}
}

func coerceArray(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errNotList
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		return []string{v}, nil
	default:
		return nil, errNotList
	}
}

// ParseTime parses text using DateLayouts. Zone-less layouts are read as
// UTC.
func ParseTime(value string) (time.Time, bool) {
	return ParseTimeIn(value, time.UTC)
}

// ParseTimeIn parses text using DateLayouts, reading zone-less layouts in
// loc. A datetime-local value is wall-clock time in the zone the form was
// rendered in.
func ParseTimeIn(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
