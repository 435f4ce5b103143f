package tui

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/engine"
)

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []string:
		for _, val := range v {
			out.Add(prefix+"[]", val)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", scalar(val))
		}
	default:
		out.Set(prefix, scalar(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []string:
		for idx, val := range v {
			fmt.Fprintf(b, "%s[%d]=%s\n", prefix, idx, val)
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%s\n", prefix, scalar(v))
		}
	}
}

// scalar renders leaf values for form and text output. Files are reduced to
// their names.
func scalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case engine.File:
		return v.Name
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func jsonBytes(values map[string]any) ([]byte, error) {
	return json.Marshal(values)
}
