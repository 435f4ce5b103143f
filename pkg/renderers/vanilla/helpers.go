package vanilla

import "strings"

func componentControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fk-" + trimmed
}

// sanitizeClassList drops tokens in the reserved formkit- namespace.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "formkit-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// labelSupportsFor reports whether the chrome emits a <label for> for the
// component. Checkboxes label themselves inline.
func labelSupportsFor(componentName string) bool {
	return strings.TrimSpace(componentName) != "checkbox"
}
