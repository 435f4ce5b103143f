package blocks

import "strings"

var previewPrefixes = []string{"http://", "https://", "data:image/", "blob:"}

// IsPreviewableImage reports whether ref may be rendered as an image preview:
// an http(s) URL, a data:image/ URI or a blob: URI. Bare file names and
// other data URIs are not.
func IsPreviewableImage(ref string) bool {
	ref = strings.TrimSpace(ref)
	lower := strings.ToLower(ref)
	for _, prefix := range previewPrefixes {
		if strings.HasPrefix(lower, prefix) && len(ref) > len(prefix) {
			return true
		}
	}
	return false
}
