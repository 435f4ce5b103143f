package widgets

import "strings"

const (
	// DefaultTextareaRows is used for ordinary multi-line fields.
	DefaultTextareaRows = 4
	// LongFormTextareaRows is used for keys that suggest long-form content.
	LongFormTextareaRows = 8
)

var longFormTerms = []string{"content", "description", "specification"}

// TextareaRows returns the row count for a textarea bound to key.
func TextareaRows(key string) int {
	if containsAny(strings.ToLower(key), longFormTerms) {
		return LongFormTextareaRows
	}
	return DefaultTextareaRows
}

// Accept returns the accept-type filter for upload widgets.
func Accept(kind Kind) string {
	switch kind {
	case File:
		return "image/*"
	case Video:
		return "video/*"
	case PDF:
		return "application/pdf"
	default:
		return ""
	}
}

// IsUpload reports whether kind takes a file handle as its value.
func IsUpload(kind Kind) bool {
	return kind == File || kind == Video || kind == PDF
}

// IsImageKey reports whether an array field should render its members as
// thumbnails.
func IsImageKey(key string) bool {
	return containsAny(strings.ToLower(key), []string{"image", "photo", "gallery"})
}

// InputType maps a widget onto the HTML input type used to render it.
// Widgets without a single-input rendering return "".
func InputType(kind Kind) string {
	switch kind {
	case Text, Array:
		return "text"
	case Email:
		return "email"
	case Password:
		return "password"
	case Number:
		return "number"
	case Checkbox:
		return "checkbox"
	case DateTime:
		return "datetime-local"
	case Date:
		return "date"
	case File, Video, PDF:
		return "file"
	default:
		return ""
	}
}
