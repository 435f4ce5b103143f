package model

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// labelOverrides holds keys whose label is fixed rather than derived.
var labelOverrides = map[string]string{
	"shortBio": "Bio - Field of specialization",
}

// DefaultLabeler converts a field key into a human label: camelCase and
// separator boundaries become spaces and every word is capitalised.
func DefaultLabeler(name string) string {
	if label, ok := labelOverrides[name]; ok {
		return label
	}
	var words []string
	for _, chunk := range splitWordsPattern.Split(name, -1) {
		words = append(words, splitCamel(chunk)...)
	}
	return joinCapitalised(words)
}

// OptionLabel formats a raw enum value for display, e.g. "in-progress"
// becomes "In Progress".
func OptionLabel(value string) string {
	return joinCapitalised(splitWordsPattern.Split(value, -1))
}

func splitCamel(input string) []string {
	if input == "" {
		return nil
	}
	var (
		words []string
		start int
		prev  rune
	)
	for i, r := range input {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(prev) {
			words = append(words, input[start:i])
			start = i
		}
		prev = r
	}
	return append(words, input[start:])
}

func joinCapitalised(words []string) string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		out = append(out, capitalise(word))
	}
	return strings.Join(out, " ")
}

func capitalise(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}
