package blocks

import (
	"html"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce    sync.Once
	textPolicy        *bluemonday.Policy
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func previewSanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("figure", "figcaption")
		policy.AllowDataURIImages()
		policy.AllowURLSchemes("http", "https", "blob")
		previewPolicy = policy
	})
	return previewPolicy
}

// Sanitize returns a copy of seq with markup stripped from every text field.
// Image URLs that are neither previewable nor relative are cleared.
func Sanitize(seq Sequence) Sequence {
	out := seq.Clone()
	for i := range out {
		b := &out[i]
		switch {
		case b.Paragraph != nil:
			b.Paragraph.Title = sanitizeText(b.Paragraph.Title)
			b.Paragraph.Text = sanitizeText(b.Paragraph.Text)
		case b.Image != nil:
			b.Image.Alt = sanitizeText(b.Image.Alt)
			b.Image.Caption = sanitizeText(b.Image.Caption)
			if !safeImageURL(b.Image.URL) {
				b.Image.URL = ""
			}
		}
	}
	return out
}

func sanitizeText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	// the policy escapes entities; stored text stays plain
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

func safeImageURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" || IsPreviewableImage(raw) {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
