package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Priorities of the built-in rules. Gaps leave room for caller matchers.
const (
	PriorityKeyOverride     = 100
	PriorityConfirmPassword = 95
	PriorityLongText        = 90
	PriorityCallerOptions   = 80
	PriorityEnum            = 70
	PriorityArray           = 60
	PriorityEmail           = 50
	PriorityPasswordKey     = 40
	PriorityTemporalKey     = 30
	PriorityEnumLikeKey     = 20
	PriorityKindFallback    = 10
)

var (
	videoKeys = set("video", "videoFile", "productVideo")
	pdfKeys   = set("pdf", "pdfFile", "catalogPdf", "datasheet")
	imageKeys = set("image", "postImage", "profileImage", "avatar", "logo")

	longTextTerms = []string{
		"description", "content", "message", "bio", "specification",
		"comment", "notes", "summary",
	}
	enumLikeSuffixes = []string{
		"status", "type", "category", "priority", "state", "role", "mode",
	}
)

const confirmPasswordKey = "confirmPassword"

func (r *Registry) registerBuiltins() {
	r.Register(Video, PriorityKeyOverride, func(s Subject) bool {
		_, ok := videoKeys[s.Key]
		return ok
	})
	r.Register(PDF, PriorityKeyOverride, func(s Subject) bool {
		_, ok := pdfKeys[s.Key]
		return ok
	})
	r.Register(File, PriorityKeyOverride, func(s Subject) bool {
		_, ok := imageKeys[s.Key]
		return ok
	})

	r.Register(Password, PriorityConfirmPassword, func(s Subject) bool {
		return s.Key == confirmPasswordKey
	})
	r.Register(Textarea, PriorityLongText, func(s Subject) bool {
		return containsAny(s.lowerKey(), longTextTerms)
	})

	r.Register(Select, PriorityCallerOptions, func(s Subject) bool {
		return len(s.Options) > 0
	})
	r.Register(Select, PriorityEnum, func(s Subject) bool {
		return len(s.Enum) > 0
	})
	r.Register(Array, PriorityArray, func(s Subject) bool {
		return s.Descriptor.Kind == schema.KindArray
	})
	r.Register(Email, PriorityEmail, func(s Subject) bool {
		return s.Descriptor.Rules.Email
	})
	r.Register(Password, PriorityPasswordKey, func(s Subject) bool {
		return strings.Contains(s.lowerKey(), "password")
	})
	r.Register(DateTime, PriorityTemporalKey, func(s Subject) bool {
		key := s.lowerKey()
		return strings.Contains(key, "time") || strings.Contains(key, "date")
	})
	r.Register(Select, PriorityEnumLikeKey, func(s Subject) bool {
		if s.Descriptor.Kind != schema.KindString {
			return false
		}
		key := s.lowerKey()
		for _, suffix := range enumLikeSuffixes {
			if strings.HasSuffix(key, suffix) {
				return true
			}
		}
		return false
	})
	for _, kind := range []schema.Kind{schema.KindNumber, schema.KindBoolean, schema.KindDate} {
		kind := kind
		r.Register(ForKind(kind), PriorityKindFallback, func(s Subject) bool {
			return s.Descriptor.Kind == kind
		})
	}
	r.Register(Text, PriorityKindFallback, func(Subject) bool { return true })
}

// ForKind maps a declared kind to its default widget.
func ForKind(kind schema.Kind) Kind {
	switch kind {
	case schema.KindNumber:
		return Number
	case schema.KindBoolean:
		return Checkbox
	case schema.KindDate:
		return Date
	default:
		return Text
	}
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func set(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
