package engine

import (
	"time"

	"github.com/goliatone/go-formkit/pkg/interfaces"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session events to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for the render instant.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPreviews swaps the store that issues local preview URLs.
func WithPreviews(store PreviewStore) Option {
	return func(s *Session) {
		if store != nil {
			s.previews = store
		}
	}
}

// WithValidateOnChange runs field validation on every Set.
func WithValidateOnChange(enabled bool) Option {
	return func(s *Session) {
		s.validateOnChange = enabled
	}
}
