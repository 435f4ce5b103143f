package i18n

import (
	"errors"
	"fmt"
	"sync"
)

// ErrMissingMessage is returned when no language holds the requested key.
var ErrMissingMessage = errors.New("i18n: missing message")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// Catalog is an in-memory Translator keyed by language. Lookups fall back to
// English, then Arabic. Arguments are applied with fmt.Sprintf.
type Catalog struct {
	mu       sync.RWMutex
	messages map[Language]map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[Language]map[string]string)}
}

// Add registers messages for lang, overwriting existing keys.
func (c *Catalog) Add(lang Language, messages map[string]string) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket := c.messages[lang]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.messages[lang] = bucket
	}
	for k, v := range messages {
		bucket[k] = v
	}
	return c
}

func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	lang, _ := Parse(locale)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, candidate := range []Language{lang, English, Arabic} {
		if msg, ok := c.messages[candidate][key]; ok && msg != "" {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingMessage, key, locale)
}
