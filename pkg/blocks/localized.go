package blocks

import (
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formkit/pkg/i18n"
)

// LocalizedContent pairs the English and Arabic block sequences of a post.
// The two sequences are independent.
type LocalizedContent struct {
	EN Sequence `json:"en"`
	AR Sequence `json:"ar"`
}

// Collect snapshots the sequences of the given editors by language.
func Collect(editors ...*Editor) LocalizedContent {
	var out LocalizedContent
	for _, e := range editors {
		if e == nil {
			continue
		}
		out = out.With(e.Language(), e.Blocks())
	}
	return out
}

// For returns the sequence for lang. Unsupported languages yield nil.
func (c LocalizedContent) For(lang i18n.Language) Sequence {
	switch lang {
	case i18n.English:
		return c.EN
	case i18n.Arabic:
		return c.AR
	default:
		return nil
	}
}

// With returns a copy of c with the sequence for lang replaced.
func (c LocalizedContent) With(lang i18n.Language, seq Sequence) LocalizedContent {
	out := c.Clone()
	switch lang {
	case i18n.English:
		out.EN = seq.Clone()
	case i18n.Arabic:
		out.AR = seq.Clone()
	}
	return out
}

func (c LocalizedContent) Clone() LocalizedContent {
	return LocalizedContent{EN: c.EN.Clone(), AR: c.AR.Clone()}
}

// MarshalJSON always emits both languages as arrays.
func (c LocalizedContent) MarshalJSON() ([]byte, error) {
	type wire struct {
		EN Sequence `json:"en"`
		AR Sequence `json:"ar"`
	}
	return json.Marshal(wire{EN: c.EN.Clone(), AR: c.AR.Clone()})
}
