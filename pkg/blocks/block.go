// Package blocks models post bodies as ordered sequences of paragraph and
// image blocks, one sequence per language.
package blocks

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Kind tags the variant held by a Block.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindImage     Kind = "image"
)

// Field keys accepted by Append and UpdateAt.
const (
	FieldTitle        = "title"
	FieldText         = "text"
	FieldImageURL     = "imageUrl"
	FieldImageAlt     = "imageAlt"
	FieldImageCaption = "imageCaption"
	fieldType         = "type"
)

var newID = uuid.NewString

var kindFields = map[Kind][]string{
	KindParagraph: {FieldTitle, FieldText},
	KindImage:     {FieldImageURL, FieldImageAlt, FieldImageCaption},
}

// Known reports whether k is a supported block kind.
func (k Kind) Known() bool {
	_, ok := kindFields[k]
	return ok
}

// Fields lists the keys meaningful for k.
func (k Kind) Fields() []string {
	return append([]string(nil), kindFields[k]...)
}

// Paragraph is a titled run of text.
type Paragraph struct {
	Title string
	Text  string
}

// Image is an image reference with alt text and caption.
type Image struct {
	URL     string
	Alt     string
	Caption string
}

// Fields is a partial update keyed by the wire names above.
type Fields map[string]string

// Block is one unit of post content. Exactly one of Paragraph or Image is
// set, matching Type. ID is a synthetic key for external references; it is
// not part of the persisted payload.
type Block struct {
	ID        string
	Type      Kind
	Paragraph *Paragraph
	Image     *Image
}

// New creates a block of kind with fields applied over empty values.
func New(kind Kind, fields Fields) (Block, error) {
	var b Block
	switch kind {
	case KindParagraph:
		b = Block{Type: kind, Paragraph: &Paragraph{}}
	case KindImage:
		b = Block{Type: kind, Image: &Image{}}
	default:
		return Block{}, unknownKind(kind)
	}
	b.ID = newID()
	if err := b.apply(fields); err != nil {
		return Block{}, err
	}
	return b, nil
}

// NewParagraph is shorthand for New(KindParagraph, ...).
func NewParagraph(title, text string) Block {
	b, _ := New(KindParagraph, Fields{FieldTitle: title, FieldText: text})
	return b
}

// NewImage is shorthand for New(KindImage, ...).
func NewImage(url, alt, caption string) Block {
	b, _ := New(KindImage, Fields{FieldImageURL: url, FieldImageAlt: alt, FieldImageCaption: caption})
	return b
}

// Clone returns a deep copy of b keeping its ID.
func (b Block) Clone() Block {
	out := Block{ID: b.ID, Type: b.Type}
	if b.Paragraph != nil {
		p := *b.Paragraph
		out.Paragraph = &p
	}
	if b.Image != nil {
		img := *b.Image
		out.Image = &img
	}
	return out
}

// Get returns the value stored under a wire field name.
func (b Block) Get(key string) (string, bool) {
	switch {
	case b.Paragraph != nil:
		switch key {
		case FieldTitle:
			return b.Paragraph.Title, true
		case FieldText:
			return b.Paragraph.Text, true
		}
	case b.Image != nil:
		switch key {
		case FieldImageURL:
			return b.Image.URL, true
		case FieldImageAlt:
			return b.Image.Alt, true
		case FieldImageCaption:
			return b.Image.Caption, true
		}
	}
	return "", false
}

// Empty reports whether every field of the block is blank.
func (b Block) Empty() bool {
	for _, key := range kindFields[b.Type] {
		if v, _ := b.Get(key); strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// apply merges fields into b. The type tag is never changed; keys that do not
// belong to the variant are rejected before anything is written. A block
// built by hand with only its Type set gets an empty variant first.
func (b *Block) apply(fields Fields) error {
	if !b.Type.Known() {
		return unknownKind(b.Type)
	}
	var invalid []string
	for key := range fields {
		if key == fieldType {
			continue
		}
		if !contains(kindFields[b.Type], key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return fieldNotApplicable(b.Type, invalid)
	}

	b.ensureVariant()
	for key, value := range fields {
		switch key {
		case FieldTitle:
			b.Paragraph.Title = value
		case FieldText:
			b.Paragraph.Text = value
		case FieldImageURL:
			b.Image.URL = value
		case FieldImageAlt:
			b.Image.Alt = value
		case FieldImageCaption:
			b.Image.Caption = value
		}
	}
	return nil
}

func (b *Block) ensureVariant() {
	switch b.Type {
	case KindParagraph:
		if b.Paragraph == nil {
			b.Paragraph = &Paragraph{}
		}
	case KindImage:
		if b.Image == nil {
			b.Image = &Image{}
		}
	}
}

type paragraphWire struct {
	Type  Kind   `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type imageWire struct {
	Type    Kind   `json:"type"`
	URL     string `json:"imageUrl"`
	Alt     string `json:"imageAlt"`
	Caption string `json:"imageCaption"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	b = b.Clone()
	b.ensureVariant()
	switch {
	case b.Type == KindParagraph && b.Paragraph != nil:
		return json.Marshal(paragraphWire{Type: b.Type, Title: b.Paragraph.Title, Text: b.Paragraph.Text})
	case b.Type == KindImage && b.Image != nil:
		return json.Marshal(imageWire{Type: b.Type, URL: b.Image.URL, Alt: b.Image.Alt, Caption: b.Image.Caption})
	default:
		return nil, fmt.Errorf("blocks: cannot encode block of type %q", b.Type)
	}
}

// UnmarshalJSON decodes the flat wire shape and assigns a fresh ID.
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("blocks: decode block: %w", err)
	}
	switch head.Type {
	case KindParagraph:
		var w paragraphWire
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("blocks: decode paragraph: %w", err)
		}
		*b = Block{ID: newID(), Type: KindParagraph, Paragraph: &Paragraph{Title: w.Title, Text: w.Text}}
	case KindImage:
		var w imageWire
		if err := json.Unmarshal(data, &w); err != nil {
			return fmt.Errorf("blocks: decode image: %w", err)
		}
		*b = Block{ID: newID(), Type: KindImage, Image: &Image{URL: w.URL, Alt: w.Alt, Caption: w.Caption}}
	default:
		return unknownKind(head.Type)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
