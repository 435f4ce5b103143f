package blocks

import (
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/interfaces"
)

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithLogger routes structural edit events to logger.
func WithLogger(logger interfaces.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor owns the block sequence of one language. Callers keep one editor
// per language; editors are independent and not safe for concurrent use.
type Editor struct {
	lang   i18n.Language
	seq    Sequence
	logger interfaces.Logger
}

// NewEditor starts an editor from a copy of initial.
func NewEditor(lang i18n.Language, initial Sequence, opts ...EditorOption) *Editor {
	e := &Editor{lang: lang, seq: initial.Clone(), logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = logging.WithFields(e.logger, map[string]any{"lang": string(lang)})
	return e
}

func (e *Editor) Language() i18n.Language { return e.lang }

// Blocks returns a copy of the current sequence.
func (e *Editor) Blocks() Sequence { return e.seq.Clone() }

func (e *Editor) Len() int { return len(e.seq) }

// At returns a copy of the block at index.
func (e *Editor) At(index int) (Block, bool) {
	if !e.seq.inRange(index) {
		return Block{}, false
	}
	return e.seq[index].Clone(), true
}

// IndexOf maps a block ID to its current position, or -1.
func (e *Editor) IndexOf(id string) int { return e.seq.IndexOf(id) }

// Append adds a block at the end and returns it.
func (e *Editor) Append(kind Kind, fields Fields) (Block, error) {
	next, err := Append(e.seq, kind, fields)
	if err != nil {
		return Block{}, err
	}
	e.seq = next
	added := next[len(next)-1]
	e.logger.Debug("blocks.appended", "type", string(kind), "id", added.ID, "index", len(next)-1)
	return added.Clone(), nil
}

// Update merges fields into the block at index.
func (e *Editor) Update(index int, fields Fields) error {
	next, err := UpdateAt(e.seq, index, fields)
	if err != nil {
		return err
	}
	e.seq = next
	return nil
}

// UpdateByID merges fields into the block with id.
func (e *Editor) UpdateByID(id string, fields Fields) error {
	return e.Update(e.IndexOf(id), fields)
}

// Remove drops the block at index.
func (e *Editor) Remove(index int) error {
	next, err := RemoveAt(e.seq, index)
	if err != nil {
		return err
	}
	e.logger.Debug("blocks.removed", "id", e.seq[index].ID, "index", index)
	e.seq = next
	return nil
}

// Duplicate copies the block at index and returns the copy.
func (e *Editor) Duplicate(index int) (Block, error) {
	next, err := DuplicateAt(e.seq, index)
	if err != nil {
		return Block{}, err
	}
	e.seq = next
	dup := next[index+1]
	e.logger.Debug("blocks.duplicated", "source", next[index].ID, "id", dup.ID)
	return dup.Clone(), nil
}

// Move relocates the block at from to position to. It reports whether the
// sequence changed.
func (e *Editor) Move(from, to int) (bool, error) {
	next, err := MoveAt(e.seq, from, to)
	if err != nil {
		return false, err
	}
	moved := from != to && next.inRange(to)
	if moved {
		e.logger.Debug("blocks.moved", "id", next[to].ID, "from", from, "to", to)
	}
	e.seq = next
	return moved, nil
}

func (e *Editor) MoveUp(index int) (bool, error)   { return e.Move(index, index-1) }
func (e *Editor) MoveDown(index int) (bool, error) { return e.Move(index, index+1) }

// Reset replaces the sequence with a copy of seq.
func (e *Editor) Reset(seq Sequence) {
	e.seq = seq.Clone()
}
