package blocks

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	indexOutOfRangeCode    = "BLOCK_INDEX_OUT_OF_RANGE"
	fieldNotApplicableCode = "BLOCK_FIELD_NOT_APPLICABLE"
	unknownKindCode        = "BLOCK_UNKNOWN_KIND"
)

var (
	// ErrIndexOutOfRange is returned when an operation targets a position
	// outside the sequence. The sequence is returned unchanged.
	ErrIndexOutOfRange = errors.New("blocks: index out of range")
	// ErrFieldNotApplicable is returned when an update names a field the
	// block variant does not have.
	ErrFieldNotApplicable = errors.New("blocks: field not applicable to block type")
	// ErrUnknownKind is returned for block types other than paragraph and image.
	ErrUnknownKind = errors.New("blocks: unknown block type")
)

func indexOutOfRange(op string, index, length int) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s index %d, length %d", ErrIndexOutOfRange, op, index, length),
		goerrors.CategoryValidation, "block index out of range").
		WithTextCode(indexOutOfRangeCode).
		WithMetadata(map[string]any{"operation": op, "index": index, "length": length})
}

func fieldNotApplicable(kind Kind, keys []string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s on %s", ErrFieldNotApplicable, strings.Join(keys, ", "), kind),
		goerrors.CategoryValidation, "block field not applicable").
		WithTextCode(fieldNotApplicableCode)
}

func unknownKind(kind Kind) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownKind, kind),
		goerrors.CategoryValidation, "unknown block type").
		WithTextCode(unknownKindCode)
}
