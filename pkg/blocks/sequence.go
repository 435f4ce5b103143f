package blocks

// Sequence is the ordered block list of one language. Order is rendering
// order. The functions below never mutate their input.
type Sequence []Block

// Clone deep-copies every block.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return Sequence{}
	}
	out := make(Sequence, len(s))
	for i, b := range s {
		out[i] = b.Clone()
	}
	return out
}

// IndexOf returns the position of the block with id, or -1.
func (s Sequence) IndexOf(id string) int {
	for i, b := range s {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s Sequence) inRange(i int) bool {
	return i >= 0 && i < len(s)
}

// Append adds a new block of kind at the end.
func Append(seq Sequence, kind Kind, fields Fields) (Sequence, error) {
	b, err := New(kind, fields)
	if err != nil {
		return seq.Clone(), err
	}
	return append(seq.Clone(), b), nil
}

// UpdateAt merges fields into the block at index. The type tag and every
// other block are left as they are.
func UpdateAt(seq Sequence, index int, fields Fields) (Sequence, error) {
	out := seq.Clone()
	if !seq.inRange(index) {
		return out, indexOutOfRange("update", index, len(seq))
	}
	updated := out[index].Clone()
	if err := updated.apply(fields); err != nil {
		return out, err
	}
	out[index] = updated
	return out, nil
}

// RemoveAt drops the block at index.
func RemoveAt(seq Sequence, index int) (Sequence, error) {
	if !seq.inRange(index) {
		return seq.Clone(), indexOutOfRange("remove", index, len(seq))
	}
	out := make(Sequence, 0, len(seq)-1)
	for i, b := range seq {
		if i != index {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

// DuplicateAt inserts an independent copy of the block at index right after
// it. The copy gets a fresh ID.
func DuplicateAt(seq Sequence, index int) (Sequence, error) {
	if !seq.inRange(index) {
		return seq.Clone(), indexOutOfRange("duplicate", index, len(seq))
	}
	dup := seq[index].Clone()
	dup.ID = newID()

	out := make(Sequence, 0, len(seq)+1)
	for i, b := range seq {
		out = append(out, b.Clone())
		if i == index {
			out = append(out, dup)
		}
	}
	return out, nil
}

// MoveAt relocates the block at from to position to, shifting the blocks in
// between. A to outside the sequence is a no-op, which covers "move up" on
// the first block and "move down" on the last one.
func MoveAt(seq Sequence, from, to int) (Sequence, error) {
	out := seq.Clone()
	if !seq.inRange(from) {
		return out, indexOutOfRange("move", from, len(seq))
	}
	if !seq.inRange(to) || from == to {
		return out, nil
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}
