// Package codec maps payload bytes to words and back under a word table
package codec

import (
	"fmt"

	"github.com/oyin-bo/lexigen/internal/words"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// VerifyPrefix is how many leading bytes the pipeline round-trips before rendering.
const VerifyPrefix = 10

// Encode replaces every byte of payload with its word. It is total:
// every byte value has an entry in a table.
func Encode(payload []byte, table *words.Table) []string {
	encoded := make([]string, len(payload))
	for i, b := range payload {
		encoded[i] = table.Word(b)
	}
	return encoded
}

// Index is the reverse lookup from word to byte value.
type Index map[string]byte

// NewIndex builds the reverse lookup for table.
func NewIndex(table *words.Table) Index {
	idx := make(Index, words.TableSize)
	for i, w := range table.Words() {
		idx[w] = byte(i)
	}
	return idx
}

// Lookup returns the byte for word and whether the word is in the table.
func (idx Index) Lookup(word string) (byte, bool) {
	b, ok := idx[word]
	return b, ok
}

// Decode reverses Encode. A word missing from the table is an error
// naming the word and its position.
func Decode(encoded []string, table *words.Table) ([]byte, error) {
	idx := NewIndex(table)
	out := make([]byte, len(encoded))
	for i, w := range encoded {
		b, ok := idx.Lookup(w)
		if !ok {
			return nil, errors.NewWithData(errors.InvalidInput,
				fmt.Sprintf("word %q at position %d is not in the table", w, i),
				map[string]int{"position": i})
		}
		out[i] = b
	}
	return out, nil
}

// Verify round-trips the first n positions of payload through the reverse
// lookup. Any mismatch means the table itself is broken, so it is reported
// as an internal error rather than bad input.
func Verify(payload []byte, encoded []string, table *words.Table, n int) error {
	if len(encoded) != len(payload) {
		return errors.Newf(errors.InternalError,
			"encoded length %d does not match payload length %d", len(encoded), len(payload))
	}
	if n > len(payload) {
		n = len(payload)
	}

	idx := NewIndex(table)
	for i := 0; i < n; i++ {
		got, ok := idx.Lookup(encoded[i])
		if !ok || got != payload[i] {
			return errors.NewWithData(errors.InternalError,
				fmt.Sprintf("round-trip mismatch at position %d: 0x%02x -> %q -> 0x%02x",
					i, payload[i], encoded[i], got),
				map[string]int{"position": i})
		}
	}
	return nil
}
