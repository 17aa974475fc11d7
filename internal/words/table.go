// Package words builds the 256-entry word table that stands in for byte values
package words

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

// TableSize is the number of entries in a word table, one per byte value.
const TableSize = 256

// previewCount is how many selected words are reported after a build.
const previewCount = 5

// Table is an immutable mapping from byte value to word.
// Position i holds the word encoding byte value i.
type Table struct {
	words [TableSize]string
}

// NewTable validates words and returns a table over them.
// It fails unless there are exactly TableSize pairwise distinct entries.
func NewTable(words []string) (*Table, error) {
	if len(words) != TableSize {
		return nil, errors.NewWithData(errors.CardinalityError,
			fmt.Sprintf("word table needs exactly %d words, got %d", TableSize, len(words)),
			map[string]int{"count": len(words)})
	}

	t := &Table{}
	seen := make(map[string]int, TableSize)
	for i, w := range words {
		if prev, dup := seen[w]; dup {
			return nil, errors.Newf(errors.InternalError,
				"duplicate word %q at positions %d and %d", w, prev, i)
		}
		seen[w] = i
		t.words[i] = w
	}
	return t, nil
}

// Word returns the word standing in for byte b.
func (t *Table) Word(b byte) string {
	return t.words[b]
}

// Words returns a copy of the table in byte order.
func (t *Table) Words() []string {
	out := make([]string, TableSize)
	copy(out, t.words[:])
	return out
}

// Len is always TableSize; it exists for symmetry with slices in templates.
func (t *Table) Len() int {
	return TableSize
}

// BuildTable samples a table from pool: the candidates are put in a
// canonical order, shuffled with rng and truncated to TableSize.
// A pool with fewer than TableSize candidates is a cardinality error.
func BuildTable(pool Pool, rng *rand.Rand, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	count := pool.Len()
	logger.Info("Collected candidate words", "unique", count)

	if count < TableSize {
		return nil, errors.NewWithData(errors.CardinalityError,
			fmt.Sprintf("found %d unique words, need at least %d", count, TableSize),
			map[string]int{"count": count})
	}

	candidates := pool.Sorted()
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	table, err := NewTable(candidates[:TableSize])
	if err != nil {
		return nil, err
	}

	preview := make([]string, 0, previewCount)
	for i := 0; i < previewCount; i++ {
		preview = append(preview, fmt.Sprintf("%d=%s", i, table.Word(byte(i))))
	}
	logger.Info("Selected word table", "size", TableSize, "first", preview)

	return table, nil
}
