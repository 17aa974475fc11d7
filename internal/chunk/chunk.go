// Package chunk splits encoded word sequences into bounded groups so that
// rendered literals stay under per-dialect toolchain limits.
package chunk

// DefaultSize is the historical limit for the C++ dialect.
const DefaultSize = 25

// Split partitions seq into consecutive chunks of at most max words,
// preserving order; only the last chunk may be shorter. An empty seq has
// no chunks. max <= 0 disables chunking and yields one chunk.
//
// Chunks share seq's backing array but are capacity-limited, so appending
// to one never overwrites its neighbour.
func Split(seq []string, max int) [][]string {
	if len(seq) == 0 {
		return nil
	}
	if max <= 0 || max >= len(seq) {
		return [][]string{seq[:len(seq):len(seq)]}
	}

	chunks := make([][]string, 0, (len(seq)+max-1)/max)
	for start := 0; start < len(seq); start += max {
		end := start + max
		if end > len(seq) {
			end = len(seq)
		}
		chunks = append(chunks, seq[start:end:end])
	}
	return chunks
}

// Join concatenates chunks back into one sequence.
func Join(chunks [][]string) []string {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	out := make([]string, 0, n)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
