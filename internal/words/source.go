package words

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

// maxLineBytes bounds a single word-list line.
const maxLineBytes = 1 << 20

// Pool is a deduplicated, unordered set of candidate words.
type Pool map[string]struct{}

// Add inserts w; duplicates are absorbed.
func (p Pool) Add(w string) {
	p[w] = struct{}{}
}

// Len reports the number of unique candidates.
func (p Pool) Len() int {
	return len(p)
}

// Sorted returns the candidates in lexical order so that sampling with a
// seeded source is reproducible regardless of map iteration order.
func (p Pool) Sorted() []string {
	out := make([]string, 0, len(p))
	for w := range p {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Source produces a candidate pool.
type Source interface {
	// Name describes the strategy for diagnostics.
	Name() string
	// Candidates returns the deduplicated pool.
	Candidates() (Pool, error)
}

// DefaultDirectory returns the system binaries directory used when no
// word source is configured.
func DefaultDirectory() string {
	if runtime.GOOS == "windows" {
		return `C:\Windows\System32`
	}
	return "/usr/bin"
}

// DirectorySource takes candidates from the regular files in Dir.
type DirectorySource struct {
	Dir string
}

// Name implements Source
func (s *DirectorySource) Name() string {
	return "directory:" + s.Dir
}

// Candidates returns each regular file's name with its extension stripped.
// Names are NFC-normalized; non-UTF-8 names are skipped.
func (s *DirectorySource) Candidates() (Pool, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.IOError, fmt.Sprintf("cannot read word directory %s", s.Dir))
	}

	pool := make(Pool)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if !utf8.ValidString(name) {
			continue
		}
		pool.Add(norm.NFC.String(stem(name)))
	}
	return pool, nil
}

// stem strips the last extension; dotfiles keep their full name.
func stem(name string) string {
	s := strings.TrimSuffix(name, filepath.Ext(name))
	if s == "" {
		return name
	}
	return s
}

// ListFileSource takes one candidate per line of Path.
type ListFileSource struct {
	Path string
}

// Name implements Source
func (s *ListFileSource) Name() string {
	return "list:" + s.Path
}

// Candidates reads lines verbatim apart from their separators.
// Blank lines are candidates too.
func (s *ListFileSource) Candidates() (Pool, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.IOError, fmt.Sprintf("cannot open word list %s", s.Path))
	}
	defer f.Close()

	pool := make(Pool)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		pool.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.IOError, fmt.Sprintf("cannot read word list %s", s.Path))
	}
	return pool, nil
}

// RandomSource synthesizes Count words of Length random lowercase letters.
type RandomSource struct {
	Length int
	Count  int
	Rand   *rand.Rand
}

// Name implements Source
func (s *RandomSource) Name() string {
	return fmt.Sprintf("random:%dx%d", s.Count, s.Length)
}

// Candidates generates the words and deduplicates them. Collisions are
// not regenerated, so the pool may come back short.
func (s *RandomSource) Candidates() (Pool, error) {
	if s.Length <= 0 {
		return nil, errors.Newf(errors.ConfigError, "random word length must be positive, got %d", s.Length)
	}
	count := s.Count
	if count <= 0 {
		count = TableSize
	}

	pool := make(Pool, count)
	buf := make([]byte, s.Length)
	for i := 0; i < count; i++ {
		for j := range buf {
			buf[j] = byte('a' + s.Rand.IntN(26))
		}
		pool.Add(string(buf))
	}
	return pool, nil
}

// Resolve picks the strategy for the given options. An override path is
// inspected: directories use DirectorySource, anything else ListFileSource.
// Combining random with an override is a configuration error.
func Resolve(override string, random bool, wordLength int, rng *rand.Rand) (Source, error) {
	if random && override != "" {
		return nil, errors.New(errors.ConfigError, "cannot use both --random and --wordlist")
	}

	if random {
		return &RandomSource{Length: wordLength, Count: TableSize, Rand: rng}, nil
	}

	if override == "" {
		return &DirectorySource{Dir: DefaultDirectory()}, nil
	}

	info, err := os.Stat(override)
	if err != nil {
		return nil, errors.Wrap(err, errors.IOError, fmt.Sprintf("cannot access word source %s", override))
	}
	if info.IsDir() {
		return &DirectorySource{Dir: override}, nil
	}
	return &ListFileSource{Path: override}, nil
}
