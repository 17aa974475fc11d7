// Package dialect renders an encoded word sequence and its table as
// source text for one of a fixed set of target languages.
//
// Every dialect is a row of data: how to quote a word, how to declare the
// sequence inline or as chunks, how to merge chunks, and a body template.
// The generated program rebuilds the sequence, reverses the substitution
// and writes the recovered bytes out.
package dialect

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/oyin-bo/lexigen/internal/chunk"
	"github.com/oyin-bo/lexigen/internal/words"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var bodies = template.Must(template.New("").Delims("<<", ">>").ParseFS(templateFS, "templates/*.tmpl"))

// Dialect describes one output language.
type Dialect struct {
	Name        string
	Description string
	Extension   string
	// ChunkSize is the default maximum words per declared chunk; 0 renders
	// the sequence as a single literal.
	ChunkSize int
	// BuildHints are the post-conditions for building or running the output.
	BuildHints []string
	Warnings   []string
	// Unicode dialects hold words as Unicode strings, so words must be valid UTF-8.
	Unicode bool

	quote  func(string) string
	indent string
	// fmt formats; %[1]d is the chunk index, %[2]s (or %s) the joined items
	inline    string
	part      string
	mergeHead string
	mergeLine string
	body      string

	build func(d *Dialect, in *input) (string, error)
}

// Metadata describes a rendered output without being part of it.
type Metadata struct {
	Dialect    string   `json:"dialect"`
	Extension  string   `json:"extension"`
	Tokens     int      `json:"tokens"`
	Chunks     int      `json:"chunks"`
	ChunkSize  int      `json:"chunkSize"`
	BuildHints []string `json:"buildHints,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Result is rendered source text plus its metadata.
type Result struct {
	Text string
	Meta Metadata
}

// Option adjusts a single render.
type Option func(*renderOptions)

type renderOptions struct {
	chunkSize    int
	hasChunkSize bool
}

// WithChunkSize overrides the dialect's chunk size; 0 disables chunking.
func WithChunkSize(size int) Option {
	return func(o *renderOptions) {
		if size < 0 {
			size = 0
		}
		o.chunkSize = size
		o.hasChunkSize = true
	}
}

// input is what a dialect renders: raw words, before any quoting.
type input struct {
	Words   []string
	Encoded []string
	Chunks  [][]string
	Chunked bool
}

// view is the data handed to body templates.
type view struct {
	Words string
	Decls string
	Setup string
	Count int
}

var registry = map[string]*Dialect{}

func register(d *Dialect) {
	if _, dup := registry[d.Name]; dup {
		panic("dialect registered twice: " + d.Name)
	}
	registry[d.Name] = d
}

// Names lists the known dialects in lexical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the known dialects in lexical order.
func All() []*Dialect {
	out := make([]*Dialect, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}

// Lookup finds a dialect by name.
func Lookup(name string) (*Dialect, error) {
	d, ok := registry[name]
	if !ok {
		return nil, errors.NewWithData(errors.UnsupportedDialect,
			fmt.Sprintf("unsupported dialect %q (known: %s)", name, strings.Join(Names(), ", ")),
			map[string]string{"dialect": name})
	}
	return d, nil
}

// Render produces source text for the named dialect. The dialect is
// checked before any other work is done.
func Render(name string, encoded []string, table *words.Table, opts ...Option) (*Result, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return d.Render(encoded, table, opts...)
}

// Render produces source text for this dialect.
func (d *Dialect) Render(encoded []string, table *words.Table, opts ...Option) (*Result, error) {
	o := renderOptions{chunkSize: d.ChunkSize}
	for _, opt := range opts {
		opt(&o)
	}

	tableWords := table.Words()
	if d.Unicode {
		// encoded draws only from the table, so checking the table is enough
		for i, w := range tableWords {
			if !utf8.ValidString(w) {
				return nil, errors.Newf(errors.InvalidInput,
					"word %q (byte 0x%02x) is not valid UTF-8 and cannot be written as a %s string", w, i, d.Name)
			}
		}
	}

	in := &input{
		Words:   tableWords,
		Encoded: encoded,
		Chunked: o.chunkSize > 0,
	}
	if in.Chunked {
		in.Chunks = chunk.Split(encoded, o.chunkSize)
	}

	var (
		text string
		err  error
	)
	if d.build != nil {
		text, err = d.build(d, in)
	} else {
		text, err = d.renderTemplate(in)
	}
	if err != nil {
		return nil, err
	}

	chunks := 0
	if in.Chunked {
		chunks = len(in.Chunks)
	}
	return &Result{
		Text: text,
		Meta: Metadata{
			Dialect:    d.Name,
			Extension:  d.Extension,
			Tokens:     len(encoded),
			Chunks:     chunks,
			ChunkSize:  o.chunkSize,
			BuildHints: append([]string(nil), d.BuildHints...),
			Warnings:   append([]string(nil), d.Warnings...),
		},
	}, nil
}

func (d *Dialect) renderTemplate(in *input) (string, error) {
	v := view{
		Words: d.list(in.Words),
		Count: len(in.Encoded),
	}

	if in.Chunked {
		decls := make([]string, 0, len(in.Chunks))
		setup := []string{d.mergeHead}
		for i, c := range in.Chunks {
			decls = append(decls, fmt.Sprintf(d.part, i, d.list(c)))
			setup = append(setup, fmt.Sprintf(d.mergeLine, i))
		}
		v.Decls = strings.Join(decls, "\n")
		v.Setup = strings.Join(setup, "\n"+d.indent)
	} else {
		v.Setup = fmt.Sprintf(d.inline, d.list(in.Encoded))
	}

	var buf bytes.Buffer
	if err := bodies.ExecuteTemplate(&buf, d.body, v); err != nil {
		return "", errors.Wrap(err, errors.InternalError, fmt.Sprintf("cannot render %s template", d.Name))
	}
	return buf.String(), nil
}

// list quotes items and joins them as literal elements.
func (d *Dialect) list(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = d.quote(s)
	}
	return strings.Join(quoted, ", ")
}
