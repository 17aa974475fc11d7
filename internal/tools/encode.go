// Package tools implements the lexigen commands
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/oyin-bo/lexigen/internal/codec"
	"github.com/oyin-bo/lexigen/internal/config"
	"github.com/oyin-bo/lexigen/internal/dialect"
	"github.com/oyin-bo/lexigen/internal/logging"
	"github.com/oyin-bo/lexigen/internal/store"
	"github.com/oyin-bo/lexigen/internal/words"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// EncodeRequest holds the options of one encode run. Zero values mean
// "use the configured default"; ChunkSize uses -1 for that.
type EncodeRequest struct {
	Input      string
	Output     string
	Dialect    string
	WordSource string
	Random     bool
	Seed       uint64
	WordLength int
	ChunkSize  int
	BundleOut  string
	TableIn    string
	ConfigPath string
}

// EncodeResult describes a finished encode run.
type EncodeResult struct {
	Output string
	Bundle string
	Seed   uint64
	Source string
	Meta   dialect.Metadata
}

// EncodeTool runs the encode pipeline: word source, table, encode,
// verify, render and write.
type EncodeTool struct {
	logger *slog.Logger
}

// NewEncodeTool creates a new encode tool
func NewEncodeTool() *EncodeTool {
	return &EncodeTool{logger: logging.WithComponent("encode")}
}

// Name returns the tool name
func (t *EncodeTool) Name() string {
	return "encode"
}

// Description returns the tool description
func (t *EncodeTool) Description() string {
	return "Encode a payload as words and render it as source text"
}

// Run executes the pipeline. Nothing is written unless every step before
// the write succeeds.
func (t *EncodeTool) Run(ctx context.Context, req EncodeRequest) (*EncodeResult, error) {
	if strings.TrimSpace(req.Input) == "" {
		return nil, errors.New(errors.ConfigError, "input path is required")
	}
	if strings.TrimSpace(req.Output) == "" {
		return nil, errors.New(errors.ConfigError, "output path is required")
	}
	if req.BundleOut != "" && sameFile(req.BundleOut, req.Output) {
		return nil, errors.New(errors.ConfigError, "bundle and output paths must differ")
	}

	cfg, err := config.Load(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyRequest(cfg, req)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// flags and lexigen.toml both count: a bundle table ignores any source
	if req.TableIn != "" && (cfg.WordSource != "" || cfg.Random) {
		return nil, errors.New(errors.ConfigError,
			"cannot combine --table-in with a word list or random words (from flags or "+config.FileName+")")
	}
	if cfg.Path != "" {
		t.logger.Debug("Loaded configuration", "path", cfg.Path)
	}

	d, err := dialect.Lookup(req.Dialect)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	table, sourceName, err := t.loadTable(ctx, cfg, req.TableIn, rng)
	if err != nil {
		return nil, err
	}
	t.logger.Info("Word table ready", "source", sourceName, "seed", seed)

	payload, err := store.ReadPayload(req.Input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.InternalError, "encode cancelled")
	}

	encoded := codec.Encode(payload, table)
	if err := codec.Verify(payload, encoded, table, cfg.VerifyPrefix); err != nil {
		return nil, err
	}
	t.logger.Debug("Encoded payload", "bytes", len(payload), "verified", min(cfg.VerifyPrefix, len(payload)))

	var opts []dialect.Option
	if req.ChunkSize >= 0 {
		opts = append(opts, dialect.WithChunkSize(req.ChunkSize))
	} else if size, ok := cfg.ChunkSizeFor(d.Name); ok {
		opts = append(opts, dialect.WithChunkSize(size))
	}

	res, err := d.Render(encoded, table, opts...)
	if err != nil {
		return nil, err
	}

	// The output goes last so it only changes once everything else is in place.
	var files []store.File
	if req.BundleOut != "" {
		data, err := codec.MarshalBundle(codec.NewBundle(table, encoded))
		if err != nil {
			return nil, err
		}
		files = append(files, store.File{Path: req.BundleOut, Data: data, Perm: 0644})
	}
	files = append(files, store.File{Path: req.Output, Data: []byte(res.Text), Perm: 0644})
	if err := store.WriteAllAtomic(files...); err != nil {
		return nil, err
	}

	t.logger.Info("Wrote output",
		"path", req.Output,
		"dialect", res.Meta.Dialect,
		"tokens", res.Meta.Tokens,
		"chunks", res.Meta.Chunks)
	for _, w := range res.Meta.Warnings {
		t.logger.Warn(w, "dialect", res.Meta.Dialect)
	}

	return &EncodeResult{
		Output: req.Output,
		Bundle: req.BundleOut,
		Seed:   seed,
		Source: sourceName,
		Meta:   res.Meta,
	}, nil
}

func (t *EncodeTool) loadTable(ctx context.Context, cfg *config.Config, tableIn string, rng *rand.Rand) (*words.Table, string, error) {
	if tableIn != "" {
		b, err := codec.ReadBundle(tableIn)
		if err != nil {
			return nil, "", err
		}
		table, err := b.Table()
		if err != nil {
			return nil, "", err
		}
		return table, "bundle:" + tableIn, nil
	}

	src, err := words.Resolve(cfg.WordSource, cfg.Random, cfg.WordLength, rng)
	if err != nil {
		return nil, "", err
	}
	pool, err := src.Candidates()
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", errors.Wrap(err, errors.InternalError, "encode cancelled")
	}

	table, err := words.BuildTable(pool, rng, t.logger)
	if err != nil {
		return nil, "", err
	}
	return table, src.Name(), nil
}

// applyRequest overlays command-line options on the loaded configuration.
// A word source given on the command line replaces the configured one, so
// only flags (or only the file) can produce the random/wordlist conflict.
func applyRequest(cfg *config.Config, req EncodeRequest) {
	switch {
	case req.WordSource != "" && req.Random:
		cfg.WordSource = req.WordSource
		cfg.Random = true
	case req.WordSource != "":
		cfg.WordSource = req.WordSource
		cfg.Random = false
	case req.Random:
		cfg.WordSource = ""
		cfg.Random = true
	}
	if req.WordLength != 0 {
		cfg.WordLength = req.WordLength
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// FormatEncodeResult renders the summary printed after a successful run.
func FormatEncodeResult(r *EncodeResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %s (%s, %d tokens", r.Output, r.Meta.Dialect, r.Meta.Tokens)
	if r.Meta.Chunks > 0 {
		fmt.Fprintf(&sb, " in %d chunks of at most %d", r.Meta.Chunks, r.Meta.ChunkSize)
	}
	sb.WriteString(")\n")
	fmt.Fprintf(&sb, "Table: %s, seed %d\n", r.Source, r.Seed)
	if r.Bundle != "" {
		fmt.Fprintf(&sb, "Bundle: %s\n", r.Bundle)
	}
	for _, h := range r.Meta.BuildHints {
		fmt.Fprintf(&sb, "Build: %s\n", h)
	}
	for _, w := range r.Meta.Warnings {
		fmt.Fprintf(&sb, "Warning: %s\n", w)
	}
	return strings.TrimRight(sb.String(), "\n")
}
