package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyin-bo/lexigen/internal/codec"
	"github.com/oyin-bo/lexigen/internal/logging"
	"github.com/oyin-bo/lexigen/internal/store"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// DecodeTool recovers a payload from a bundle written by encode.
type DecodeTool struct {
	logger *slog.Logger
}

// NewDecodeTool creates a new decode tool
func NewDecodeTool() *DecodeTool {
	return &DecodeTool{logger: logging.WithComponent("decode")}
}

// Name returns the tool name
func (t *DecodeTool) Name() string {
	return "decode"
}

// Description returns the tool description
func (t *DecodeTool) Description() string {
	return "Recover a payload from an encode bundle"
}

// Run decodes the bundle at bundlePath and writes the payload to output.
// It returns the number of bytes written.
func (t *DecodeTool) Run(ctx context.Context, bundlePath, output string) (int, error) {
	if bundlePath == "" {
		return 0, errors.New(errors.ConfigError, "bundle path is required")
	}
	if output == "" {
		return 0, errors.New(errors.ConfigError, "output path is required")
	}

	b, err := codec.ReadBundle(bundlePath)
	if err != nil {
		return 0, err
	}
	if b.Encoded == nil {
		t.logger.Warn("Bundle holds no encoded sequence; writing an empty payload", "bundle", bundlePath)
	}
	table, err := b.Table()
	if err != nil {
		return 0, err
	}

	payload, err := codec.Decode(b.Encoded, table)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, errors.InternalError, "decode cancelled")
	}

	if err := store.WriteAtomic(output, payload, 0644); err != nil {
		return 0, err
	}
	t.logger.Info("Decoded payload", "bundle", bundlePath, "path", output, "bytes", len(payload))
	return len(payload), nil
}

// FormatDecodeResult renders the summary printed after decoding.
func FormatDecodeResult(output string, n int) string {
	return fmt.Sprintf("Wrote %d bytes to %s", n, output)
}
