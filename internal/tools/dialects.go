package tools

import (
	"fmt"
	"strings"

	"github.com/oyin-bo/lexigen/internal/config"
	"github.com/oyin-bo/lexigen/internal/dialect"
)

// DialectInfo summarises one dialect for listing.
type DialectInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Extension   string   `json:"extension"`
	ChunkSize   int      `json:"chunkSize"`
	BuildHints  []string `json:"buildHints,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ListDialects returns every dialect with the chunk size cfg would apply.
// A nil cfg reports the built-in defaults.
func ListDialects(cfg *config.Config) []DialectInfo {
	var out []DialectInfo
	for _, d := range dialect.All() {
		size := d.ChunkSize
		if cfg != nil {
			if s, ok := cfg.ChunkSizeFor(d.Name); ok {
				size = s
			}
		}
		out = append(out, DialectInfo{
			Name:        d.Name,
			Description: d.Description,
			Extension:   d.Extension,
			ChunkSize:   size,
			BuildHints:  d.BuildHints,
			Warnings:    d.Warnings,
		})
	}
	return out
}

// FormatDialects renders the dialect list as markdown.
func FormatDialects(list []DialectInfo) string {
	var sb strings.Builder
	sb.WriteString("# Dialects\n")
	for _, d := range list {
		fmt.Fprintf(&sb, "\n## %s (%s)\n\n%s\n", d.Name, d.Extension, d.Description)
		if d.ChunkSize > 0 {
			fmt.Fprintf(&sb, "- Chunks: at most %d words each\n", d.ChunkSize)
		} else {
			sb.WriteString("- Chunks: none\n")
		}
		for _, h := range d.BuildHints {
			fmt.Fprintf(&sb, "- Build: %s\n", h)
		}
		for _, w := range d.Warnings {
			fmt.Fprintf(&sb, "- **Warning:** %s\n", w)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
