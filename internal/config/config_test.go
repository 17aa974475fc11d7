package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LEXIGEN_WORD_LENGTH", "")
	t.Setenv("LEXIGEN_VERIFY_PREFIX", "")
	t.Setenv("LEXIGEN_CHUNK_SIZE", "")

	cfg := LoadConfig()
	if cfg.WordLength != 6 {
		t.Errorf("WordLength = %d, want 6", cfg.WordLength)
	}
	if cfg.VerifyPrefix != 10 {
		t.Errorf("VerifyPrefix = %d, want 10", cfg.VerifyPrefix)
	}
	if _, ok := cfg.ChunkSizeFor("cpp"); ok {
		t.Error("no chunk size should be configured by default")
	}
}

func TestLoadConfigEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{"word length", "LEXIGEN_WORD_LENGTH", "8", func(c *Config) bool { return c.WordLength == 8 }},
		{"verify prefix", "LEXIGEN_VERIFY_PREFIX", "4", func(c *Config) bool { return c.VerifyPrefix == 4 }},
		{"chunk size", "LEXIGEN_CHUNK_SIZE", "40", func(c *Config) bool { return c.ChunkSize == 40 }},
		{"invalid falls back", "LEXIGEN_WORD_LENGTH", "six", func(c *Config) bool { return c.WordLength == 6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if cfg := LoadConfig(); !tt.check(cfg) {
				t.Errorf("unexpected config for %s=%s: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("LEXIGEN_CHUNK_SIZE", "30")
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[words]
source = "words.txt"
length = 5

[encode]
verify-prefix = 3
seed = 42

[dialects.cpp]
chunk-size = 10

[dialects.rust]
chunk-size = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.WordSource != filepath.Join(dir, "words.txt") {
		t.Errorf("WordSource = %q, want it resolved next to the file", cfg.WordSource)
	}
	if cfg.WordLength != 5 || cfg.VerifyPrefix != 3 || cfg.Seed != 42 {
		t.Errorf("unexpected values: %+v", cfg)
	}

	sizes := []struct {
		dialect string
		want    int
	}{
		{"cpp", 10},
		{"rust", 0},
		{"go", 30},
	}
	for _, s := range sizes {
		got, ok := cfg.ChunkSizeFor(s.dialect)
		if !ok || got != s.want {
			t.Errorf("ChunkSizeFor(%s) = %d, %v; want %d", s.dialect, got, ok, s.want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"syntax", "[words\nsource=", errors.ConfigError},
		{"zero length", "[words]\nlength = 0", errors.ConfigError},
		{"negative prefix", "[encode]\nverify-prefix = -1", errors.ConfigError},
		{"zero prefix", "[encode]\nverify-prefix = 0", errors.ConfigError},
		{"negative chunk", "[dialects.cpp]\nchunk-size = -2", errors.ConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); !errors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}

	t.Run("zero prefix from env", func(t *testing.T) {
		t.Setenv("LEXIGEN_VERIFY_PREFIX", "0")
		path := filepath.Join(dir, "empty.toml")
		writeFile(t, path, "")
		if _, err := Load(path); !errors.Is(err, errors.ConfigError) {
			t.Errorf("expected config error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.toml")); !errors.Is(err, errors.IOError) {
			t.Errorf("expected IO error, got %v", err)
		}
	})
}

func TestFindFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(root, "a", FileName)
	writeFile(t, path, "[words]\nrandom = true\n")

	got, err := FindFile(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("FindFile = %q, want %q", got, path)
	}
}
