// Package config provides configuration management
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/oyin-bo/lexigen/internal/codec"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "lexigen.toml"

// Config holds application configuration
type Config struct {
	// Word source settings
	WordSource string
	Random     bool
	WordLength int

	// Encode settings
	VerifyPrefix int
	Seed         uint64

	// ChunkSize applies to every dialect when >= 0; -1 keeps dialect defaults.
	ChunkSize int
	// DialectChunkSizes overrides ChunkSize per dialect.
	DialectChunkSizes map[string]int

	// Path of the file the settings were read from, empty if none.
	Path string
}

// File is the on-disk shape of lexigen.toml.
type File struct {
	Words    WordsSection             `toml:"words"`
	Encode   EncodeSection            `toml:"encode"`
	Dialects map[string]DialectConfig `toml:"dialects"`
}

// WordsSection configures where table words come from.
type WordsSection struct {
	Source string `toml:"source"`
	Random *bool  `toml:"random"`
	Length *int   `toml:"length"`
}

// EncodeSection configures the encode pipeline.
type EncodeSection struct {
	VerifyPrefix *int    `toml:"verify-prefix"`
	Seed         *uint64 `toml:"seed"`
}

// DialectConfig holds per-dialect settings.
type DialectConfig struct {
	ChunkSize *int `toml:"chunk-size"`
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		WordLength:        getEnvInt("LEXIGEN_WORD_LENGTH", 6),
		VerifyPrefix:      getEnvInt("LEXIGEN_VERIFY_PREFIX", codec.VerifyPrefix),
		ChunkSize:         getEnvInt("LEXIGEN_CHUNK_SIZE", -1),
		DialectChunkSizes: map[string]int{},
	}
}

// Load builds the configuration from the environment, then overlays the
// file at path. An empty path looks for lexigen.toml from the working
// directory upwards; finding none is not an error.
func Load(path string) (*Config, error) {
	cfg := LoadConfig()

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.IOError, "Failed to determine working directory")
		}
		found, err := FindFile(wd)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return cfg, cfg.Validate()
		}
		path = found
	}

	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Apply(f)
	cfg.Path = path
	return cfg, cfg.Validate()
}

// FindFile walks up from startDir looking for lexigen.toml and returns its
// path, or "" when the filesystem root is reached without finding one.
func FindFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.IOError, "Failed to resolve directory")
	}

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", nil
		}
		dir = parent
	}
}

// ReadFile parses a configuration file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.IOError, "Failed to read configuration file "+path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ConfigError, "Failed to parse configuration file "+path)
	}

	// Relative word sources are relative to the file, not the caller.
	if f.Words.Source != "" && !filepath.IsAbs(f.Words.Source) {
		f.Words.Source = filepath.Join(filepath.Dir(path), f.Words.Source)
	}
	return &f, nil
}

// Apply overlays the values set in f.
func (c *Config) Apply(f *File) {
	if f.Words.Source != "" {
		c.WordSource = f.Words.Source
	}
	if f.Words.Random != nil {
		c.Random = *f.Words.Random
	}
	if f.Words.Length != nil {
		c.WordLength = *f.Words.Length
	}
	if f.Encode.VerifyPrefix != nil {
		c.VerifyPrefix = *f.Encode.VerifyPrefix
	}
	if f.Encode.Seed != nil {
		c.Seed = *f.Encode.Seed
	}
	if c.DialectChunkSizes == nil {
		c.DialectChunkSizes = map[string]int{}
	}
	for name, d := range f.Dialects {
		if d.ChunkSize != nil {
			c.DialectChunkSizes[name] = *d.ChunkSize
		}
	}
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	if c.WordLength < 1 {
		return errors.NewWithData(errors.ConfigError, "word length must be at least 1",
			map[string]int{"wordLength": c.WordLength})
	}
	if c.VerifyPrefix < 1 {
		return errors.NewWithData(errors.ConfigError, "verify prefix must be at least 1",
			map[string]int{"verifyPrefix": c.VerifyPrefix})
	}
	for name, size := range c.DialectChunkSizes {
		if size < 0 {
			return errors.NewWithData(errors.ConfigError, "chunk size cannot be negative",
				map[string]interface{}{"dialect": name, "chunkSize": size})
		}
	}
	return nil
}

// ChunkSizeFor returns the chunk size configured for a dialect, and false
// when the dialect's own default applies.
func (c *Config) ChunkSizeFor(dialect string) (int, bool) {
	if size, ok := c.DialectChunkSizes[dialect]; ok {
		return size, true
	}
	if c.ChunkSize >= 0 {
		return c.ChunkSize, true
	}
	return 0, false
}

// getEnvInt gets an int from environment or returns default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
