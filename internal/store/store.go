// Package store reads payloads and writes generated files atomically
package store

import (
	"os"
	"path/filepath"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

// ReadPayload reads the whole input file. An empty file is a valid payload.
func ReadPayload(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New(errors.ConfigError, "input path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithData(errors.IOError, "Input file not found", map[string]string{"path": path})
		}
		return nil, errors.Wrap(err, errors.IOError, "Failed to read input file")
	}
	return data, nil
}

// File is one file to write with WriteAllAtomic.
type File struct {
	Path string
	Data []byte
	Perm os.FileMode
}

// WriteAtomic writes data to path through a temporary file in the same
// directory, so a failed write never leaves a partial file at path.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	return WriteAllAtomic(File{Path: path, Data: data, Perm: perm})
}

// WriteAllAtomic stages every file before moving any into place, so a
// failed write leaves all existing targets untouched. Files are renamed
// in order; the last one is the last to change.
func WriteAllAtomic(files ...File) error {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	for i, f := range files {
		// Atomic rename
		if err := os.Rename(staged[i], f.Path); err != nil {
			staged = staged[i:]
			cleanup()
			return errors.Wrap(err, errors.IOError, "Failed to move output file into place")
		}
	}
	return nil
}

// stage writes a file's data to a synced temporary file next to its path.
func stage(f File) (string, error) {
	if f.Path == "" {
		return "", errors.New(errors.ConfigError, "output path cannot be empty")
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, errors.IOError, "Failed to create output directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, errors.IOError, "Failed to create temporary file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath) // Cleanup on failure
		return "", errors.Wrap(err, errors.IOError, "Failed to write output file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.IOError, "Failed to flush output file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.IOError, "Failed to close output file")
	}
	if err := os.Chmod(tmpPath, f.Perm); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, errors.IOError, "Failed to set output file mode")
	}
	return tmpPath, nil
}
