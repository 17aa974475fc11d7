package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oyin-bo/lexigen/pkg/errors"
)

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()

	t.Run("Binary", func(t *testing.T) {
		path := filepath.Join(dir, "payload.bin")
		want := []byte{0, 255, 10, 13, 0}
		if err := os.WriteFile(path, want, 0644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadPayload(path)
		if err != nil {
			t.Fatalf("ReadPayload: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.bin")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
		got, err := ReadPayload(path)
		if err != nil {
			t.Fatalf("ReadPayload: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty payload, got %d bytes", len(got))
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ReadPayload(filepath.Join(dir, "missing.bin"))
		if !errors.Is(err, errors.IOError) {
			t.Errorf("expected IO error, got %v", err)
		}
	})

	t.Run("NoPath", func(t *testing.T) {
		_, err := ReadPayload("")
		if !errors.Is(err, errors.ConfigError) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()

	t.Run("CreatesAndReplaces", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "out.cpp")
		if err := WriteAtomic(path, []byte("first"), 0644); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		if err := WriteAtomic(path, []byte("second"), 0644); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "second" {
			t.Errorf("got %q, want %q", got, "second")
		}
	})

	t.Run("NoTemporaryFilesLeft", func(t *testing.T) {
		sub := filepath.Join(dir, "clean")
		if err := WriteAtomic(filepath.Join(sub, "a.rs"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(sub)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "a.rs" {
			t.Errorf("unexpected directory contents: %v", entries)
		}
	})

	t.Run("TargetIsDirectory", func(t *testing.T) {
		target := filepath.Join(dir, "isdir")
		if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
			t.Fatal(err)
		}
		err := WriteAtomic(target, []byte("x"), 0644)
		if !errors.Is(err, errors.IOError) {
			t.Fatalf("expected IO error, got %v", err)
		}
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".tmp" {
				t.Errorf("temporary file left behind: %s", e.Name())
			}
		}
	})

	t.Run("NoPath", func(t *testing.T) {
		if err := WriteAtomic("", []byte("x"), 0644); !errors.Is(err, errors.ConfigError) {
			t.Errorf("expected config error, got %v", err)
		}
	})
}

func TestWriteAllAtomic(t *testing.T) {
	t.Run("WritesEveryFile", func(t *testing.T) {
		dir := t.TempDir()
		a, b := filepath.Join(dir, "out.cbor"), filepath.Join(dir, "out.go")
		err := WriteAllAtomic(
			File{Path: a, Data: []byte("bundle"), Perm: 0644},
			File{Path: b, Data: []byte("source"), Perm: 0644},
		)
		if err != nil {
			t.Fatalf("WriteAllAtomic: %v", err)
		}
		for path, want := range map[string]string{a: "bundle", b: "source"} {
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != want {
				t.Errorf("%s = %q, want %q", path, got, want)
			}
		}
	})

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
	}{
		{
			name: "FirstRenameFails",
			setup: func(t *testing.T, dir string) string {
				target := filepath.Join(dir, "bundle-dir")
				if err := os.MkdirAll(filepath.Join(target, "child"), 0755); err != nil {
					t.Fatal(err)
				}
				return target
			},
		},
		{
			name: "StagingFails",
			setup: func(t *testing.T, dir string) string {
				blocker := filepath.Join(dir, "blocker")
				if err := os.WriteFile(blocker, []byte("file"), 0644); err != nil {
					t.Fatal(err)
				}
				return filepath.Join(blocker, "out.cbor")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			output := filepath.Join(dir, "out.go")
			if err := os.WriteFile(output, []byte("previous"), 0644); err != nil {
				t.Fatal(err)
			}
			bundle := tt.setup(t, dir)

			err := WriteAllAtomic(
				File{Path: bundle, Data: []byte("bundle"), Perm: 0644},
				File{Path: output, Data: []byte("source"), Perm: 0644},
			)
			if !errors.Is(err, errors.IOError) {
				t.Fatalf("expected IO error, got %v", err)
			}

			got, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != "previous" {
				t.Errorf("existing output was replaced: %q", got)
			}
			entries, _ := os.ReadDir(dir)
			for _, e := range entries {
				if filepath.Ext(e.Name()) == ".tmp" {
					t.Errorf("temporary file left behind: %s", e.Name())
				}
			}
		})
	}
}
