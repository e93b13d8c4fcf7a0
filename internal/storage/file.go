package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var errMalformed = errors.New("malformed store file")

// FileKV stores all keys in a single JSON object file.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV creates a FileKV backed by the file at path.
// The file and its directory are created on first Set.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the storage file path.
func (f *FileKV) Path() string {
	return f.path
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if errors.Is(err, errMalformed) {
		// Keep the unreadable file for the user and start over.
		if err := os.Rename(f.path, f.path+".corrupt"); err != nil {
			return err
		}
		data, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileKV) Close() error { return nil }

// read returns the file contents. A missing file is an empty store.
func (f *FileKV) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w %s: %w", errMalformed, f.path, err)
	}
	return data, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *FileKV) write(data map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
