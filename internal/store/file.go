package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// File persists the KV map as a single JSON document on disk. Every
// write rewrites the whole file, matching the small fixed key set.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile binds a file store to the given path. The file is created
// lazily on the first write.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("store: file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, unavailable("mkdir", dir, err)
		}
	}
	return &File{path: path}, nil
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, unavailable("read", f.path, err)
	}
	values := map[string]string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		// A corrupt file behaves like an empty store; hydration treats
		// missing state as a guest session anyway.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return unavailable("encode", f.path, err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return unavailable("write", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return unavailable("rename", f.path, err)
	}
	return nil
}
