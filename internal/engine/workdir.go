package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// WorkDirectory is the scoped temp directory that owns every file of one batch.
type WorkDirectory struct {
	path string
	ext  string

	mu      sync.RWMutex
	removed bool
}

// NewWorkDirectory creates a fresh directory under parent (os.TempDir when empty).
func NewWorkDirectory(parent, ext string) (*WorkDirectory, error) {
	path, err := os.MkdirTemp(parent, "gofetch-")
	if err != nil {
		return nil, err
	}
	return &WorkDirectory{path: path, ext: ext}, nil
}

func (w *WorkDirectory) Path() string { return w.path }

// WriteUnique stores data in a new file named <uuid><ext>. The file is created
// exclusively so concurrent writers can never overwrite each other. On failure
// any partial file is removed.
func (w *WorkDirectory) WriteUnique(data []byte) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.removed {
		return "", errors.New("work directory already removed")
	}

	path := filepath.Join(w.path, uuid.NewString()+w.ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("could not create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("could not write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not close %s: %w", path, err)
	}

	return path, nil
}

// Files lists the names currently in the directory.
func (w *WorkDirectory) Files() ([]string, error) {
	entries, err := os.ReadDir(w.path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Remove deletes the directory and everything in it. Safe to call twice.
func (w *WorkDirectory) Remove() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.removed {
		return nil
	}
	w.removed = true
	return os.RemoveAll(w.path)
}
