package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lunchpad-cli/internal/model"
)

// ErrNotFound is returned by Persister.Load when no layout has been saved yet.
var ErrNotFound = errors.New("layout not found")

// Persister stores the full layout. Implementations must round-trip order,
// ids, names and folder membership exactly.
type Persister interface {
	Load(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
	Clear(ctx context.Context) error
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the persister for the configured backend rooted at dir.
func Open(backend, dir string) (Persister, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("open layout store: missing data dir")
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return &FileStore{Dir: dir}, nil
	case BackendSQLite:
		return &SQLiteStore{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, filepath.Clean(path))
}
