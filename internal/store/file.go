package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"lunchpad-cli/internal/model"
)

const layoutFileName = "layout.json"

// FileStore keeps the layout as a JSON array of tagged records in Dir/layout.json.
type FileStore struct {
	Dir string
}

func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, layoutFileName)
}

func (s *FileStore) Load(_ context.Context) ([]model.Item, error) {
	b, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.DecodeLayout(b)
}

func (s *FileStore) Save(_ context.Context, items []model.Item) error {
	b, err := model.EncodeLayout(items, true)
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "layout.json.*.tmp", s.Path(), b, 0o644)
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
