package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/sprout/internal/model"
)

// FileStore keeps the aggregate as one JSON document. Writes go to a
// sibling tmp file and are renamed into place.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: state file path is required")
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context, today string) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.State{}, ErrNotFound
		}
		return model.State{}, fmt.Errorf("read state: %w", err)
	}
	return Decode(raw, today)
}

func (f *FileStore) Save(ctx context.Context, st model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := Encode(st)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, f.path)
}
