// Package storage persists the planner's aggregate state.
package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/sprout/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

// Store loads and saves the whole aggregate. Load returns ErrNotFound when
// nothing has been saved yet; today drives legacy hydration migration.
type Store interface {
	Load(ctx context.Context, today string) (model.State, error)
	Save(ctx context.Context, st model.State) error
}

type MemoryStore struct {
	raw   []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context, today string) (model.State, error) {
	if len(m.raw) == 0 {
		return model.State{}, ErrNotFound
	}
	return Decode(m.raw, today)
}

func (m *MemoryStore) Save(_ context.Context, st model.State) error {
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	m.raw = raw
	m.saves++
	return nil
}

// Saves reports how many snapshots were written.
func (m *MemoryStore) Saves() int {
	return m.saves
}

func (m *MemoryStore) Raw() []byte {
	return append([]byte(nil), m.raw...)
}
