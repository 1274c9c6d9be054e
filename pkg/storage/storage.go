package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

// LocalStore keeps tables in a Pebble database, one key per destination and
// range. It stands in for the spreadsheet during development.
type LocalStore struct {
	db *pebble.DB
	mu sync.Mutex // serializes appends
}

func NewLocalStore(path string) (*LocalStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func tableKey(destination, rangeSpec string) []byte {
	return []byte(destination + "/" + rangeSpec)
}

// ReadRange returns the stored table, or an empty table if nothing was written.
func (s *LocalStore) ReadRange(_ context.Context, destination, rangeSpec string) (codec.Table, error) {
	data, closer, err := s.db.Get(tableKey(destination, rangeSpec))
	if errors.Is(err, pebble.ErrNotFound) {
		return codec.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var table codec.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("corrupt table at %s: %w", rangeSpec, err)
	}
	return table, nil
}

func (s *LocalStore) ClearRange(_ context.Context, destination, rangeSpec string) error {
	return s.db.Delete(tableKey(destination, rangeSpec), pebble.Sync)
}

// WriteRange appends rows after any already stored, like a sheet append.
func (s *LocalStore) WriteRange(ctx context.Context, destination, rangeSpec string, table codec.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.ReadRange(ctx, destination, rangeSpec)
	if err != nil {
		return err
	}

	data, err := json.Marshal(append(existing, table...))
	if err != nil {
		return err
	}
	return s.db.Set(tableKey(destination, rangeSpec), data, pebble.Sync)
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}
