package memory

import (
	"context"
	"fmt"
	"sync"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

// Store keeps records in process memory. Used by tests and ephemeral
// runs where nothing should touch the disk.
type Store struct {
	mu    sync.Mutex
	items []core.Record
}

var (
	_ ledger.RecordWriter = (*Store)(nil)
	_ ledger.RecordReader = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadAll returns a copy of the stored records in insertion order.
func (s *Store) ReadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.items))
	copy(out, s.items)
	return out, nil
}
