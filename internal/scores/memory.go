package scores

import (
	"context"
	"sync"
)

// MemoryStore keeps history in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry)}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Append(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Player] = append(m.entries[e.Player], e)
	return nil
}

func (m *MemoryStore) History(_ context.Context, player string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := append([]Entry(nil), m.entries[player]...)
	SortByScore(history)
	return history, nil
}

func (m *MemoryStore) Clear(_ context.Context, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, player)
	return nil
}
