package cache

import (
	"bytes"
	"sync"
)

// MemoryStore is an in-process Store, used in tests and for --cache-type memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	puts    int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the body stored under key.
func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	body, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(body), true, nil
}

// Put stores a copy of body unless key is already present.
func (m *MemoryStore) Put(key string, body []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return nil
	}
	m.entries[key] = bytes.Clone(body)
	m.puts++
	return nil
}

// Size returns the number of cached entries
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Writes returns how many Put calls stored a new entry.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}
