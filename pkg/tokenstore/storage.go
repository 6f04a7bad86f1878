package tokenstore

import "sync"

// Storage is an ephemeral string key-value store scoped to the lifetime of
// the running client, the Go analog of a browser's tab-scoped storage.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Get returns the value stored under key. The second return value is
	// false when no value is present.
	Get(key string) (string, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string)

	// Delete removes the value stored under key. Idempotent.
	Delete(key string)
}

// MemoryStorage implements Storage with a mutex-guarded map. Values live
// only as long as the process, matching the blast radius of tab-scoped
// session storage.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key, overwriting any previous value.
func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
}

// Delete removes the value stored under key.
func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
}
