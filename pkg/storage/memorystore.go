// Package storage contains the key-value store implementations backing
// the ledger components.
package storage // import "github.com/openpress/content-ledger/pkg/storage"

import (
	"strings"
	"sync"

	cpersist "github.com/joincivil/go-common/pkg/persistence"
)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[string]string{},
	}
}

// MemoryStore is an in-memory KeyValueStore. It backs tests and local
// development; the mutex only matters when the HTTP surface overlaps calls.
type MemoryStore struct {
	mutex  sync.RWMutex
	values map[string]string
}

// Get returns the value stored under key
func (m *MemoryStore) Get(key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", cpersist.ErrPersisterNoResults
	}
	return value, nil
}

// Set stores value under key
func (m *MemoryStore) Set(key string, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
	return nil
}

// Has returns true if a value is stored under key
func (m *MemoryStore) Has(key string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.values[key]
	return ok, nil
}

// KeysWithPrefix returns all keys beginning with prefix
func (m *MemoryStore) KeysWithPrefix(prefix string) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	keys := []string{}
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Delete removes the value stored under key
func (m *MemoryStore) Delete(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.values, key)
	return nil
}
