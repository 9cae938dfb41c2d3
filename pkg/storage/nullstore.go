// Package storage contains the key-value store implementations backing
// the ledger components.
package storage // import "github.com/openpress/content-ledger/pkg/storage"

import (
	cpersist "github.com/joincivil/go-common/pkg/persistence"
)

// NullStore is a store that does nothing but return default values
type NullStore struct{}

// Get returns the no results error
func (n *NullStore) Get(key string) (string, error) {
	return "", cpersist.ErrPersisterNoResults
}

// Set does nothing
func (n *NullStore) Set(key string, value string) error {
	return nil
}

// Has returns false
func (n *NullStore) Has(key string) (bool, error) {
	return false, nil
}

// KeysWithPrefix returns no keys
func (n *NullStore) KeysWithPrefix(prefix string) ([]string, error) {
	return []string{}, nil
}

// Delete does nothing
func (n *NullStore) Delete(key string) error {
	return nil
}
