// Package storage contains the key-value store implementations backing
// the ledger components.
package storage // import "github.com/openpress/content-ledger/pkg/storage"

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	cpersist "github.com/joincivil/go-common/pkg/persistence"
)

// NewBadgerStore creates a new badger-backed store at the given path. A
// single process owns the store; badger takes a directory lock.
func NewBadgerStore(path string) (*BadgerStore, error) {
	options := badger.DefaultOptions(path)
	options.Logger = nil
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("Error opening badger store: %v", err)
	}
	return &BadgerStore{db: db}, nil
}

// BadgerStore is an embedded badger-backed KeyValueStore for single-node
// deployments that don't want to run postgres.
type BadgerStore struct {
	db *badger.DB
}

// Get returns the value stored under key
func (b *BadgerStore) Get(key string) (string, error) {
	var value string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		valueBytes, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(valueBytes)
		return nil
	})
	if err == badger.ErrKeyNotFound {
		return "", cpersist.ErrPersisterNoResults
	}
	if err != nil {
		return "", fmt.Errorf("Error retrieving value from badger: %v", err)
	}
	return value, nil
}

// Set stores value under key, overwriting any prior value
func (b *BadgerStore) Set(key string, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("Error saving value to badger: %v", err)
	}
	return nil
}

// Has returns true if a value is stored under key
func (b *BadgerStore) Has(key string) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Error checking key in badger: %v", err)
	}
	return true, nil
}

// KeysWithPrefix returns all keys beginning with prefix
func (b *BadgerStore) KeysWithPrefix(prefix string) ([]string, error) {
	keys := []string{}
	err := b.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = []byte(prefix)
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Error scanning keys in badger: %v", err)
	}
	return keys, nil
}

// Delete removes the value stored under key, if any
func (b *BadgerStore) Delete(key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("Error deleting key in badger: %v", err)
	}
	return nil
}

// Close closes the underlying badger DB
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
