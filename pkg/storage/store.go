// Package storage contains the key-value store implementations backing
// the ledger components.
package storage // import "github.com/openpress/content-ledger/pkg/storage"

// KeyValueStore is the durable caller-isolated key to string-value mapping
// that every ledger component reads and writes through. Keys are namespaced
// by component and entity id; no two components write the same key.
//
// Get returns cpersist.ErrPersisterNoResults when the key is absent, so
// callers can distinguish a missing key from a storage failure.
type KeyValueStore interface {
	// Get returns the value stored under key
	Get(key string) (string, error)
	// Set stores value under key, overwriting any prior value
	Set(key string, value string) error
	// Has returns true if a value is stored under key
	Has(key string) (bool, error)
}

// StoreJanitor is implemented by stores that support the maintenance
// operations used by background sweepers. The ledger components themselves
// never scan or delete.
type StoreJanitor interface {
	// KeysWithPrefix returns all keys beginning with prefix
	KeysWithPrefix(prefix string) ([]string, error)
	// Delete removes the value stored under key, if any
	Delete(key string) error
}
