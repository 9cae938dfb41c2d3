// Package helpers contains various common helper functions.
// Normally they are shared functions used by the cmds.
package helpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	cpubsub "github.com/joincivil/go-common/pkg/pubsub"

	"github.com/openpress/content-ledger/pkg/ledger"
	"github.com/openpress/content-ledger/pkg/storage"
	"github.com/openpress/content-ledger/pkg/utils"
)

// Store is a helper function to return an initialized KeyValueStore for
// the configured store type
func Store(config *utils.LedgerConfig) (storage.KeyValueStore, error) {
	switch config.StoreType {
	case utils.StoreTypePostgresql:
		return postgresStore(config)
	case utils.StoreTypeBadger:
		return storage.NewBadgerStore(config.StoreBadgerPath)
	case utils.StoreTypeMemory:
		return storage.NewMemoryStore(), nil
	}
	// Default to the NullStore
	return &storage.NullStore{}, nil
}

// StoreFromSqlx is a helper function to return a postgres-backed store
// given an initialized sqlx.DB struct
func StoreFromSqlx(db *sqlx.DB) (storage.KeyValueStore, error) {
	pgStore := storage.NewPostgresStoreFromSqlx(db)
	err := initTables(pgStore)
	if err != nil {
		return nil, err
	}
	return pgStore, nil
}

// Janitor is a helper function to return the StoreJanitor view of a store.
// The sweeper needs prefix scans and deletes that not every store supports.
func Janitor(store storage.KeyValueStore) (storage.StoreJanitor, error) {
	janitor, ok := store.(storage.StoreJanitor)
	if !ok {
		return nil, errors.Errorf("store type %T does not support sweeping", store)
	}
	return janitor, nil
}

// EventPublisher is a helper function to return an initialized
// EventPublisher for the configuration. An empty project id disables
// publishing.
func EventPublisher(config *utils.LedgerConfig) (ledger.EventPublisher, error) {
	if config.PubSubProjectID == "" {
		return &ledger.NullPublisher{}, nil
	}
	ps, err := cpubsub.NewGooglePubSub(config.PubSubProjectID)
	if err != nil {
		return nil, errors.WithMessage(err, "error initializing pubsub")
	}
	err = ps.StartPublishers()
	if err != nil {
		return nil, errors.WithMessage(err, "error starting pubsub publishers")
	}
	return ledger.NewGooglePublisher(ps, config.PubSubEventsTopicName), nil
}

func postgresStore(config *utils.LedgerConfig) (*storage.PostgresStore, error) {
	pgStore, err := storage.NewPostgresStore(
		config.StorePostgresAddress,
		config.StorePostgresPort,
		config.StorePostgresUser,
		config.StorePostgresPw,
		config.StorePostgresDbname,
	)
	if err != nil {
		return nil, err
	}
	err = initTables(pgStore)
	if err != nil {
		return nil, err
	}
	return pgStore, nil
}

func initTables(pgStore *storage.PostgresStore) error {
	// Attempts to create the kv table here
	err := pgStore.CreateTables()
	if err != nil {
		return err
	}
	// Attempts to create the necessary table indices here
	return pgStore.CreateIndices()
}
