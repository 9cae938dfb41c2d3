// Package storage contains the key-value store implementations backing
// the ledger components.
package storage // import "github.com/openpress/content-ledger/pkg/storage"

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	// driver for postgresql
	_ "github.com/lib/pq"

	cpersist "github.com/joincivil/go-common/pkg/persistence"
)

const kvTableName = "ledger_kv"

// NewPostgresStore creates a new postgres-backed store
func NewPostgresStore(host string, port int, user string, password string,
	dbname string) (*PostgresStore, error) {
	pgStore := &PostgresStore{}
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
	db, err := sqlx.Connect("postgres", psqlInfo)
	if err != nil {
		return pgStore, fmt.Errorf("Error connecting to sqlx: %v", err)
	}
	pgStore.db = db
	return pgStore, nil
}

// NewPostgresStoreFromSqlx creates a new postgres-backed store from an
// initialized sqlx.DB
func NewPostgresStoreFromSqlx(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// PostgresStore holds the DB connection for a postgres-backed KeyValueStore
type PostgresStore struct {
	db *sqlx.DB
}

// CreateTables creates the kv table if it doesn't exist
func (p *PostgresStore) CreateTables() error {
	schema := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s(
            k TEXT PRIMARY KEY,
            v TEXT NOT NULL
        );
    `, kvTableName)
	_, err := p.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("Error creating %v table in postgres: %v", kvTableName, err)
	}
	return nil
}

// CreateIndices creates the indices for the kv table if they don't exist.
// Prefix scans from the sweeper rely on the pattern index.
func (p *PostgresStore) CreateIndices() error {
	indexQuery := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s_k_prefix_idx ON %s (k text_pattern_ops);",
		kvTableName, kvTableName)
	_, err := p.db.Exec(indexQuery)
	if err != nil {
		return fmt.Errorf("Error creating indices in postgres: %v", err)
	}
	return nil
}

// Get returns the value stored under key
func (p *PostgresStore) Get(key string) (string, error) {
	var value string
	queryString := fmt.Sprintf("SELECT v FROM %s WHERE k=$1;", kvTableName)
	err := p.db.Get(&value, queryString, key)
	if err == sql.ErrNoRows {
		return "", cpersist.ErrPersisterNoResults
	}
	if err != nil {
		return "", fmt.Errorf("Error retrieving value from postgres: %v", err)
	}
	return value, nil
}

// Set stores value under key, overwriting any prior value
func (p *PostgresStore) Set(key string, value string) error {
	queryString := fmt.Sprintf(
		"INSERT INTO %s (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v=EXCLUDED.v;",
		kvTableName)
	_, err := p.db.Exec(queryString, key, value)
	if err != nil {
		return fmt.Errorf("Error saving value to postgres: %v", err)
	}
	return nil
}

// Has returns true if a value is stored under key
func (p *PostgresStore) Has(key string) (bool, error) {
	var exists bool
	queryString := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE k=$1);", kvTableName)
	err := p.db.Get(&exists, queryString, key)
	if err != nil {
		return false, fmt.Errorf("Error checking key in postgres: %v", err)
	}
	return exists, nil
}

// KeysWithPrefix returns all keys beginning with prefix
func (p *PostgresStore) KeysWithPrefix(prefix string) ([]string, error) {
	keys := []string{}
	queryString := fmt.Sprintf("SELECT k FROM %s WHERE k LIKE $1 || '%%';", kvTableName)
	err := p.db.Select(&keys, queryString, prefix)
	if err != nil {
		return nil, fmt.Errorf("Error scanning keys in postgres: %v", err)
	}
	return keys, nil
}

// Delete removes the value stored under key, if any
func (p *PostgresStore) Delete(key string) error {
	queryString := fmt.Sprintf("DELETE FROM %s WHERE k=$1;", kvTableName)
	_, err := p.db.Exec(queryString, key)
	if err != nil {
		return fmt.Errorf("Error deleting key in postgres: %v", err)
	}
	return nil
}

// Close closes the underlying DB connection
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
