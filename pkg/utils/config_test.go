// Package time_test contains tests for the config utils
package utils_test

import (
	"os"
	"testing"

	"github.com/openpress/content-ledger/pkg/utils"
)

func TestLedgerConfig(t *testing.T) {
	os.Setenv(
		"LEDGER_SWEEPER_CRON_CONFIG",
		"* * * * *",
	)
	os.Setenv(
		"LEDGER_STORE_TYPE_NAME",
		"postgresql",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_ADDRESS",
		"localhost",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_PORT",
		"5432",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_DBNAME",
		"content_ledger",
	)
	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err != nil {
		t.Errorf("Failed to populate from environment: err: %v", err)
	}
	if config.StoreType != utils.StoreTypePostgresql {
		t.Errorf("Should have populated the postgresql store type: %v", config.StoreType)
	}
	if config.ListenAddr != ":8080" {
		t.Errorf("Should have defaulted the listen address: %v", config.ListenAddr)
	}
}

func TestBadStoreNameLedgerConfig(t *testing.T) {
	os.Setenv(
		"LEDGER_SWEEPER_CRON_CONFIG",
		"* * * * *",
	)
	//Bad store name
	os.Setenv(
		"LEDGER_STORE_TYPE_NAME",
		"mysql",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_ADDRESS",
		"localhost",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_PORT",
		"5432",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_DBNAME",
		"content_ledger",
	)
	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed to allow bad store type from environment: err: %v", err)
	}
}

func TestBadPostgresqlAddressLedgerConfig(t *testing.T) {
	os.Setenv(
		"LEDGER_SWEEPER_CRON_CONFIG",
		"* * * * *",
	)
	os.Setenv(
		"LEDGER_STORE_TYPE_NAME",
		"postgresql",
	)
	//Bad postgresql address
	os.Setenv(
		"LEDGER_STORE_POSTGRES_ADDRESS",
		"",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_PORT",
		"5432",
	)
	os.Setenv(
		"LEDGER_STORE_POSTGRES_DBNAME",
		"content_ledger",
	)
	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed on missing postgresql address: err: %v", err)
	}
}

func TestBadSweeperCronLedgerConfig(t *testing.T) {
	//Bad cron config
	os.Setenv(
		"LEDGER_SWEEPER_CRON_CONFIG",
		"not a cron string",
	)
	os.Setenv(
		"LEDGER_STORE_TYPE_NAME",
		"memory",
	)
	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed on bad sweeper cron config: err: %v", err)
	}
}

func TestBadgerStoreLedgerConfig(t *testing.T) {
	os.Setenv(
		"LEDGER_SWEEPER_CRON_CONFIG",
		"* * * * *",
	)
	os.Setenv(
		"LEDGER_STORE_TYPE_NAME",
		"badger",
	)
	//Missing badger path
	os.Setenv(
		"LEDGER_STORE_BADGER_PATH",
		"",
	)
	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err == nil {
		t.Errorf("Should have failed on missing badger path: err: %v", err)
	}

	os.Setenv(
		"LEDGER_STORE_BADGER_PATH",
		"/tmp/ledgerbadger",
	)
	config = &utils.LedgerConfig{}
	err = config.PopulateFromEnv()
	if err != nil {
		t.Errorf("Should have populated badger config: err: %v", err)
	}
}
