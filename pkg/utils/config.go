// Package utils contains various common utils separated by utility types
package utils

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron"
)

// StoreType is the type of key-value store to use.
type StoreType int

const (
	// StoreTypeInvalid is an invalid store value
	StoreTypeInvalid StoreType = iota

	// StoreTypeNone is a store that does nothing but return default values
	StoreTypeNone

	// StoreTypeMemory is an in-memory store for local development
	StoreTypeMemory

	// StoreTypePostgresql is a store that uses PostgreSQL as the backend
	StoreTypePostgresql

	// StoreTypeBadger is a store that uses an embedded badger DB as the backend
	StoreTypeBadger
)

var (
	// StoreNameToType maps valid store names to the types above
	StoreNameToType = map[string]StoreType{
		"none":       StoreTypeNone,
		"memory":     StoreTypeMemory,
		"postgresql": StoreTypePostgresql,
		"badger":     StoreTypeBadger,
	}
)

const (
	envVarPrefix = "ledger"

	usageListFormat = `The ledger is configured via environment vars only. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  description: {{usage_description .}}
  type:        {{usage_type .}}
  default:     {{usage_default .}}
  required:    {{usage_required .}}
{{end}}
`
)

// LedgerConfig is the master config for the ledger derived from environment
// variables.
type LedgerConfig struct {
	ListenAddr        string `split_words:"true" default:":8080" desc:"Address for the HTTP call surface to listen on"`
	SweeperCronConfig string `split_words:"true" desc:"Cron config string * * * * * for the subscription sweeper, empty disables it"`

	StoreType            StoreType `ignored:"true"`
	StoreTypeName        string    `split_words:"true" required:"true" desc:"Sets the store type to use"`
	StorePostgresAddress string    `split_words:"true" desc:"If store type is Postgresql, sets the address"`
	StorePostgresPort    int       `split_words:"true" desc:"If store type is Postgresql, sets the port"`
	StorePostgresDbname  string    `split_words:"true" desc:"If store type is Postgresql, sets the database name"`
	StorePostgresUser    string    `split_words:"true" desc:"If store type is Postgresql, sets the database user"`
	StorePostgresPw      string    `split_words:"true" desc:"If store type is Postgresql, sets the database password"`
	StoreBadgerPath      string    `split_words:"true" desc:"If store type is Badger, sets the DB directory"`

	PubSubProjectID       string `split_words:"true" desc:"Sets the Google Cloud project for event publishing, empty disables it"`
	PubSubEventsTopicName string `split_words:"true" desc:"Sets the pubsub topic for publication events"`
}

// OutputUsage prints the usage string to os.Stdout
func (c *LedgerConfig) OutputUsage() {
	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat) // nolint: gosec
	_ = tabs.Flush()                                             // nolint: gosec
}

// PopulateFromEnv processes the environment vars, populates LedgerConfig
// with the respective values, and validates the values.
func (c *LedgerConfig) PopulateFromEnv() error {
	err := envconfig.Process(envVarPrefix, c)
	if err != nil {
		return err
	}

	err = c.validateSweeperCronConfig()
	if err != nil {
		return err
	}

	err = c.populateStoreType()
	if err != nil {
		return err
	}

	return c.validateStore()
}

func (c *LedgerConfig) validateSweeperCronConfig() error {
	if c.SweeperCronConfig == "" {
		return nil
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(c.SweeperCronConfig)
	if err != nil {
		return fmt.Errorf("Invalid sweeper cron config: '%v'", c.SweeperCronConfig)
	}
	return nil
}

func (c *LedgerConfig) validateStore() error {
	if c.StoreType == StoreTypePostgresql {
		return c.validatePostgresqlStore()
	}
	if c.StoreType == StoreTypeBadger {
		return c.validateBadgerStore()
	}
	return nil
}

func (c *LedgerConfig) validatePostgresqlStore() error {
	if c.StorePostgresAddress == "" {
		return errors.New("Postgresql address required")
	}
	if c.StorePostgresPort == 0 {
		return errors.New("Postgresql port required")
	}
	if c.StorePostgresDbname == "" {
		return errors.New("Postgresql db name required")
	}
	return nil
}

func (c *LedgerConfig) validateBadgerStore() error {
	if c.StoreBadgerPath == "" {
		return errors.New("Badger DB path required")
	}
	return nil
}

func (c *LedgerConfig) populateStoreType() error {
	var err error
	c.StoreType, err = StoreTypeFromName(c.StoreTypeName)
	return err
}

// StoreTypeFromName returns the correct storeType from the string name
func StoreTypeFromName(typeStr string) (StoreType, error) {
	sType, ok := StoreNameToType[typeStr]
	if !ok {
		validNames := make([]string, len(StoreNameToType))
		index := 0
		for name := range StoreNameToType {
			validNames[index] = name
			index++
		}
		return StoreTypeInvalid,
			fmt.Errorf("Invalid store value: %v; valid types %v", typeStr, validNames)
	}
	return sType, nil
}
