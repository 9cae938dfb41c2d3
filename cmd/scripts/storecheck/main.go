package main

// This script inspects the configured key-value store directly. Given a
// key it dumps the raw stored value, and given a prefix it lists the
// matching keys. Useful when debugging record corruption without going
// through the call surface.

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/openpress/content-ledger/pkg/helpers"
	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/utils"
)

func dumpKey(config *utils.LedgerConfig, key string) {
	store, err := helpers.Store(config)
	if err != nil {
		fmt.Printf("error with store: err: %v\n", err)
		os.Exit(2)
	}

	value, err := store.Get(key)
	if err != nil {
		fmt.Printf("error retrieving key: err: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("raw value:\n%v\n", value)

	// Articles get a decoded dump as well
	article, err := model.ArticleFromRecord(value)
	if err == nil {
		spew.Dump(article)
	}
}

func listPrefix(config *utils.LedgerConfig, prefix string) {
	store, err := helpers.Store(config)
	if err != nil {
		fmt.Printf("error with store: err: %v\n", err)
		os.Exit(2)
	}

	janitor, err := helpers.Janitor(store)
	if err != nil {
		fmt.Printf("error with store: err: %v\n", err)
		os.Exit(2)
	}

	keys, err := janitor.KeysWithPrefix(prefix)
	if err != nil {
		fmt.Printf("error scanning keys: err: %v\n", err)
		os.Exit(2)
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	fmt.Printf("%v keys\n", len(keys))
}

func main() {
	key := flag.String("key", "", "dump the value stored under this key")
	prefix := flag.String("prefix", "", "list all keys with this prefix")
	flag.Parse()

	config := &utils.LedgerConfig{}
	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		os.Exit(2)
	}

	if *key != "" {
		dumpKey(config, *key)
		return
	}
	if *prefix != "" {
		listPrefix(config, *prefix)
		return
	}
	fmt.Println("one of -key or -prefix is required")
	os.Exit(2)
}
