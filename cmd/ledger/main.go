package main

import (
	"flag"
	"os"

	log "github.com/golang/glog"

	"github.com/openpress/content-ledger/pkg/abi"
	"github.com/openpress/content-ledger/pkg/api"
	"github.com/openpress/content-ledger/pkg/helpers"
	"github.com/openpress/content-ledger/pkg/ledger"
	"github.com/openpress/content-ledger/pkg/utils"
)

func main() {
	config := &utils.LedgerConfig{}
	flag.Usage = func() {
		config.OutputUsage()
		os.Exit(0)
	}
	flag.Parse()

	err := config.PopulateFromEnv()
	if err != nil {
		config.OutputUsage()
		log.Errorf("Invalid ledger config: err: %v\n", err)
		os.Exit(2)
	}

	store, err := helpers.Store(config)
	if err != nil {
		log.Errorf("Error initializing store: err: %v", err)
		os.Exit(2)
	}

	publisher, err := helpers.EventPublisher(config)
	if err != nil {
		log.Errorf("Error initializing event publisher: err: %v", err)
		os.Exit(2)
	}

	if config.SweeperCronConfig != "" {
		janitor, err := helpers.Janitor(store)
		if err != nil {
			log.Errorf("Error initializing sweeper: err: %v", err)
			os.Exit(2)
		}
		sweeper := ledger.NewSubscriptionSweeper(store, janitor)
		cr, err := sweeper.Start(config.SweeperCronConfig)
		if err != nil {
			log.Errorf("Error starting sweeper: err: %v", err)
			os.Exit(2)
		}
		defer cr.Stop()
	}

	server := api.NewServer(abi.NewDispatcher(store, publisher))
	err = server.Run(config.ListenAddr)
	if err != nil {
		log.Errorf("Error running ledger server: err: %v", err)
		os.Exit(2)
	}
}
