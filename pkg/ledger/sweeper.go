package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/robfig/cron"

	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
	"github.com/openpress/content-ledger/pkg/utils"
)

// NewSubscriptionSweeper is a convenience function to init a
// SubscriptionSweeper
func NewSubscriptionSweeper(store storage.KeyValueStore,
	janitor storage.StoreJanitor) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		store:   store,
		janitor: janitor,
	}
}

// SubscriptionSweeper deletes expired subscription records on a schedule.
// Purely janitorial: subscription reads check the expiration themselves,
// so correctness does not depend on the sweep having run.
type SubscriptionSweeper struct {
	store   storage.KeyValueStore
	janitor storage.StoreJanitor
}

// SweepExpired scans all subscription records and deletes the expired
// ones, returning the number deleted
func (s *SubscriptionSweeper) SweepExpired() (int, error) {
	now := utils.CurrentEpochMillis()
	keys, err := s.janitor.KeysWithPrefix(subscriptionKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("Error scanning subscription keys: err: %v", err)
	}
	deleted := 0
	for _, key := range keys {
		record, err := s.store.Get(key)
		if err != nil {
			log.Errorf("Error retrieving subscription %v: err: %v", key, err)
			continue
		}
		subscription, err := model.SubscriptionRecordFromRecord(record)
		if err != nil {
			log.Errorf("Error parsing subscription %v: err: %v", key, err)
			continue
		}
		if subscription.Active(now) {
			continue
		}
		err = s.janitor.Delete(key)
		if err != nil {
			log.Errorf("Error deleting subscription %v: err: %v", key, err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

// Start schedules the sweep on the given cron config and starts the cron.
// The returned cron can be stopped by the caller on shutdown.
func (s *SubscriptionSweeper) Start(cronConfig string) (*cron.Cron, error) {
	cr := cron.New()
	err := cr.AddFunc(cronConfig, func() {
		deleted, err := s.SweepExpired()
		if err != nil {
			log.Errorf("Error sweeping subscriptions: err: %v", err)
			return
		}
		log.Infof("Swept %v expired subscriptions\n", deleted)
	})
	if err != nil {
		return nil, fmt.Errorf("Error scheduling subscription sweep: err: %v", err)
	}
	cr.Start()
	return cr, nil
}
