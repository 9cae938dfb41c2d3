// Package ledger contains the three ledger components of the content
// platform: the article registry, the reputation/voting ledger, and the
// payment ledger. Each component owns its own key namespace in the
// underlying KeyValueStore; no two components write the same key.
package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"fmt"
	"strconv"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/openpress/content-ledger/pkg/storage"
)

const (
	articleKeyPrefix      = "article:"
	authorKeyPrefix       = "author:"
	viewCountKeyPrefix    = "views:"
	voteKeyPrefix         = "vote:"
	voteTallyKeyPrefix    = "votes:"
	reputationKeyPrefix   = "reputation:"
	paymentKeyPrefix      = "payment:"
	earningsKeyPrefix     = "earnings:"
	tipKeyPrefix          = "tip:"
	subscriptionKeyPrefix = "subscription:"
)

func articleKey(articleID string) string {
	return articleKeyPrefix + articleID
}

func authorArticlesKey(authorID string) string {
	return fmt.Sprintf("%s%s:articles", authorKeyPrefix, authorID)
}

func authorCountKey(authorID string) string {
	return fmt.Sprintf("%s%s:count", authorKeyPrefix, authorID)
}

func viewCountKey(articleID string) string {
	return viewCountKeyPrefix + articleID
}

func voteKey(voterID string, articleID string) string {
	return fmt.Sprintf("%s%s:%s", voteKeyPrefix, voterID, articleID)
}

func upvoteTallyKey(articleID string) string {
	return fmt.Sprintf("%s%s:up", voteTallyKeyPrefix, articleID)
}

func downvoteTallyKey(articleID string) string {
	return fmt.Sprintf("%s%s:down", voteTallyKeyPrefix, articleID)
}

func reputationKey(userID string) string {
	return reputationKeyPrefix + userID
}

func paymentKey(readerID string, articleID string) string {
	return fmt.Sprintf("%s%s:%s", paymentKeyPrefix, readerID, articleID)
}

func earningsKey(journalistID string) string {
	return earningsKeyPrefix + journalistID
}

func tipKey(tipperID string, journalistID string, tippedAt int64) string {
	return fmt.Sprintf("%s%s:%s:%d", tipKeyPrefix, tipperID, journalistID, tippedAt)
}

func subscriptionKey(subscriberID string, journalistID string) string {
	return fmt.Sprintf("%s%s:%s", subscriptionKeyPrefix, subscriberID, journalistID)
}

// counterValue reads an unsigned counter from the store, returning
// defaultValue when no value is stored under key
func counterValue(store storage.KeyValueStore, key string, defaultValue uint64) (uint64, error) {
	value, err := store.Get(key)
	if err == cpersist.ErrPersisterNoResults {
		return defaultValue, nil
	}
	if err != nil {
		return 0, err
	}
	counter, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid counter value under %v: err: %v", key, err)
	}
	return counter, nil
}

func setCounterValue(store storage.KeyValueStore, key string, value uint64) error {
	return store.Set(key, strconv.FormatUint(value, 10))
}
