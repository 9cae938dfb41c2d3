package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
)

// NewReputationLedger is a convenience function to init a ReputationLedger
func NewReputationLedger(store storage.KeyValueStore, identity IdentityContext) *ReputationLedger {
	return &ReputationLedger{
		store:    store,
		identity: identity,
	}
}

// ReputationLedger enforces one-vote-per-user-per-article and maintains
// per-article vote tallies and per-user reputation scores.
type ReputationLedger struct {
	store    storage.KeyValueStore
	identity IdentityContext
}

// UpvoteContent casts an upvote on the article by the caller. Fails with
// model.ErrAlreadyVoted if the caller has already voted on this article in
// either direction. A successful upvote rewards the voter with +1
// reputation. The vote record is written last, after the tallies, so a
// crash mid-operation cannot strand a vote record without its tally.
func (l *ReputationLedger) UpvoteContent(articleID string) error {
	voterID := l.identity.CallerID()
	err := l.checkNotVoted(voterID, articleID)
	if err != nil {
		return err
	}

	upvotes, err := counterValue(l.store, upvoteTallyKey(articleID), 0)
	if err != nil {
		return err
	}
	err = setCounterValue(l.store, upvoteTallyKey(articleID), upvotes+1)
	if err != nil {
		return fmt.Errorf("Error saving upvote tally: err: %v", err)
	}

	reputation, err := counterValue(l.store, reputationKey(voterID), model.DefaultReputation)
	if err != nil {
		return err
	}
	err = setCounterValue(l.store, reputationKey(voterID), reputation+1)
	if err != nil {
		return fmt.Errorf("Error saving reputation score: err: %v", err)
	}

	vote := model.NewVoteRecord(model.VoteDirectionUp, l.identity.NowMillis())
	err = l.store.Set(voteKey(voterID, articleID), vote.AsRecord())
	if err != nil {
		return fmt.Errorf("Error saving vote record: err: %v", err)
	}
	log.Infof("Handling upvote on %v by %v\n", articleID, voterID)
	return nil
}

// DownvoteContent casts a downvote on the article by the caller, under the
// same one-vote-per-article rule. Downvotes do not change the voter's
// reputation.
func (l *ReputationLedger) DownvoteContent(articleID string) error {
	voterID := l.identity.CallerID()
	err := l.checkNotVoted(voterID, articleID)
	if err != nil {
		return err
	}

	downvotes, err := counterValue(l.store, downvoteTallyKey(articleID), 0)
	if err != nil {
		return err
	}
	err = setCounterValue(l.store, downvoteTallyKey(articleID), downvotes+1)
	if err != nil {
		return fmt.Errorf("Error saving downvote tally: err: %v", err)
	}

	vote := model.NewVoteRecord(model.VoteDirectionDown, l.identity.NowMillis())
	err = l.store.Set(voteKey(voterID, articleID), vote.AsRecord())
	if err != nil {
		return fmt.Errorf("Error saving vote record: err: %v", err)
	}
	log.Infof("Handling downvote on %v by %v\n", articleID, voterID)
	return nil
}

// UserReputation returns the user's reputation score, defaulting to the
// base score for users with no stored value
func (l *ReputationLedger) UserReputation(userID string) (uint64, error) {
	return counterValue(l.store, reputationKey(userID), model.DefaultReputation)
}

// ArticleVotes returns the article's upvote and downvote tallies,
// defaulting each to 0
func (l *ReputationLedger) ArticleVotes(articleID string) (uint64, uint64, error) {
	upvotes, err := counterValue(l.store, upvoteTallyKey(articleID), 0)
	if err != nil {
		return 0, 0, err
	}
	downvotes, err := counterValue(l.store, downvoteTallyKey(articleID), 0)
	if err != nil {
		return 0, 0, err
	}
	return upvotes, downvotes, nil
}

func (l *ReputationLedger) checkNotVoted(voterID string, articleID string) error {
	voted, err := l.store.Has(voteKey(voterID, articleID))
	if err != nil {
		return fmt.Errorf("Error checking vote record: err: %v", err)
	}
	if voted {
		return model.ErrAlreadyVoted
	}
	return nil
}
