package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"fmt"
	"strconv"

	log "github.com/golang/glog"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
)

const millisPerDay = int64(86400000)

// NewPaymentLedger is a convenience function to init a PaymentLedger
func NewPaymentLedger(store storage.KeyValueStore, identity IdentityContext) *PaymentLedger {
	return &PaymentLedger{
		store:    store,
		identity: identity,
	}
}

// PaymentLedger records access grants, accumulates and allows withdrawal
// of journalist earnings, and manages time-bounded subscriptions.
//
// The ledger is a bookkeeping primitive, not an authorization system: it
// does not verify that a journalist id matches an article's author or that
// an amount matches a listed price. Those checks belong to the caller.
type PaymentLedger struct {
	store    storage.KeyValueStore
	identity IdentityContext
}

// PayForArticle records the caller's payment for an article and credits
// the journalist's earnings. A repeat payment for the same (reader,
// article) pair overwrites the prior record; last write wins.
func (l *PaymentLedger) PayForArticle(articleID string, journalistID string,
	amount uint64) error {
	readerID := l.identity.CallerID()
	err := l.creditEarnings(journalistID, amount)
	if err != nil {
		return err
	}
	payment := model.NewPaymentRecord(amount, l.identity.NowMillis())
	err = l.store.Set(paymentKey(readerID, articleID), payment.AsRecord())
	if err != nil {
		return fmt.Errorf("Error saving payment record: err: %v", err)
	}
	log.Infof("Handling payment of %v for %v by %v\n", amount, articleID, readerID)
	return nil
}

// TipJournalist credits the journalist's earnings and records a
// timestamped tip entry for audit. The audit entry is write-only; nothing
// in the ledger reads it back.
func (l *PaymentLedger) TipJournalist(journalistID string, amount uint64) error {
	tipperID := l.identity.CallerID()
	err := l.creditEarnings(journalistID, amount)
	if err != nil {
		return err
	}
	err = l.store.Set(tipKey(tipperID, journalistID, l.identity.NowMillis()),
		strconv.FormatUint(amount, 10))
	if err != nil {
		return fmt.Errorf("Error saving tip record: err: %v", err)
	}
	return nil
}

// ProcessSubscription credits the subscription fee to the journalist and
// stores the subscription expiration at now + durationDays. Re-subscribing
// overwrites any prior expiration with the new absolute value rather than
// extending it.
func (l *PaymentLedger) ProcessSubscription(journalistID string, fee uint64,
	durationDays uint64) error {
	subscriberID := l.identity.CallerID()
	err := l.creditEarnings(journalistID, fee)
	if err != nil {
		return err
	}
	expiresAt := l.identity.NowMillis() + int64(durationDays)*millisPerDay
	subscription := model.NewSubscriptionRecord(expiresAt)
	err = l.store.Set(subscriptionKey(subscriberID, journalistID), subscription.AsRecord())
	if err != nil {
		return fmt.Errorf("Error saving subscription record: err: %v", err)
	}
	log.Infof("Handling subscription to %v by %v until %v\n", journalistID,
		subscriberID, expiresAt)
	return nil
}

// Earnings returns the journalist's accumulated earnings balance,
// defaulting to 0
func (l *PaymentLedger) Earnings(journalistID string) (uint64, error) {
	return counterValue(l.store, earningsKey(journalistID), 0)
}

// WithdrawEarnings debits the caller's earnings balance by amount. Fails
// with model.ErrNoEarnings if no balance record exists and with
// model.ErrInsufficientBalance if amount exceeds the balance; neither
// failure mutates state.
func (l *PaymentLedger) WithdrawEarnings(amount uint64) error {
	journalistID := l.identity.CallerID()
	exists, err := l.store.Has(earningsKey(journalistID))
	if err != nil {
		return fmt.Errorf("Error checking earnings balance: err: %v", err)
	}
	if !exists {
		return model.ErrNoEarnings
	}
	balance, err := counterValue(l.store, earningsKey(journalistID), 0)
	if err != nil {
		return err
	}
	if amount > balance {
		return model.ErrInsufficientBalance
	}
	err = setCounterValue(l.store, earningsKey(journalistID), balance-amount)
	if err != nil {
		return fmt.Errorf("Error saving earnings balance: err: %v", err)
	}
	log.Infof("Handling withdrawal of %v by %v\n", amount, journalistID)
	return nil
}

// HasArticleAccess returns true iff a payment record exists for the
// (reader, article) pair. This is the single access-control predicate for
// paywall enforcement.
func (l *PaymentLedger) HasArticleAccess(readerID string, articleID string) (bool, error) {
	return l.store.Has(paymentKey(readerID, articleID))
}

// HasActiveSubscription returns true iff a subscription record exists for
// the (subscriber, journalist) pair and has not expired
func (l *PaymentLedger) HasActiveSubscription(subscriberID string,
	journalistID string) (bool, error) {
	record, err := l.store.Get(subscriptionKey(subscriberID, journalistID))
	if err == cpersist.ErrPersisterNoResults {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Error retrieving subscription record: err: %v", err)
	}
	subscription, err := model.SubscriptionRecordFromRecord(record)
	if err != nil {
		return false, err
	}
	return subscription.Active(l.identity.NowMillis()), nil
}

func (l *PaymentLedger) creditEarnings(journalistID string, amount uint64) error {
	balance, err := counterValue(l.store, earningsKey(journalistID), 0)
	if err != nil {
		return err
	}
	err = setCounterValue(l.store, earningsKey(journalistID), balance+amount)
	if err != nil {
		return fmt.Errorf("Error saving earnings balance: err: %v", err)
	}
	return nil
}
