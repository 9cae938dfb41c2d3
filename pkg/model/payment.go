// Package model contains the general data models and interfaces for the content ledger.
package model // import "github.com/openpress/content-ledger/pkg/model"

import (
	"fmt"
	"strconv"
	"strings"
)

// NewPaymentRecord creates a new PaymentRecord
func NewPaymentRecord(amountPaid uint64, paidAt int64) *PaymentRecord {
	return &PaymentRecord{
		amountPaid: amountPaid,
		paidAt:     paidAt,
	}
}

// PaymentRecord is the access-grant marker for a (reader, article) pair.
// Its existence is the sole access-control predicate; a repeat payment
// overwrites the prior record.
type PaymentRecord struct {
	amountPaid uint64

	paidAt int64
}

// AmountPaid returns the amount paid in the smallest currency unit
func (p *PaymentRecord) AmountPaid() uint64 {
	return p.amountPaid
}

// PaidAt returns the payment timestamp in epoch millis
func (p *PaymentRecord) PaidAt() int64 {
	return p.paidAt
}

// AsRecord serializes the payment record into its stored string form
func (p *PaymentRecord) AsRecord() string {
	return fmt.Sprintf("%d|%d", p.amountPaid, p.paidAt)
}

// PaymentRecordFromRecord parses the stored string form of a payment record
func PaymentRecordFromRecord(record string) (*PaymentRecord, error) {
	fields := strings.Split(record, "|")
	if len(fields) != 2 {
		return nil, fmt.Errorf("Invalid payment record: %v", record)
	}
	amountPaid, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid payment amount: err: %v", err)
	}
	paidAt, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid payment paidAt: err: %v", err)
	}
	return NewPaymentRecord(amountPaid, paidAt), nil
}

// NewSubscriptionRecord creates a new SubscriptionRecord
func NewSubscriptionRecord(expiresAt int64) *SubscriptionRecord {
	return &SubscriptionRecord{expiresAt: expiresAt}
}

// SubscriptionRecord holds the expiration of a (subscriber, journalist)
// subscription. Re-subscribing overwrites the expiration with a new
// absolute value.
type SubscriptionRecord struct {
	expiresAt int64
}

// ExpiresAt returns the expiration timestamp in epoch millis
func (s *SubscriptionRecord) ExpiresAt() int64 {
	return s.expiresAt
}

// Active returns true if the subscription has not expired as of now
func (s *SubscriptionRecord) Active(nowMillis int64) bool {
	return s.expiresAt > nowMillis
}

// AsRecord serializes the subscription record into its stored string form
func (s *SubscriptionRecord) AsRecord() string {
	return strconv.FormatInt(s.expiresAt, 10)
}

// SubscriptionRecordFromRecord parses the stored string form of a
// subscription record
func SubscriptionRecordFromRecord(record string) (*SubscriptionRecord, error) {
	expiresAt, err := strconv.ParseInt(record, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid subscription record: err: %v", err)
	}
	return NewSubscriptionRecord(expiresAt), nil
}
