// Package model contains the general data models and interfaces for the content ledger.
package model // import "github.com/openpress/content-ledger/pkg/model"

import (
	"fmt"
	"strconv"
	"strings"
)

// VoteDirection specifies which way a vote was cast
type VoteDirection int

const (
	// VoteDirectionInvalid is an invalid vote direction
	VoteDirectionInvalid VoteDirection = iota

	// VoteDirectionUp is an upvote
	VoteDirectionUp

	// VoteDirectionDown is a downvote
	VoteDirectionDown
)

// DefaultReputation is the reputation score assumed for any user with no
// stored score
const DefaultReputation = uint64(100)

// NewVoteRecord creates a new VoteRecord
func NewVoteRecord(direction VoteDirection, castAt int64) *VoteRecord {
	return &VoteRecord{
		direction: direction,
		castAt:    castAt,
	}
}

// VoteRecord is the unique per-(voter, article) record enforcing
// one-vote-per-article. It is created exactly once and never updated.
type VoteRecord struct {
	direction VoteDirection

	castAt int64
}

// Direction returns the direction the vote was cast in
func (v *VoteRecord) Direction() VoteDirection {
	return v.direction
}

// CastAt returns the timestamp the vote was cast at in epoch millis
func (v *VoteRecord) CastAt() int64 {
	return v.castAt
}

// AsRecord serializes the vote record into its stored string form
func (v *VoteRecord) AsRecord() string {
	return fmt.Sprintf("%d|%d", int(v.direction), v.castAt)
}

// VoteRecordFromRecord parses the stored string form of a vote record
func VoteRecordFromRecord(record string) (*VoteRecord, error) {
	fields := strings.Split(record, "|")
	if len(fields) != 2 {
		return nil, fmt.Errorf("Invalid vote record: %v", record)
	}
	direction, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("Invalid vote direction: err: %v", err)
	}
	castAt, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid vote castAt: err: %v", err)
	}
	return NewVoteRecord(VoteDirection(direction), castAt), nil
}
