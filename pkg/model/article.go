// Package model contains the general data models and interfaces for the content ledger.
package model // import "github.com/openpress/content-ledger/pkg/model"

import (
	"fmt"
	"strconv"
	"strings"
)

// ArticleStatus specifies the current editorial state of an article
type ArticleStatus int

const (
	// StatusDraft is an article that has not been published yet
	StatusDraft ArticleStatus = iota

	// StatusPublished is an article visible on the platform
	StatusPublished

	// StatusDisputed is an article under an active dispute
	StatusDisputed

	// StatusVerified is an article that passed verification
	StatusVerified

	// StatusArchived is a terminal state reached via moderation
	StatusArchived
)

// Monetization specifies how an article is monetized
type Monetization int

const (
	// MonetizationFree is a freely readable article
	MonetizationFree Monetization = iota

	// MonetizationPaid is a pay-per-article read
	MonetizationPaid

	// MonetizationNFT is an article sold as a collectible
	MonetizationNFT

	// MonetizationSubscription is an article gated behind a journalist subscription
	MonetizationSubscription
)

var validStatusTransitions = map[ArticleStatus][]ArticleStatus{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusDisputed, StatusVerified, StatusArchived},
	StatusDisputed:  {StatusVerified, StatusArchived},
	StatusVerified:  {},
	StatusArchived:  {},
}

// articleRecordNumFields is the number of pipe-delimited fields in a stored
// article record. The field order is fixed for compatibility with existing
// stored data and must not change.
const articleRecordNumFields = 15

// articleRecordDelimiter separates fields in a stored article record
const articleRecordDelimiter = "|"

// authorListDelimiter separates article ids in a stored author index
const authorListDelimiter = ","

// NewArticleParams are the params to initialize a new Article
type NewArticleParams struct {
	ArticleID           string
	AuthorID            string
	Title               string
	Description         string
	ContentHash         string
	CreatedAt           int64
	UpdatedAt           int64
	CurrentVersionHash  string
	PreviousVersionHash string
	Status              ArticleStatus
	Monetization        Monetization
	Price               uint64
	ViewCount           uint64
	UpvoteCount         uint64
	DownvoteCount       uint64
}

// NewArticle is a convenience function to init an Article struct
func NewArticle(params *NewArticleParams) *Article {
	return &Article{
		articleID:           params.ArticleID,
		authorID:            params.AuthorID,
		title:               params.Title,
		description:         params.Description,
		contentHash:         params.ContentHash,
		createdAt:           params.CreatedAt,
		updatedAt:           params.UpdatedAt,
		currentVersionHash:  params.CurrentVersionHash,
		previousVersionHash: params.PreviousVersionHash,
		status:              params.Status,
		monetization:        params.Monetization,
		price:               params.Price,
		viewCount:           params.ViewCount,
		upvoteCount:         params.UpvoteCount,
		downvoteCount:       params.DownvoteCount,
	}
}

// Article represents a published content unit on the platform
type Article struct {
	articleID string

	authorID string

	title string

	description string

	// contentHash is the content-addressed pointer into the external store
	contentHash string

	createdAt int64

	updatedAt int64

	currentVersionHash string

	previousVersionHash string

	status ArticleStatus

	monetization Monetization

	// price in the smallest currency unit
	price uint64

	viewCount uint64

	upvoteCount uint64

	downvoteCount uint64
}

// ArticleID returns the unique id minted for this article
func (a *Article) ArticleID() string {
	return a.articleID
}

// AuthorID returns the id of the publishing author
func (a *Article) AuthorID() string {
	return a.authorID
}

// Title returns the article title
func (a *Article) Title() string {
	return a.title
}

// Description returns the article description
func (a *Article) Description() string {
	return a.description
}

// ContentHash returns the content-addressed hash of the article body
func (a *Article) ContentHash() string {
	return a.contentHash
}

// CreatedAt returns the creation timestamp in epoch millis
func (a *Article) CreatedAt() int64 {
	return a.createdAt
}

// UpdatedAt returns the last update timestamp in epoch millis
func (a *Article) UpdatedAt() int64 {
	return a.updatedAt
}

// CurrentVersionHash returns the hash of the latest revision
func (a *Article) CurrentVersionHash() string {
	return a.currentVersionHash
}

// PreviousVersionHash returns the hash of the prior revision, empty if none
func (a *Article) PreviousVersionHash() string {
	return a.previousVersionHash
}

// Status returns the editorial status
func (a *Article) Status() ArticleStatus {
	return a.status
}

// Monetization returns the monetization mode
func (a *Article) Monetization() Monetization {
	return a.monetization
}

// Price returns the listed price in the smallest currency unit
func (a *Article) Price() uint64 {
	return a.price
}

// ViewCount returns the view counter
func (a *Article) ViewCount() uint64 {
	return a.viewCount
}

// UpvoteCount returns the upvote counter
func (a *Article) UpvoteCount() uint64 {
	return a.upvoteCount
}

// DownvoteCount returns the downvote counter
func (a *Article) DownvoteCount() uint64 {
	return a.downvoteCount
}

// SetViewCount sets the view counter
func (a *Article) SetViewCount(count uint64) {
	a.viewCount = count
}

// SetVoteCounts sets the upvote and downvote counters
func (a *Article) SetVoteCounts(upvotes uint64, downvotes uint64) {
	a.upvoteCount = upvotes
	a.downvoteCount = downvotes
}

// SetUpdatedAt sets the last update timestamp
func (a *Article) SetUpdatedAt(ts int64) {
	a.updatedAt = ts
}

// SetRevisionHashes rotates the current version hash into the previous
// version hash and records the new current hash
func (a *Article) SetRevisionHashes(newVersionHash string) {
	a.previousVersionHash = a.currentVersionHash
	a.currentVersionHash = newVersionHash
	a.contentHash = newVersionHash
}

// SetStatus moves the article to a new status. Returns an error if the
// transition is not a legal one.
func (a *Article) SetStatus(status ArticleStatus) error {
	for _, s := range validStatusTransitions[a.status] {
		if s == status {
			a.status = status
			return nil
		}
	}
	return fmt.Errorf("Invalid status transition: %v to %v", a.status, status)
}

// AsRecord serializes the article into its stored string form: 15
// pipe-delimited fields in fixed order. Any string field containing the
// delimiter is rejected rather than written, since it would corrupt
// parsing on the way back out. The ids are included because they arrive
// from the untrusted caller identity.
func (a *Article) AsRecord() (string, error) {
	for _, field := range []string{a.articleID, a.authorID, a.title, a.description,
		a.contentHash, a.currentVersionHash, a.previousVersionHash} {
		if strings.Contains(field, articleRecordDelimiter) {
			return "", ErrDelimiterInField
		}
	}
	fields := []string{
		a.articleID,
		a.authorID,
		a.title,
		a.description,
		a.contentHash,
		strconv.FormatInt(a.createdAt, 10),
		strconv.FormatInt(a.updatedAt, 10),
		a.currentVersionHash,
		a.previousVersionHash,
		strconv.Itoa(int(a.status)),
		strconv.Itoa(int(a.monetization)),
		strconv.FormatUint(a.price, 10),
		strconv.FormatUint(a.viewCount, 10),
		strconv.FormatUint(a.upvoteCount, 10),
		strconv.FormatUint(a.downvoteCount, 10),
	}
	return strings.Join(fields, articleRecordDelimiter), nil
}

// ArticleFromRecord parses the stored string form of an article back into
// an Article struct
func ArticleFromRecord(record string) (*Article, error) {
	fields := strings.Split(record, articleRecordDelimiter)
	if len(fields) != articleRecordNumFields {
		return nil, fmt.Errorf("Invalid article record: have %v fields, want %v",
			len(fields), articleRecordNumFields)
	}
	createdAt, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article createdAt: err: %v", err)
	}
	updatedAt, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article updatedAt: err: %v", err)
	}
	status, err := strconv.Atoi(fields[9])
	if err != nil {
		return nil, fmt.Errorf("Invalid article status: err: %v", err)
	}
	monetization, err := strconv.Atoi(fields[10])
	if err != nil {
		return nil, fmt.Errorf("Invalid article monetization: err: %v", err)
	}
	price, err := strconv.ParseUint(fields[11], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article price: err: %v", err)
	}
	viewCount, err := strconv.ParseUint(fields[12], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article viewCount: err: %v", err)
	}
	upvoteCount, err := strconv.ParseUint(fields[13], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article upvoteCount: err: %v", err)
	}
	downvoteCount, err := strconv.ParseUint(fields[14], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid article downvoteCount: err: %v", err)
	}
	return NewArticle(&NewArticleParams{
		ArticleID:           fields[0],
		AuthorID:            fields[1],
		Title:               fields[2],
		Description:         fields[3],
		ContentHash:         fields[4],
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
		CurrentVersionHash:  fields[7],
		PreviousVersionHash: fields[8],
		Status:              ArticleStatus(status),
		Monetization:        Monetization(monetization),
		Price:               price,
		ViewCount:           viewCount,
		UpvoteCount:         upvoteCount,
		DownvoteCount:       downvoteCount,
	}), nil
}

// AuthorListFromRecord parses the stored comma-delimited author index into
// an ordered slice of article ids
func AuthorListFromRecord(record string) []string {
	if record == "" {
		return []string{}
	}
	return strings.Split(record, authorListDelimiter)
}

// AuthorListAsRecord serializes an ordered slice of article ids into the
// stored comma-delimited form
func AuthorListAsRecord(articleIDs []string) string {
	return strings.Join(articleIDs, authorListDelimiter)
}
