package abi_test

import (
	"testing"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/openpress/content-ledger/pkg/abi"
	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
)

func setupDispatcher() (*abi.Dispatcher, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return abi.NewDispatcher(store, nil), store
}

func encodeStrings(values ...string) []byte {
	enc := abi.NewEncoder()
	for _, value := range values {
		enc.WriteString(value)
	}
	return enc.Bytes()
}

func publishTestArticle(t *testing.T, dispatcher *abi.Dispatcher, callerID string) string {
	payload := encodeStrings("test title", "test description", "hash1")
	result, err := dispatcher.Call(callerID, abi.OpPublishArticle, payload)
	if err != nil {
		t.Fatalf("Should have published article: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	articleID, err := dec.ReadString()
	if err != nil {
		t.Fatalf("Should have decoded article id: err: %v", err)
	}
	return articleID
}

func TestDispatchPublishAndGetArticle(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	articleID := publishTestArticle(t, dispatcher, "author1")

	result, err := dispatcher.Call("reader1", abi.OpGetArticle, encodeStrings(articleID))
	if err != nil {
		t.Errorf("Should have retrieved article: err: %v", err)
	}

	dec := abi.NewDecoder(result)
	gotID, _ := dec.ReadString()
	if gotID != articleID {
		t.Errorf("Should have returned the article id first: %v", gotID)
	}
	authorID, _ := dec.ReadString()
	if authorID != "author1" {
		t.Errorf("Should have returned the author id: %v", authorID)
	}
	title, _ := dec.ReadString()
	if title != "test title" {
		t.Errorf("Should have returned the title: %v", title)
	}
	description, _ := dec.ReadString()
	if description != "test description" {
		t.Errorf("Should have returned the description: %v", description)
	}
	contentHash, _ := dec.ReadString()
	if contentHash != "hash1" {
		t.Errorf("Should have returned the content hash: %v", contentHash)
	}
	createdAt, _ := dec.ReadUint64()
	if createdAt == 0 {
		t.Errorf("Should have returned a createdAt timestamp")
	}
	_, _ = dec.ReadUint64() // updatedAt
	currentHash, _ := dec.ReadString()
	if currentHash != "hash1" {
		t.Errorf("Should have returned the current version hash: %v", currentHash)
	}
	previousHash, _ := dec.ReadString()
	if previousHash != "" {
		t.Errorf("Should have returned an empty previous version hash: %v", previousHash)
	}
	status, _ := dec.ReadUint64()
	if status != uint64(model.StatusPublished) {
		t.Errorf("Should have returned published status: %v", status)
	}
	monetization, _ := dec.ReadUint64()
	if monetization != uint64(model.MonetizationFree) {
		t.Errorf("Should have returned free monetization: %v", monetization)
	}
	_, _ = dec.ReadUint64() // price
	viewCount, _ := dec.ReadUint64()
	if viewCount != 0 {
		t.Errorf("Should have returned zero views: %v", viewCount)
	}
	_, _ = dec.ReadUint64() // upvoteCount
	_, _ = dec.ReadUint64() // downvoteCount
	err = dec.Finish()
	if err != nil {
		t.Errorf("Should have encoded exactly 15 fields: err: %v", err)
	}
}

func TestDispatchGetArticleNotFound(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	_, err := dispatcher.Call("reader1", abi.OpGetArticle, encodeStrings("nonexistent"))
	if err != cpersist.ErrPersisterNoResults {
		t.Errorf("Should have returned no results: err: %v", err)
	}
}

func TestDispatchUnknownOperation(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	_, err := dispatcher.Call("caller1", "notAnOperation", []byte{})
	if err != abi.ErrUnknownOperation {
		t.Errorf("Should have rejected unknown operation: err: %v", err)
	}
}

func TestDispatchBadArguments(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	_, err := dispatcher.Call("author1", abi.OpPublishArticle, []byte{1, 2})
	if err != abi.ErrBadArguments {
		t.Errorf("Should have rejected malformed payload: err: %v", err)
	}
}

func TestDispatchTrailingBytes(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	payload := encodeStrings("test title", "test description", "hash1", "extra")
	_, err := dispatcher.Call("author1", abi.OpPublishArticle, payload)
	if err != abi.ErrBadArguments {
		t.Errorf("Should have rejected extra arguments: err: %v", err)
	}

	count, err := dispatcher.Call("reader1", abi.OpGetAuthorArticleCount,
		encodeStrings("author1"))
	if err != nil {
		t.Errorf("Should have retrieved count: err: %v", err)
	}
	dec := abi.NewDecoder(count)
	published, _ := dec.ReadUint64()
	if published != 0 {
		t.Errorf("Should not have published from a rejected payload: %v", published)
	}
}

func TestDispatchTrailingBytesCommitNothing(t *testing.T) {
	dispatcher, _ := setupDispatcher()

	payload := append(encodeStrings("article1"), 0xff)
	_, err := dispatcher.Call("voter1", abi.OpUpvoteContent, payload)
	if err != abi.ErrBadArguments {
		t.Errorf("Should have rejected trailing byte: err: %v", err)
	}

	result, err := dispatcher.Call("reader1", abi.OpGetArticleVotes,
		encodeStrings("article1"))
	if err != nil {
		t.Errorf("Should have retrieved votes: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	upvotes, _ := dec.ReadUint64()
	if upvotes != 0 {
		t.Errorf("Should not have tallied a rejected vote: %v", upvotes)
	}

	// A clean retry is a first vote, not a duplicate
	_, err = dispatcher.Call("voter1", abi.OpUpvoteContent, encodeStrings("article1"))
	if err != nil {
		t.Errorf("Should have accepted clean retry after rejection: err: %v", err)
	}
}

func TestDispatchAuthorListing(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	articleID := publishTestArticle(t, dispatcher, "author1")

	result, err := dispatcher.Call("reader1", abi.OpGetAuthorArticleCount,
		encodeStrings("author1"))
	if err != nil {
		t.Errorf("Should have retrieved count: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	count, _ := dec.ReadUint64()
	if count != 1 {
		t.Errorf("Should have counted 1 article: %v", count)
	}

	result, err = dispatcher.Call("reader1", abi.OpGetArticlesByAuthor,
		encodeStrings("author1"))
	if err != nil {
		t.Errorf("Should have retrieved listing: err: %v", err)
	}
	dec = abi.NewDecoder(result)
	listed, _ := dec.ReadUint64()
	if listed != 1 {
		t.Errorf("Should have listed 1 article: %v", listed)
	}
	gotID, _ := dec.ReadString()
	if gotID != articleID {
		t.Errorf("Should have listed the published article: %v", gotID)
	}
}

func TestDispatchVotes(t *testing.T) {
	dispatcher, _ := setupDispatcher()

	_, err := dispatcher.Call("voter1", abi.OpUpvoteContent, encodeStrings("article1"))
	if err != nil {
		t.Errorf("Should have upvoted: err: %v", err)
	}
	_, err = dispatcher.Call("voter1", abi.OpUpvoteContent, encodeStrings("article1"))
	if err != model.ErrAlreadyVoted {
		t.Errorf("Should have rejected second vote: err: %v", err)
	}
	_, err = dispatcher.Call("voter2", abi.OpDownvoteContent, encodeStrings("article1"))
	if err != nil {
		t.Errorf("Should have downvoted: err: %v", err)
	}

	result, err := dispatcher.Call("reader1", abi.OpGetArticleVotes,
		encodeStrings("article1"))
	if err != nil {
		t.Errorf("Should have retrieved votes: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	upvotes, _ := dec.ReadUint64()
	downvotes, _ := dec.ReadUint64()
	if upvotes != 1 || downvotes != 1 {
		t.Errorf("Should have tallied 1 up and 1 down: %v, %v", upvotes, downvotes)
	}

	result, err = dispatcher.Call("reader1", abi.OpGetUserReputation,
		encodeStrings("voter1"))
	if err != nil {
		t.Errorf("Should have retrieved reputation: err: %v", err)
	}
	dec = abi.NewDecoder(result)
	score, _ := dec.ReadUint64()
	if score != model.DefaultReputation+1 {
		t.Errorf("Should have rewarded the upvoter: %v", score)
	}
}

func TestDispatchPayments(t *testing.T) {
	dispatcher, _ := setupDispatcher()

	payload := abi.NewEncoder()
	payload.WriteString("article1")
	payload.WriteString("journalist1")
	payload.WriteUint64(500)
	_, err := dispatcher.Call("reader1", abi.OpPayForArticle, payload.Bytes())
	if err != nil {
		t.Errorf("Should have paid for article: err: %v", err)
	}

	result, err := dispatcher.Call("reader1", abi.OpHasArticleAccess,
		encodeStrings("reader1", "article1"))
	if err != nil {
		t.Errorf("Should have checked access: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	hasAccess, _ := dec.ReadUint64()
	if hasAccess != 1 {
		t.Errorf("Should have access after payment: %v", hasAccess)
	}

	result, err = dispatcher.Call("journalist1", abi.OpGetEarnings,
		encodeStrings("journalist1"))
	if err != nil {
		t.Errorf("Should have retrieved earnings: err: %v", err)
	}
	dec = abi.NewDecoder(result)
	earnings, _ := dec.ReadUint64()
	if earnings != 500 {
		t.Errorf("Should have earned 500: %v", earnings)
	}

	withdraw := abi.NewEncoder()
	withdraw.WriteUint64(200)
	_, err = dispatcher.Call("journalist1", abi.OpWithdrawEarnings, withdraw.Bytes())
	if err != nil {
		t.Errorf("Should have withdrawn 200: err: %v", err)
	}

	overdraw := abi.NewEncoder()
	overdraw.WriteUint64(1000)
	_, err = dispatcher.Call("journalist1", abi.OpWithdrawEarnings, overdraw.Bytes())
	if err != model.ErrInsufficientBalance {
		t.Errorf("Should have rejected overdraw: err: %v", err)
	}
}

func TestDispatchSubscription(t *testing.T) {
	dispatcher, _ := setupDispatcher()

	payload := abi.NewEncoder()
	payload.WriteString("journalist1")
	payload.WriteUint64(1000)
	payload.WriteUint64(30)
	_, err := dispatcher.Call("subscriber1", abi.OpProcessSubscription, payload.Bytes())
	if err != nil {
		t.Errorf("Should have processed subscription: err: %v", err)
	}

	result, err := dispatcher.Call("subscriber1", abi.OpHasActiveSubscription,
		encodeStrings("subscriber1", "journalist1"))
	if err != nil {
		t.Errorf("Should have checked subscription: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	active, _ := dec.ReadUint64()
	if active != 1 {
		t.Errorf("Should have active subscription: %v", active)
	}
}

func TestDispatchArticleVoteTallies(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	articleID := publishTestArticle(t, dispatcher, "author1")

	_, _ = dispatcher.Call("voter1", abi.OpUpvoteContent, encodeStrings(articleID))
	_, _ = dispatcher.Call("voter2", abi.OpUpvoteContent, encodeStrings(articleID))
	_, _ = dispatcher.Call("voter3", abi.OpDownvoteContent, encodeStrings(articleID))

	result, err := dispatcher.Call("reader1", abi.OpGetArticle, encodeStrings(articleID))
	if err != nil {
		t.Errorf("Should have retrieved article: err: %v", err)
	}
	dec := abi.NewDecoder(result)
	for i := 0; i < 5; i++ {
		_, _ = dec.ReadString()
	}
	_, _ = dec.ReadUint64() // createdAt
	_, _ = dec.ReadUint64() // updatedAt
	_, _ = dec.ReadString() // currentVersionHash
	_, _ = dec.ReadString() // previousVersionHash
	_, _ = dec.ReadUint64() // status
	_, _ = dec.ReadUint64() // monetization
	_, _ = dec.ReadUint64() // price
	_, _ = dec.ReadUint64() // viewCount
	upvotes, _ := dec.ReadUint64()
	downvotes, _ := dec.ReadUint64()
	if upvotes != 2 {
		t.Errorf("Should have folded live upvote tally into article: %v", upvotes)
	}
	if downvotes != 1 {
		t.Errorf("Should have folded live downvote tally into article: %v", downvotes)
	}
}

func TestDispatchUpdateArticleNotAuthor(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	articleID := publishTestArticle(t, dispatcher, "author1")

	_, err := dispatcher.Call("someoneelse", abi.OpUpdateArticle,
		encodeStrings(articleID, "hash2"))
	if err != model.ErrNotAuthor {
		t.Errorf("Should have rejected non-author update: err: %v", err)
	}
}

func TestDispatchViewCount(t *testing.T) {
	dispatcher, _ := setupDispatcher()
	articleID := publishTestArticle(t, dispatcher, "author1")

	for i := 0; i < 3; i++ {
		_, err := dispatcher.Call("reader1", abi.OpIncrementViewCount,
			encodeStrings(articleID))
		if err != nil {
			t.Errorf("Should have incremented views: err: %v", err)
		}
	}

	result, _ := dispatcher.Call("reader1", abi.OpGetArticle, encodeStrings(articleID))
	dec := abi.NewDecoder(result)
	for i := 0; i < 5; i++ {
		_, _ = dec.ReadString()
	}
	_, _ = dec.ReadUint64() // createdAt
	_, _ = dec.ReadUint64() // updatedAt
	_, _ = dec.ReadString() // currentVersionHash
	_, _ = dec.ReadString() // previousVersionHash
	_, _ = dec.ReadUint64() // status
	_, _ = dec.ReadUint64() // monetization
	_, _ = dec.ReadUint64() // price
	viewCount, _ := dec.ReadUint64()
	if viewCount != 3 {
		t.Errorf("Should have counted 3 views: %v", viewCount)
	}
}
