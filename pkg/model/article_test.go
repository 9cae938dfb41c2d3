package model_test

import (
	"testing"

	"github.com/openpress/content-ledger/pkg/model"

	cstrings "github.com/joincivil/go-common/pkg/strings"
)

func setupSampleArticle() *model.Article {
	contentHash, _ := cstrings.RandomHexStr(32)
	return model.NewArticle(&model.NewArticleParams{
		ArticleID:           "author1-1257894000000",
		AuthorID:            "author1",
		Title:               "test article",
		Description:         "a test article description",
		ContentHash:         contentHash,
		CreatedAt:           1257894000000,
		UpdatedAt:           1257894000000,
		CurrentVersionHash:  contentHash,
		PreviousVersionHash: "",
		Status:              model.StatusPublished,
		Monetization:        model.MonetizationFree,
		Price:               0,
		ViewCount:           5,
		UpvoteCount:         2,
		DownvoteCount:       1,
	})
}

func TestArticleAsRecordFromRecord(t *testing.T) {
	article := setupSampleArticle()
	record, err := article.AsRecord()
	if err != nil {
		t.Errorf("Should have serialized article: err: %v", err)
	}

	parsed, err := model.ArticleFromRecord(record)
	if err != nil {
		t.Errorf("Should have parsed article record: err: %v", err)
	}
	if parsed.ArticleID() != article.ArticleID() {
		t.Errorf("Should have matching article id: %v, %v", parsed.ArticleID(),
			article.ArticleID())
	}
	if parsed.AuthorID() != article.AuthorID() {
		t.Errorf("Should have matching author id: %v, %v", parsed.AuthorID(),
			article.AuthorID())
	}
	if parsed.Title() != article.Title() {
		t.Errorf("Should have matching title: %v, %v", parsed.Title(), article.Title())
	}
	if parsed.Description() != article.Description() {
		t.Errorf("Should have matching description")
	}
	if parsed.ContentHash() != article.ContentHash() {
		t.Errorf("Should have matching content hash")
	}
	if parsed.CreatedAt() != article.CreatedAt() {
		t.Errorf("Should have matching createdAt: %v, %v", parsed.CreatedAt(),
			article.CreatedAt())
	}
	if parsed.UpdatedAt() != article.UpdatedAt() {
		t.Errorf("Should have matching updatedAt")
	}
	if parsed.CurrentVersionHash() != article.CurrentVersionHash() {
		t.Errorf("Should have matching current version hash")
	}
	if parsed.PreviousVersionHash() != article.PreviousVersionHash() {
		t.Errorf("Should have matching previous version hash")
	}
	if parsed.Status() != article.Status() {
		t.Errorf("Should have matching status: %v, %v", parsed.Status(), article.Status())
	}
	if parsed.Monetization() != article.Monetization() {
		t.Errorf("Should have matching monetization")
	}
	if parsed.Price() != article.Price() {
		t.Errorf("Should have matching price")
	}
	if parsed.ViewCount() != article.ViewCount() {
		t.Errorf("Should have matching view count: %v, %v", parsed.ViewCount(),
			article.ViewCount())
	}
	if parsed.UpvoteCount() != article.UpvoteCount() {
		t.Errorf("Should have matching upvote count")
	}
	if parsed.DownvoteCount() != article.DownvoteCount() {
		t.Errorf("Should have matching downvote count")
	}
}

func TestArticleAsRecordDelimiterInTitle(t *testing.T) {
	article := model.NewArticle(&model.NewArticleParams{
		ArticleID: "author1-1257894000000",
		AuthorID:  "author1",
		Title:     "a title with a | in it",
	})
	_, err := article.AsRecord()
	if err != model.ErrDelimiterInField {
		t.Errorf("Should have rejected delimiter in title: err: %v", err)
	}
}

func TestArticleAsRecordDelimiterInDescription(t *testing.T) {
	article := model.NewArticle(&model.NewArticleParams{
		ArticleID:   "author1-1257894000000",
		AuthorID:    "author1",
		Title:       "a title",
		Description: "description | with delimiter",
	})
	_, err := article.AsRecord()
	if err != model.ErrDelimiterInField {
		t.Errorf("Should have rejected delimiter in description: err: %v", err)
	}
}

func TestArticleAsRecordDelimiterInAuthorID(t *testing.T) {
	article := model.NewArticle(&model.NewArticleParams{
		ArticleID: "evil|user-1257894000000",
		AuthorID:  "evil|user",
		Title:     "a title",
	})
	_, err := article.AsRecord()
	if err != model.ErrDelimiterInField {
		t.Errorf("Should have rejected delimiter in author id: err: %v", err)
	}
}

func TestArticleFromRecordBadFieldCount(t *testing.T) {
	_, err := model.ArticleFromRecord("only|three|fields")
	if err == nil {
		t.Errorf("Should have failed to parse record with too few fields")
	}
}

func TestArticleFromRecordBadNumericField(t *testing.T) {
	article := setupSampleArticle()
	record, _ := article.AsRecord()
	bad := record[:len(record)-1] + "x"
	_, err := model.ArticleFromRecord(bad)
	if err == nil {
		t.Errorf("Should have failed to parse record with bad numeric field")
	}
}

func TestArticleSetRevisionHashes(t *testing.T) {
	article := setupSampleArticle()
	originalHash := article.CurrentVersionHash()
	newHash, _ := cstrings.RandomHexStr(32)

	article.SetRevisionHashes(newHash)
	if article.CurrentVersionHash() != newHash {
		t.Errorf("Should have set new current version hash")
	}
	if article.PreviousVersionHash() != originalHash {
		t.Errorf("Should have rotated old hash to previous version hash")
	}
	if article.ContentHash() != newHash {
		t.Errorf("Should have updated content hash")
	}
}

func TestArticleSetStatus(t *testing.T) {
	article := setupSampleArticle()
	err := article.SetStatus(model.StatusDisputed)
	if err != nil {
		t.Errorf("Should have allowed published to disputed: err: %v", err)
	}
	err = article.SetStatus(model.StatusVerified)
	if err != nil {
		t.Errorf("Should have allowed disputed to verified: err: %v", err)
	}
	err = article.SetStatus(model.StatusDraft)
	if err == nil {
		t.Errorf("Should not have allowed verified to draft")
	}
}

func TestAuthorListRecord(t *testing.T) {
	articleIDs := []string{"author1-1", "author1-2", "author1-3"}
	record := model.AuthorListAsRecord(articleIDs)
	parsed := model.AuthorListFromRecord(record)
	if len(parsed) != len(articleIDs) {
		t.Errorf("Should have parsed %v ids, got %v", len(articleIDs), len(parsed))
	}
	for index, articleID := range articleIDs {
		if parsed[index] != articleID {
			t.Errorf("Should have preserved id order at %v: %v, %v", index,
				parsed[index], articleID)
		}
	}
}

func TestAuthorListFromRecordEmpty(t *testing.T) {
	parsed := model.AuthorListFromRecord("")
	if len(parsed) != 0 {
		t.Errorf("Should have parsed empty record to empty list, got %v", parsed)
	}
}
