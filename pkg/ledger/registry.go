package ledger // import "github.com/openpress/content-ledger/pkg/ledger"

import (
	"fmt"

	log "github.com/golang/glog"

	cpersist "github.com/joincivil/go-common/pkg/persistence"

	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
)

// NewArticleRegistry is a convenience function to init an ArticleRegistry
func NewArticleRegistry(store storage.KeyValueStore, identity IdentityContext,
	publisher EventPublisher) *ArticleRegistry {
	if publisher == nil {
		publisher = &NullPublisher{}
	}
	return &ArticleRegistry{
		store:     store,
		identity:  identity,
		publisher: publisher,
	}
}

// ArticleRegistry mints article identities, stores and retrieves article
// metadata, maintains per-author listings, and tracks view counts.
type ArticleRegistry struct {
	store     storage.KeyValueStore
	identity  IdentityContext
	publisher EventPublisher
}

// PublishArticle creates a new article record for the caller and returns
// the minted article id. The id is derived from (caller, timestamp); the
// host timestamp granularity makes it unique by convention. Emits a
// publication event; a publish failure there is logged, not returned.
func (r *ArticleRegistry) PublishArticle(title string, description string,
	contentHash string) (string, error) {
	authorID := r.identity.CallerID()
	now := r.identity.NowMillis()
	articleID := fmt.Sprintf("%s-%d", authorID, now)

	article := model.NewArticle(&model.NewArticleParams{
		ArticleID:           articleID,
		AuthorID:            authorID,
		Title:               title,
		Description:         description,
		ContentHash:         contentHash,
		CreatedAt:           now,
		UpdatedAt:           now,
		CurrentVersionHash:  contentHash,
		PreviousVersionHash: "",
		Status:              model.StatusPublished,
		Monetization:        model.MonetizationFree,
	})
	record, err := article.AsRecord()
	if err != nil {
		return "", err
	}

	err = r.store.Set(articleKey(articleID), record)
	if err != nil {
		return "", fmt.Errorf("Error saving article record: err: %v", err)
	}

	err = r.appendToAuthorIndex(authorID, articleID)
	if err != nil {
		return "", err
	}

	err = r.publisher.PublishArticleEvent(articleID, authorID)
	if err != nil {
		log.Errorf("Error publishing article event for %v: err: %v", articleID, err)
	}

	log.Infof("Published article %v by %v\n", articleID, authorID)
	return articleID, nil
}

// Article retrieves the article record for the given id. Returns
// cpersist.ErrPersisterNoResults if no article exists under the id. The
// live view counter is folded into the returned record.
func (r *ArticleRegistry) Article(articleID string) (*model.Article, error) {
	record, err := r.store.Get(articleKey(articleID))
	if err == cpersist.ErrPersisterNoResults {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("Error retrieving article record: err: %v", err)
	}
	article, err := model.ArticleFromRecord(record)
	if err != nil {
		return nil, err
	}
	views, err := counterValue(r.store, viewCountKey(articleID), article.ViewCount())
	if err != nil {
		return nil, err
	}
	article.SetViewCount(views)
	return article, nil
}

// UpdateArticle stores a new revision of an existing article. Only the
// publishing author may revise; the current version hash rotates into the
// previous version hash.
func (r *ArticleRegistry) UpdateArticle(articleID string, newContentHash string) error {
	record, err := r.store.Get(articleKey(articleID))
	if err == cpersist.ErrPersisterNoResults {
		return err
	}
	if err != nil {
		return fmt.Errorf("Error retrieving article record: err: %v", err)
	}
	article, err := model.ArticleFromRecord(record)
	if err != nil {
		return err
	}
	if article.AuthorID() != r.identity.CallerID() {
		return model.ErrNotAuthor
	}
	article.SetRevisionHashes(newContentHash)
	article.SetUpdatedAt(r.identity.NowMillis())
	updated, err := article.AsRecord()
	if err != nil {
		return err
	}
	return r.store.Set(articleKey(articleID), updated)
}

// AuthorArticleCount returns the number of articles the author has
// published, 0 if the author never published
func (r *ArticleRegistry) AuthorArticleCount(authorID string) (uint64, error) {
	return counterValue(r.store, authorCountKey(authorID), 0)
}

// ArticlesByAuthor returns the author's article ids in insertion order,
// possibly empty
func (r *ArticleRegistry) ArticlesByAuthor(authorID string) ([]string, error) {
	record, err := r.store.Get(authorArticlesKey(authorID))
	if err == cpersist.ErrPersisterNoResults {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Error retrieving author index: err: %v", err)
	}
	return model.AuthorListFromRecord(record), nil
}

// IncrementViewCount adds one view to the article's view counter. The
// counter is keyed independently of the article record, so this succeeds
// for ids with no stored article. Guarding against double-counting a
// single physical view is the caller's responsibility.
func (r *ArticleRegistry) IncrementViewCount(articleID string) error {
	views, err := counterValue(r.store, viewCountKey(articleID), 0)
	if err != nil {
		return err
	}
	return setCounterValue(r.store, viewCountKey(articleID), views+1)
}

func (r *ArticleRegistry) appendToAuthorIndex(authorID string, articleID string) error {
	articleIDs, err := r.ArticlesByAuthor(authorID)
	if err != nil {
		return err
	}
	articleIDs = append(articleIDs, articleID)
	err = r.store.Set(authorArticlesKey(authorID), model.AuthorListAsRecord(articleIDs))
	if err != nil {
		return fmt.Errorf("Error saving author index: err: %v", err)
	}
	count, err := counterValue(r.store, authorCountKey(authorID), 0)
	if err != nil {
		return err
	}
	return setCounterValue(r.store, authorCountKey(authorID), count+1)
}
