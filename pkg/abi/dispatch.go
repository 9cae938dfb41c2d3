package abi // import "github.com/openpress/content-ledger/pkg/abi"

import (
	log "github.com/golang/glog"

	"github.com/openpress/content-ledger/pkg/ledger"
	"github.com/openpress/content-ledger/pkg/model"
	"github.com/openpress/content-ledger/pkg/storage"
)

// Operation names routed by the dispatcher
const (
	OpPublishArticle        = "publishArticle"
	OpGetArticle            = "getArticle"
	OpUpdateArticle         = "updateArticle"
	OpGetAuthorArticleCount = "getAuthorArticleCount"
	OpGetArticlesByAuthor   = "getArticlesByAuthor"
	OpIncrementViewCount    = "incrementViewCount"
	OpUpvoteContent         = "upvoteContent"
	OpDownvoteContent       = "downvoteContent"
	OpGetUserReputation     = "getUserReputation"
	OpGetArticleVotes       = "getArticleVotes"
	OpPayForArticle         = "payForArticle"
	OpTipJournalist         = "tipJournalist"
	OpProcessSubscription   = "processSubscription"
	OpGetEarnings           = "getEarnings"
	OpWithdrawEarnings      = "withdrawEarnings"
	OpHasArticleAccess      = "hasArticleAccess"
	OpHasActiveSubscription = "hasActiveSubscription"
)

// NewDispatcher is a convenience function to init a Dispatcher
func NewDispatcher(store storage.KeyValueStore, publisher ledger.EventPublisher) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
	}
}

// Dispatcher routes one encoded operation call per invocation to the
// ledger components. The components are constructed per call around the
// caller's identity context; each call runs to completion against the
// store before the dispatcher returns.
type Dispatcher struct {
	store     storage.KeyValueStore
	publisher ledger.EventPublisher
}

// Call invokes the named operation on behalf of callerID with the encoded
// argument payload and returns the encoded result. The payload is fully
// decoded and checked for the operation's exact argument cardinality
// before the operation runs, so a malformed, missing, or extra argument
// fails the call with ErrBadArguments without touching the store. Unknown
// names return ErrUnknownOperation; domain errors pass through from the
// components.
func (d *Dispatcher) Call(callerID string, operation string, payload []byte) ([]byte, error) {
	identity := ledger.NewSystemIdentity(callerID)
	decoder := NewDecoder(payload)

	result, err := d.route(identity, operation, decoder)
	if err != nil {
		return nil, err
	}
	return result.Bytes(), nil
}

func (d *Dispatcher) route(identity ledger.IdentityContext, operation string,
	decoder *Decoder) (*Encoder, error) {
	switch operation {
	case OpPublishArticle, OpGetArticle, OpUpdateArticle, OpGetAuthorArticleCount,
		OpGetArticlesByAuthor, OpIncrementViewCount:
		return d.routeRegistry(identity, operation, decoder)

	case OpUpvoteContent, OpDownvoteContent, OpGetUserReputation, OpGetArticleVotes:
		reputation := ledger.NewReputationLedger(d.store, identity)
		return d.routeReputation(reputation, operation, decoder)

	case OpPayForArticle, OpTipJournalist, OpProcessSubscription, OpGetEarnings,
		OpWithdrawEarnings, OpHasArticleAccess, OpHasActiveSubscription:
		payment := ledger.NewPaymentLedger(d.store, identity)
		return d.routePayment(payment, operation, decoder)
	}
	return nil, ErrUnknownOperation
}

func (d *Dispatcher) routeRegistry(identity ledger.IdentityContext, operation string,
	decoder *Decoder) (*Encoder, error) {
	registry := ledger.NewArticleRegistry(d.store, identity, d.publisher)
	result := NewEncoder()
	switch operation {
	case OpPublishArticle:
		args, err := decodeStrings(decoder, 3)
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		articleID, err := registry.PublishArticle(args[0], args[1], args[2])
		if err != nil {
			return nil, err
		}
		result.WriteString(articleID)

	case OpGetArticle:
		articleID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		article, err := registry.Article(articleID)
		if err != nil {
			return nil, err
		}
		// Overlay the live tallies the same way Article overlays views
		reputation := ledger.NewReputationLedger(d.store, identity)
		upvotes, downvotes, err := reputation.ArticleVotes(articleID)
		if err != nil {
			return nil, err
		}
		article.SetVoteCounts(upvotes, downvotes)
		encodeArticle(result, article)

	case OpUpdateArticle:
		args, err := decodeStrings(decoder, 2)
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = registry.UpdateArticle(args[0], args[1])
		if err != nil {
			return nil, err
		}

	case OpGetAuthorArticleCount:
		authorID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		count, err := registry.AuthorArticleCount(authorID)
		if err != nil {
			return nil, err
		}
		result.WriteUint64(count)

	case OpGetArticlesByAuthor:
		authorID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		articleIDs, err := registry.ArticlesByAuthor(authorID)
		if err != nil {
			return nil, err
		}
		result.WriteUint64(uint64(len(articleIDs)))
		for _, articleID := range articleIDs {
			result.WriteString(articleID)
		}

	case OpIncrementViewCount:
		articleID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = registry.IncrementViewCount(articleID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (d *Dispatcher) routeReputation(reputation *ledger.ReputationLedger, operation string,
	decoder *Decoder) (*Encoder, error) {
	result := NewEncoder()
	switch operation {
	case OpUpvoteContent:
		articleID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = reputation.UpvoteContent(articleID)
		if err != nil {
			return nil, err
		}

	case OpDownvoteContent:
		articleID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = reputation.DownvoteContent(articleID)
		if err != nil {
			return nil, err
		}

	case OpGetUserReputation:
		userID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		score, err := reputation.UserReputation(userID)
		if err != nil {
			return nil, err
		}
		result.WriteUint64(score)

	case OpGetArticleVotes:
		articleID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		upvotes, downvotes, err := reputation.ArticleVotes(articleID)
		if err != nil {
			return nil, err
		}
		result.WriteUint64(upvotes)
		result.WriteUint64(downvotes)
	}
	return result, nil
}

func (d *Dispatcher) routePayment(payment *ledger.PaymentLedger, operation string,
	decoder *Decoder) (*Encoder, error) {
	result := NewEncoder()
	switch operation {
	case OpPayForArticle:
		args, err := decodeStrings(decoder, 2)
		if err != nil {
			return nil, badArguments(operation, err)
		}
		amount, err := decoder.ReadUint64()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = payment.PayForArticle(args[0], args[1], amount)
		if err != nil {
			return nil, err
		}

	case OpTipJournalist:
		journalistID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		amount, err := decoder.ReadUint64()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = payment.TipJournalist(journalistID, amount)
		if err != nil {
			return nil, err
		}

	case OpProcessSubscription:
		journalistID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		fee, err := decoder.ReadUint64()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		durationDays, err := decoder.ReadUint64()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = payment.ProcessSubscription(journalistID, fee, durationDays)
		if err != nil {
			return nil, err
		}

	case OpGetEarnings:
		journalistID, err := decoder.ReadString()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		earnings, err := payment.Earnings(journalistID)
		if err != nil {
			return nil, err
		}
		result.WriteUint64(earnings)

	case OpWithdrawEarnings:
		amount, err := decoder.ReadUint64()
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		err = payment.WithdrawEarnings(amount)
		if err != nil {
			return nil, err
		}

	case OpHasArticleAccess:
		args, err := decodeStrings(decoder, 2)
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		hasAccess, err := payment.HasArticleAccess(args[0], args[1])
		if err != nil {
			return nil, err
		}
		result.WriteBool(hasAccess)

	case OpHasActiveSubscription:
		args, err := decodeStrings(decoder, 2)
		if err != nil {
			return nil, badArguments(operation, err)
		}
		err = finishDecode(operation, decoder)
		if err != nil {
			return nil, err
		}
		active, err := payment.HasActiveSubscription(args[0], args[1])
		if err != nil {
			return nil, err
		}
		result.WriteBool(active)
	}
	return result, nil
}

// encodeArticle writes the article's 15 fields in stored record order
func encodeArticle(result *Encoder, article *model.Article) {
	result.WriteString(article.ArticleID())
	result.WriteString(article.AuthorID())
	result.WriteString(article.Title())
	result.WriteString(article.Description())
	result.WriteString(article.ContentHash())
	result.WriteUint64(uint64(article.CreatedAt()))
	result.WriteUint64(uint64(article.UpdatedAt()))
	result.WriteString(article.CurrentVersionHash())
	result.WriteString(article.PreviousVersionHash())
	result.WriteUint64(uint64(article.Status()))
	result.WriteUint64(uint64(article.Monetization()))
	result.WriteUint64(article.Price())
	result.WriteUint64(article.ViewCount())
	result.WriteUint64(article.UpvoteCount())
	result.WriteUint64(article.DownvoteCount())
}

func decodeStrings(decoder *Decoder, count int) ([]string, error) {
	args := make([]string, count)
	for i := 0; i < count; i++ {
		arg, err := decoder.ReadString()
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// finishDecode verifies the payload held exactly the declared arguments.
// Runs before the operation does, so a cardinality mismatch cannot mutate
// state.
func finishDecode(operation string, decoder *Decoder) error {
	err := decoder.Finish()
	if err != nil {
		return badArguments(operation, err)
	}
	return nil
}

func badArguments(operation string, err error) error {
	log.Errorf("Error decoding %v arguments: err: %v", operation, err)
	return ErrBadArguments
}
