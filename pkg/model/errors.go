// Package model contains the general data models and interfaces for the content ledger.
package model // import "github.com/openpress/content-ledger/pkg/model"

import (
	"errors"
)

var (
	// ErrAlreadyVoted is returned when a voter attempts a second vote on
	// the same article. This is a permanent rejection, not a transient
	// error; callers must not retry with the same arguments.
	ErrAlreadyVoted = errors.New("voter has already voted on this article")

	// ErrNoEarnings is returned on withdrawal when no earnings balance
	// record exists for the caller
	ErrNoEarnings = errors.New("no earnings balance for journalist")

	// ErrInsufficientBalance is returned on withdrawal when the requested
	// amount exceeds the current earnings balance
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds earnings balance")

	// ErrDelimiterInField is returned when a free-text field contains a
	// record delimiter character and cannot be stored safely
	ErrDelimiterInField = errors.New("field contains a reserved delimiter character")

	// ErrNotAuthor is returned when a caller attempts to revise an article
	// they did not publish
	ErrNotAuthor = errors.New("caller is not the article author")
)
