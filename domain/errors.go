package domain

import "errors"

var (
	// ErrUnauthorized indicates missing, expired or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the API has no record for the requested ID.
	ErrNotFound = errors.New("not found")

	// ErrEmptyMessage indicates the user submitted a blank chat message.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrSessionBusy indicates a chat request is already outstanding.
	ErrSessionBusy = errors.New("a reply is still pending")

	// ErrReactionInFlight indicates a reaction on the same post is awaiting confirmation.
	ErrReactionInFlight = errors.New("reaction is still being confirmed")

	// ErrEmptyComment indicates the user submitted a blank comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentInFlight indicates a comment on the same post is still being posted.
	ErrCommentInFlight = errors.New("comment is still being posted")
)
