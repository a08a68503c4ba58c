package app

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// CommunityService reads the public feed and records social interactions.
type CommunityService interface {
	// Feed returns public posts, newest first.
	Feed(ctx context.Context, limit, skip int) ([]domain.Post, error)

	// React toggles the user's like or dislike on a post. The server enforces
	// mutual exclusion and reports only success or failure.
	React(ctx context.Context, kind domain.Reaction, postID string) error

	// PostComment adds a comment. A nil comment with a nil error means the
	// server accepted the comment but returned no recognizable record.
	PostComment(ctx context.Context, postID, text string) (*domain.Comment, error)
}
