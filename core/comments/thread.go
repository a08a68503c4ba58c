// Package comments tracks the comment thread of one post as seen by the client.
package comments

import (
	"context"
	"strings"
	"time"

	"github.com/stylesense/stylesense/domain"
)

// FallbackAuthor names locally synthesized comments when the user's display
// name is unknown.
const FallbackAuthor = "You"

// Poster issues the remote comment call. A nil comment with a nil error is an
// accepted but ambiguous response.
type Poster interface {
	PostComment(ctx context.Context, postID, text string) (*domain.Comment, error)
}

// Outcome reports how a posted comment was recorded.
type Outcome int

const (
	// Canonical means the server's record was appended.
	Canonical Outcome = iota
	// Synthesized means the server accepted the comment without a usable
	// record and a local one was built from the submitted text.
	Synthesized
	// Failed means the server rejected the comment; nothing was appended.
	Failed
	// Ignored means the result did not belong to the outstanding submission.
	Ignored
)

// Submission is one outstanding comment.
type Submission struct {
	PostID string
	Text   string
	seq    uint64
}

// Post performs exactly one remote call for the submission.
func (s Submission) Post(ctx context.Context, p Poster) Posted {
	c, err := p.PostComment(ctx, s.PostID, s.Text)
	return Posted{Submission: s, Comment: c, Err: err}
}

// Posted is the completion of a Submission.
type Posted struct {
	Submission Submission
	Comment    *domain.Comment
	Err        error
}

// Thread is the append-only comment list of one post.
type Thread struct {
	postID   string
	comments []domain.Comment
	pending  bool
	seq      uint64
}

// NewThread creates a thread from the comments loaded with the post.
func NewThread(postID string, initial []domain.Comment) *Thread {
	cs := make([]domain.Comment, len(initial))
	copy(cs, initial)
	return &Thread{postID: postID, comments: cs}
}

// Comments returns a copy of the thread in display order.
func (t *Thread) Comments() []domain.Comment {
	out := make([]domain.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Len returns the number of comments.
func (t *Thread) Len() int { return len(t.comments) }

// Pending reports whether a comment is being posted.
func (t *Thread) Pending() bool { return t.pending }

// Submit validates text and returns the submission to post.
func (t *Thread) Submit(text string) (Submission, error) {
	if strings.TrimSpace(text) == "" {
		return Submission{}, domain.ErrEmptyComment
	}
	if t.pending {
		return Submission{}, domain.ErrCommentInFlight
	}
	t.pending = true
	t.seq++
	return Submission{PostID: t.postID, Text: text, seq: t.seq}, nil
}

// Resolve appends the posted comment. author and now feed the synthesized
// record when the server response carries none.
func (t *Thread) Resolve(p Posted, author string, now time.Time) Outcome {
	if !t.pending || p.Submission.seq != t.seq || p.Submission.PostID != t.postID {
		return Ignored
	}
	t.pending = false
	if p.Err != nil {
		return Failed
	}
	if p.Comment != nil && recognizable(*p.Comment) {
		t.comments = append(t.comments, *p.Comment)
		return Canonical
	}
	t.comments = append(t.comments, Synthesize(p.Submission.Text, author, now))
	return Synthesized
}

// Synthesize builds the local stand-in for a comment the server accepted
// without echoing it back.
func Synthesize(text, author string, now time.Time) domain.Comment {
	if strings.TrimSpace(author) == "" {
		author = FallbackAuthor
	}
	return domain.Comment{Author: author, Text: text, CreatedAt: now}
}

func recognizable(c domain.Comment) bool {
	return strings.TrimSpace(c.Text) != ""
}
