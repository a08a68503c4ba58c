package community

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylesense/stylesense/core/comments"
	"github.com/stylesense/stylesense/core/reaction"
)

func (m Model) fetchPosts(reqSeq, skip int) tea.Cmd {
	community := m.community
	limit := m.limit
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		posts, err := community.Feed(ctx, limit, skip)
		if err != nil {
			return PostsErrorMsg{Err: err, Skip: skip, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: posts, Skip: skip, ReqSeq: reqSeq}
	}
}

// confirmReaction issues the single remote call for p. An expired timeout is
// a failure and settles as a rollback.
func (m Model) confirmReaction(p reaction.Pending) tea.Cmd {
	community := m.community
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ReactionSettledMsg{Result: p.Confirm(ctx, community)}
	}
}

func (m Model) postComment(sub comments.Submission) tea.Cmd {
	community := m.community
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return CommentPostedMsg{Posted: sub.Post(ctx, community)}
	}
}
