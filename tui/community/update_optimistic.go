package community

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/core/comments"
	"github.com/stylesense/stylesense/core/reaction"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// react applies kind to the selected post immediately and returns the
// confirmation call.
func (m Model) react(kind domain.Reaction) (Model, tea.Cmd) {
	post, ok := m.selected()
	if !ok {
		return m, nil
	}
	r := m.reactions[post.ID]
	if r == nil {
		return m, nil
	}

	var (
		p   reaction.Pending
		err error
	)
	if kind == domain.ReactionLike {
		p, err = r.ToggleLike()
	} else {
		p, err = r.ToggleDislike()
	}
	if errors.Is(err, domain.ErrReactionInFlight) {
		return m, common.Notify("Still saving your last reaction...", false)
	}
	if err != nil {
		return m, nil
	}
	return m, m.confirmReaction(p)
}

func (m Model) handleReactionMsg(msg tea.Msg) (Model, tea.Cmd) {
	settled, ok := msg.(ReactionSettledMsg)
	if !ok {
		return m, nil
	}
	res := settled.Result
	r := m.reactions[res.Pending.PostID]
	if r == nil {
		return m, nil
	}
	if r.Settle(res) != reaction.RolledBack {
		return m, nil
	}
	m.log.WithFields(logrus.Fields{
		"post_id": res.Pending.PostID,
		"kind":    string(res.Pending.Kind),
	}).WithError(res.Err).Warn("reaction rolled back")
	return m, notifyFailure("Failed to "+string(res.Pending.Kind)+" post", res.Err)
}

// composeComment asks the root model to open the composer for the selected post.
func (m Model) composeComment(inline bool) (Model, tea.Cmd) {
	post, ok := m.selected()
	if !ok {
		return m, nil
	}
	if th := m.threads[post.ID]; th != nil && th.Pending() {
		return m, common.Notify("Still posting your last comment...", false)
	}
	subject := firstNonEmpty(common.FirstLine(post.StyleDescription), "outfit "+post.ID)
	return m, func() tea.Msg {
		return ComposeCommentMsg{PostID: post.ID, Subject: subject, UseInline: inline}
	}
}

func (m Model) handleCommentMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitCommentMsg:
		th := m.threads[msg.PostID]
		if th == nil {
			return m, common.Notify("That post is no longer in the feed.", true)
		}
		sub, err := th.Submit(msg.Text)
		switch {
		case errors.Is(err, domain.ErrEmptyComment):
			return m, nil
		case errors.Is(err, domain.ErrCommentInFlight):
			return m, common.Notify("Still posting your last comment...", false)
		case err != nil:
			return m, notifyFailure("Failed to add comment", err)
		}
		return m, m.postComment(sub)

	case CommentPostedMsg:
		th := m.threads[msg.Posted.Submission.PostID]
		if th == nil {
			return m, nil
		}
		switch th.Resolve(msg.Posted, m.user.DisplayName(), m.now()) {
		case comments.Failed:
			m.log.WithField("post_id", msg.Posted.Submission.PostID).
				WithError(msg.Posted.Err).Warn("comment failed")
			return m, notifyFailure("Failed to add comment", msg.Posted.Err)
		case comments.Synthesized:
			m.log.WithField("post_id", msg.Posted.Submission.PostID).
				Debug("comment accepted without a record, using local copy")
			return m, common.Notify("Comment added!", false)
		case comments.Canonical:
			return m, common.Notify("Comment added!", false)
		}
	}
	return m, nil
}

func notifyFailure(text string, err error) tea.Cmd {
	if errors.Is(err, domain.ErrUnauthorized) {
		return common.Notify("Session expired. Run `stylesense login` to sign in again.", true)
	}
	return common.Notify(text+".", true)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
