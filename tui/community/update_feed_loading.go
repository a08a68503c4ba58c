package community

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylesense/stylesense/core/comments"
	"github.com/stylesense/stylesense/core/reaction"
	"github.com/stylesense/stylesense/domain"
)

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		if msg.ReqSeq != m.feedReqSeq {
			return m, nil
		}
		m.err = nil
		m.hasMore = len(msg.Posts) >= m.limit
		if msg.Skip == 0 {
			m.loading = false
			m.setPosts(msg.Posts)
			if m.cursor >= len(m.posts) {
				m.cursor = max(0, len(m.posts)-1)
			}
			m.ensureCursorVisible()
			return m, nil
		}
		m.loadingMore = false
		m.appendPosts(msg.Posts)
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.feedReqSeq {
			return m, nil
		}
		if msg.Skip == 0 {
			m.loading = false
			m.err = msg.Err
			return m, nil
		}
		m.loadingMore = false
		return m, notifyFailure("Failed to load more posts", msg.Err)
	}
	return m, nil
}

// setPosts replaces the feed. A post whose reaction or comment is still being
// confirmed keeps its local state so the outstanding result can settle it.
func (m *Model) setPosts(posts []domain.Post) {
	reactions := make(map[string]*reaction.Reconciler, len(posts))
	threads := make(map[string]*comments.Thread, len(posts))
	for _, p := range posts {
		if r, ok := m.reactions[p.ID]; ok && r.InFlight() {
			reactions[p.ID] = r
		} else {
			reactions[p.ID] = reaction.FromPost(p, m.user.ID)
		}
		if th, ok := m.threads[p.ID]; ok && th.Pending() {
			threads[p.ID] = th
		} else {
			threads[p.ID] = comments.NewThread(p.ID, p.Comments)
		}
	}
	m.posts = posts
	m.reactions = reactions
	m.threads = threads
}

// appendPosts adds a further page, skipping posts already shown.
func (m *Model) appendPosts(posts []domain.Post) {
	for _, p := range posts {
		if _, dup := m.reactions[p.ID]; dup {
			continue
		}
		m.posts = append(m.posts, p)
		m.reactions[p.ID] = reaction.FromPost(p, m.user.ID)
		m.threads[p.ID] = comments.NewThread(p.ID, p.Comments)
	}
}

func (m Model) refresh() (Model, tea.Cmd) {
	m.feedReqSeq++
	m.loading = true
	m.loadingMore = false
	return m, tea.Batch(m.fetchPosts(m.feedReqSeq, 0), m.spinner.Tick)
}

func (m Model) loadMore() (Model, tea.Cmd) {
	if m.loading || m.loadingMore || !m.hasMore {
		return m, nil
	}
	m.loadingMore = true
	return m, m.fetchPosts(m.feedReqSeq, len(m.posts))
}
