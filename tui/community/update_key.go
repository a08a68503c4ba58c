package community

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Like):
		return m.react(domain.ReactionLike)

	case key.Matches(msg, m.keys.Dislike):
		return m.react(domain.ReactionDislike)

	case key.Matches(msg, m.keys.Comment):
		return m.composeComment(true)

	case key.Matches(msg, m.keys.CommentEditor):
		return m.composeComment(false)

	case key.Matches(msg, m.keys.OpenImage):
		if post, ok := m.selected(); ok && m.imageURL != nil && post.ImageFilename != "" {
			return m, common.OpenURL(m.imageURL(post.ImageFilename))
		}
		return m, nil
	}

	if m.showDetail {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.Open):
		if _, ok := m.selected(); ok {
			m.showDetail = true
			m.detailScroll = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()
		if m.cursor >= len(m.posts)-2 {
			return m.loadMore()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		m.detailScroll = 0

	case key.Matches(msg, m.keys.Up):
		if m.detailScroll > 0 {
			m.detailScroll--
		}

	case key.Matches(msg, m.keys.Down):
		if post, ok := m.selected(); ok && m.detailScroll < len(m.Comments(post.ID))-1 {
			m.detailScroll++
		}
	}
	return m, nil
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleCount()
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+visible {
		m.startIndex = m.cursor - visible + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}

// visibleCount is the number of post cards that fit the terminal. Each card is
// five lines (three content, two border); the header and status bar take nine.
func (m Model) visibleCount() int {
	if m.height == 0 {
		return 5
	}
	return max(1, (m.height-9)/5)
}
