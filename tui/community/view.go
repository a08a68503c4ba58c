package community

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// View renders the feed, or the selected post when its detail is open.
func (m Model) View() string {
	if m.showDetail {
		return m.renderDetailView()
	}

	var b strings.Builder
	switch {
	case m.loading && len(m.posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading community outfits...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.posts) == 0:
		b.WriteString("  No public outfits yet. Publish one from your analyses!\n")
	default:
		end := min(len(m.posts), m.startIndex+m.visibleCount())
		for i := m.startIndex; i < end; i++ {
			b.WriteString(m.renderCard(m.posts[i], i == m.cursor))
			b.WriteString("\n")
		}
		if m.loadingMore {
			b.WriteString(fmt.Sprintf("  %s Loading more...\n", m.spinner.View()))
		}
	}

	b.WriteString(common.StatusBarStyle.Render(common.HelpLine(
		m.keys.Like, m.keys.Dislike, m.keys.Open, m.keys.Comment,
		m.keys.OpenImage, m.keys.Refresh, m.keys.SwitchView, m.keys.Quit,
	)))
	return b.String()
}

func (m Model) cardWidth() int {
	if m.width == 0 {
		return 76
	}
	return max(20, m.width-6)
}

func (m Model) renderCard(post domain.Post, selected bool) string {
	width := m.cardWidth()
	title := common.ScoreStyle.Render(common.FormatScore(post.Score)) + " " +
		common.ContentStyle.Render(common.Truncate(firstNonEmpty(common.FirstLine(post.StyleDescription), "Untitled outfit"), width-6))
	tags := common.TagStyle.Render(common.Truncate(common.FormatTags(post.Tags), width))

	lines := []string{title, tags, m.renderCounters(post)}
	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCounters(post domain.Post) string {
	st, _ := m.State(post.ID)
	parts := []string{
		renderReaction("♥", st.LikeCount, st.Liked, common.LikeActiveStyle),
		renderReaction("✗", st.DislikeCount, st.Disliked, common.DislikeActiveStyle),
		common.MetadataStyle.Render(fmt.Sprintf("💬 %d", len(m.Comments(post.ID)))),
		common.TimestampStyle.Render(common.Ago(post.CreatedAt, m.now())),
	}
	if r := m.reactions[post.ID]; r != nil && r.InFlight() {
		parts = append(parts, common.MetadataStyle.Render(m.spinner.View()+" saving"))
	}
	return strings.Join(parts, "  ")
}

func renderReaction(icon string, count uint, active bool, activeStyle lipgloss.Style) string {
	s := fmt.Sprintf("%s %d", icon, count)
	if active {
		return activeStyle.Render(s)
	}
	return common.MetadataStyle.Render(s)
}

func (m Model) renderDetailView() string {
	post, ok := m.selected()
	if !ok {
		return ""
	}
	width := m.cardWidth()
	var b strings.Builder

	b.WriteString(common.ScoreStyle.Render("  Score "+common.FormatScore(post.Score)))
	b.WriteString("\n\n")
	b.WriteString(common.ContentStyle.Width(width).PaddingLeft(2).Render(post.StyleDescription))
	b.WriteString("\n")
	if len(post.Tags) > 0 {
		b.WriteString("  " + common.TagStyle.Render(common.FormatTags(post.Tags)) + "\n")
	}
	b.WriteString("\n  " + m.renderCounters(post) + "\n\n")

	b.WriteString(common.AuthorStyle.Render("  Comments") + "\n")
	cs := m.Comments(post.ID)
	if len(cs) == 0 {
		b.WriteString(common.MetadataStyle.Render("  No comments yet. Press c to add one.") + "\n")
	}
	for i := min(m.detailScroll, len(cs)); i < len(cs); i++ {
		b.WriteString(m.renderComment(cs[i], width))
	}
	if th := m.threads[post.ID]; th != nil && th.Pending() {
		b.WriteString(fmt.Sprintf("  %s Posting comment...\n", m.spinner.View()))
	}

	b.WriteString(common.StatusBarStyle.Render(common.HelpLine(
		m.keys.Like, m.keys.Dislike, m.keys.Comment, m.keys.CommentEditor,
		m.keys.OpenImage, m.keys.Back,
	)))
	return b.String()
}

func (m Model) renderComment(c domain.Comment, width int) string {
	header := common.AuthorStyle.Render(c.Author)
	if ago := common.Ago(c.CreatedAt, m.now()); ago != "" {
		header += " " + common.TimestampStyle.Render(ago)
	}
	body := common.ContentStyle.Width(width - 4).Render(c.Text)
	return "  " + header + "\n" + indent(body, "    ") + "\n"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
