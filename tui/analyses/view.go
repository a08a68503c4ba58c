package analyses

import (
	"fmt"
	"strings"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// View renders the list with the selected analysis expanded below it.
func (m Model) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.items) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading your analyses...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.items) == 0:
		b.WriteString("  No analyses yet. Run `stylesense analyze photo.jpg` to get started.\n")
	default:
		b.WriteString(common.MetadataStyle.Render(fmt.Sprintf("  %d analyses", m.total)) + "\n\n")
		for i, a := range m.items {
			b.WriteString(m.renderRow(a, i == m.cursor) + "\n")
		}
		if a, ok := m.selected(); ok {
			b.WriteString("\n" + m.renderDetail(a))
		}
	}

	if m.confirmDelete {
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this analysis? (y/N)"))
		return b.String()
	}
	b.WriteString(common.StatusBarStyle.Render(common.HelpLine(
		m.keys.Open, m.keys.Publish, m.keys.Delete, m.keys.OpenImage,
		m.keys.Refresh, m.keys.SwitchView, m.keys.Quit,
	)))
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return 76
	}
	return max(20, m.width-4)
}

func (m Model) renderRow(a domain.Analysis, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	status := common.MetadataStyle.Render("private")
	if a.Public {
		status = common.SuccessStyle.Render("public")
	}
	if m.busy[a.ID] {
		status = m.spinner.View()
	}
	desc := common.Truncate(common.FirstLine(a.StyleDescription), m.contentWidth()-30)
	return fmt.Sprintf("%s%s  %s  %s  %s",
		cursor,
		common.ScoreStyle.Render(common.FormatScore(a.Score)),
		common.ContentStyle.Render(desc),
		status,
		common.TimestampStyle.Render(a.CreatedAt.Format("Jan 02")),
	)
}

func (m Model) renderDetail(a domain.Analysis) string {
	w := m.contentWidth()
	var b strings.Builder
	if a.Compliment != "" {
		b.WriteString(common.SuccessStyle.Width(w).Render(a.Compliment) + "\n")
	}
	if a.ScoreReason != "" {
		b.WriteString(common.ContentStyle.Width(w).Render(a.ScoreReason) + "\n")
	}
	if len(a.Items) > 0 {
		names := make([]string, 0, len(a.Items))
		for _, it := range a.Items {
			names = append(names, strings.TrimSpace(it.Color+" "+it.Name))
		}
		b.WriteString(common.MetadataStyle.Width(w).Render("Items: "+strings.Join(names, ", ")) + "\n")
	}
	for _, s := range a.Suggestions {
		b.WriteString(common.ContentStyle.Width(w).Render("• "+s) + "\n")
	}
	if len(a.Tags) > 0 {
		b.WriteString(common.TagStyle.Render(common.FormatTags(a.Tags)) + "\n")
	}
	return b.String()
}
