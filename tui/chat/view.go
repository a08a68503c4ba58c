package chat

import (
	"fmt"
	"strings"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// View renders the transcript above the input.
func (m Model) View() string {
	var b strings.Builder

	subject := firstNonEmpty(common.FirstLine(m.analysis.StyleDescription), "your outfit")
	b.WriteString(common.AppTitleStyle.Render("StyleSense Stylist"))
	b.WriteString(common.MetadataStyle.Render("  " + common.Truncate(subject, max(10, m.viewport.Width-24))))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	help := common.HelpLine(m.send, m.keys.Back)
	if m.session.Pending() {
		help = common.HelpLine(m.keys.Back)
	}
	b.WriteString(common.StatusBarStyle.Render(help + " • pgup/pgdn: scroll"))
	return b.String()
}

func (m Model) renderTranscript() string {
	width := max(20, m.viewport.Width-2)
	var b strings.Builder
	for _, t := range m.session.Transcript() {
		if t.Role == domain.RoleSystem {
			continue
		}
		if t.Role == domain.RoleUser {
			b.WriteString(common.AuthorStyle.Render("You") + "\n")
			b.WriteString(common.UserBubbleStyle.Width(width).Render(t.Content))
		} else {
			b.WriteString(common.AuthorStyle.Render("Stylist") + "\n")
			b.WriteString(common.AssistantBubbleStyle.Width(width - 2).Render(t.Content))
		}
		b.WriteString("\n\n")
	}
	if m.session.Pending() {
		b.WriteString(fmt.Sprintf("%s Stylist is typing...", m.spinner.View()))
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
