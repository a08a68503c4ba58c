package compose

import (
	"fmt"
	"strings"

	"github.com/stylesense/stylesense/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		b.WriteString(common.AppTitleStyle.Render("StyleSense"))
		b.WriteString("  New Comment\n")
		if m.subject != "" {
			b.WriteString(common.MetadataStyle.Render("  on: "+common.Truncate(m.subject, 60)) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: post • esc: cancel • %d/%d chars",
				len([]rune(m.textarea.Value())), charLimit),
		))
		return b.String()
	}

	return ""
}
