package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C6A0F6")).
			Padding(1, 2, 0, 1)

	// TabActiveStyle styles the selected view tab next to the title.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// TabInactiveStyle styles the other view tabs.
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E738D"))

	// AuthorStyle styles comment authors and chat speakers.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles descriptions and message text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// TagStyle styles #tags.
	TagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8AADF4"))

	// ScoreStyle styles the outfit score badge.
	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F")).
			Bold(true)

	// SelectedStyle highlights the currently selected card.
	SelectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C6A0F6")).
			Padding(0, 1)

	// UnselectedStyle gives unselected cards a subtle greyed-out border.
	UnselectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)

	// LikeActiveStyle marks the like counter when the user liked the post.
	LikeActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)

	// DislikeActiveStyle marks the dislike counter when the user disliked the post.
	DislikeActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ED8796")).
				Bold(true)

	// MetadataStyle styles counters and other secondary details.
	MetadataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8087A2"))

	// UserBubbleStyle styles the user's chat turns.
	UserBubbleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#24273A")).
			Background(lipgloss.Color("#C6A0F6")).
			Padding(0, 1)

	// AssistantBubbleStyle styles the stylist's chat turns.
	AssistantBubbleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CAD3F5")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#45475A")).
				Padding(0, 1)

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ConfirmStyle styles the delete confirmation prompt.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
