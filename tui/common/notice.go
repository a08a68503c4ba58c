package common

import tea "github.com/charmbracelet/bubbletea"

// Notice is a transient status line message. Any view may emit one; the root
// model shows it until the next key press.
type Notice struct {
	Text string
	Err  bool
}

// Render styles the notice for the status line.
func (n Notice) Render() string {
	if n.Err {
		return ErrorStyle.Render(n.Text)
	}
	return SuccessStyle.Render(n.Text)
}

// Notify wraps a Notice into a tea.Cmd for immediate delivery.
func Notify(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return Notice{Text: text, Err: isErr} }
}
