package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit          key.Binding
	Refresh       key.Binding
	Like          key.Binding // l
	Dislike       key.Binding // x
	Comment       key.Binding // c, inline textarea
	CommentEditor key.Binding // C, $EDITOR
	Open          key.Binding // enter, post detail or chat
	OpenImage     key.Binding // o, outfit image in the browser
	Back          key.Binding
	Publish       key.Binding
	Delete        key.Binding
	SwitchView    key.Binding
	Up            key.Binding
	Down          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Dislike: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dislike"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		CommentEditor: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment ($EDITOR)"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "image"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Publish: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "publish"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "community/analyses"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// HelpLine renders the short help for the given bindings, e.g. "l: like • x: dislike".
func HelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return joinDot(parts)
}
