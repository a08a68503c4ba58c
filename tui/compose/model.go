package compose

import (
	"fmt"
	"os/exec"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const charLimit = 500

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

// --- Messages ---

// DoneMsg is sent when composing is complete (success or cancel).
type DoneMsg struct {
	PostID  string
	Content string // Empty if cancelled
	Err     error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// Editor prepares the external editor command. Satisfied by *editor.EnvEditor.
type Editor interface {
	Cmd(content, subject string) (*exec.Cmd, string, error)
	ReadContent(path string) (string, error)
}

// --- Model ---

// Model holds the state for composing one comment.
type Model struct {
	mode     mode
	editor   Editor
	postID   string
	subject  string
	status   string
	textarea textarea.Model // Only used in inline mode
	tmpPath  string         // Temp file path for editor mode
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed Editor, postID, subject string) Model {
	return Model{
		mode:    editorMode,
		editor:  ed,
		postID:  postID,
		subject: subject,
		status:  "Opening editor...",
	}
}

// NewInline creates a compose model with an inline Bubble Tea textarea.
func NewInline(postID, subject string) Model {
	ta := textarea.New()
	ta.Placeholder = "Say something nice about this outfit..."
	ta.CharLimit = charLimit
	ta.SetWidth(72)
	ta.SetHeight(4)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		postID:   postID,
		subject:  subject,
		textarea: ta,
	}
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	postID := m.postID
	cmd, tmpPath, err := m.editor.Cmd("", m.subject)
	if err != nil {
		return done(DoneMsg{PostID: postID, Err: fmt.Errorf("preparing editor: %w", err)})
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		m.tmpPath = msg.tmpPath
		if msg.err != nil {
			return m, done(DoneMsg{PostID: m.postID, Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{PostID: m.postID, Err: err})
		}
		return m, done(DoneMsg{PostID: m.postID, Content: content})

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{PostID: m.postID}) // Cancel.

		case "ctrl+d":
			return m, done(DoneMsg{PostID: m.postID, Content: m.textarea.Value()})
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
