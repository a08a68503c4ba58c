package chat

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/core/conversation"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// --- Messages ---

// CloseMsg is sent when the user leaves the chat. The session is discarded.
type CloseMsg struct{}

// ReplyMsg carries the stylist's answer, or the failure, for one exchange.
type ReplyMsg struct {
	session *conversation.Session
	Reply   conversation.Reply
}

// --- Model ---

// Model is the chat view for one analysis.
type Model struct {
	chat     app.ChatService
	analysis domain.Analysis
	session  *conversation.Session
	timeout  time.Duration
	log      *logrus.Entry

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	keys     common.KeyMap
	send     key.Binding

	width, height int
}

// New opens a fresh session about analysis.
func New(chat app.ChatService, analysis domain.Analysis, timeout time.Duration) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about this outfit..."
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	m := Model{
		chat:     chat,
		analysis: analysis,
		session:  conversation.NewSession(analysis.ID),
		timeout:  timeout,
		log:      logrus.WithFields(logrus.Fields{"component": "chat", "analysis_id": analysis.ID}),
		viewport: viewport.New(72, 12),
		input:    ta,
		spinner:  s,
		keys:     common.DefaultKeyMap(),
		send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
	}
	m.refreshTranscript()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Session exposes the conversation state.
func (m Model) Session() *conversation.Session { return m.session }

// Update handles messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.session.Pending() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTranscript()
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case m.session.Pending():
			// Input is disabled until the reply arrives.
			return m, nil
		case key.Matches(msg, m.send):
			return m.submit()
		case msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	ex, err := m.session.Submit(m.input.Value())
	if err != nil {
		return m, nil
	}
	m.input.Reset()
	m.input.Blur()
	m.refreshTranscript()
	return m, tea.Batch(m.sendExchange(ex), m.spinner.Tick)
}

func (m Model) sendExchange(ex conversation.Exchange) tea.Cmd {
	chat := m.chat
	session := m.session
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ReplyMsg{session: session, Reply: ex.Send(ctx, chat)}
	}
}

func (m Model) handleReply(msg ReplyMsg) (Model, tea.Cmd) {
	if msg.session != m.session || !m.session.Resolve(msg.Reply) {
		return m, nil
	}
	m.refreshTranscript()
	focus := m.input.Focus()
	if msg.Reply.Err == nil {
		return m, focus
	}

	m.log.WithError(msg.Reply.Err).Warn("chat request failed")
	text := "Failed to get a response. Please try again."
	if errors.Is(msg.Reply.Err, domain.ErrUnauthorized) {
		text = "Session expired. Run `stylesense login` to sign in again."
	}
	return m, tea.Batch(focus, common.Notify(text, true))
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	w := max(20, width-4)
	m.input.SetWidth(w)
	m.viewport.Width = w
	// Header takes four lines, the input five and the help line two.
	m.viewport.Height = max(3, height-11)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
