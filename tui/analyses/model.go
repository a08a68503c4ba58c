package analyses

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

const pageSize = 50

// --- Messages ---

// LoadedMsg is sent when the user's analyses have been fetched.
type LoadedMsg struct {
	Analyses []domain.Analysis
	Total    int
	Err      error
	ReqSeq   int
}

// OpenChatMsg asks the root model to open the chat for an analysis.
type OpenChatMsg struct {
	Analysis domain.Analysis
}

// PublishResultMsg is sent after a publish toggle attempt.
type PublishResultMsg struct {
	ID  string
	Err error
}

// DeleteResultMsg is sent after a deletion attempt.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// --- Model ---

// Model lists the user's own analyses.
type Model struct {
	analyses app.AnalysisService
	imageURL func(string) string
	timeout  time.Duration
	log      *logrus.Entry

	items         []domain.Analysis
	total         int
	cursor        int
	loading       bool
	reqSeq        int
	err           error
	confirmDelete bool
	busy          map[string]bool // publish or delete in flight

	keys          common.KeyMap
	confirm       key.Binding
	spinner       spinner.Model
	width, height int
}

// New creates the analyses view.
func New(analyses app.AnalysisService, imageURL func(string) string, timeout time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	return Model{
		analyses: analyses,
		imageURL: imageURL,
		timeout:  timeout,
		log:      logrus.WithField("component", "analyses"),
		busy:     make(map[string]bool),
		keys:     common.DefaultKeyMap(),
		confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		spinner: s,
		loading: true,
	}
}

// Init starts the initial fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.spinner.Tick)
}

// Items returns the listed analyses.
func (m Model) Items() []domain.Analysis { return m.items }

func (m Model) fetch() tea.Cmd {
	svc := m.analyses
	timeout := m.timeout
	reqSeq := m.reqSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, total, err := svc.List(ctx, pageSize, 0)
		return LoadedMsg{Analyses: items, Total: total, Err: err, ReqSeq: reqSeq}
	}
}

func (m Model) togglePublic(a domain.Analysis) tea.Cmd {
	svc := m.analyses
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return PublishResultMsg{ID: a.ID, Err: svc.TogglePublic(ctx, a.ID, a.Tags)}
	}
}

func (m Model) delete(id string) tea.Cmd {
	svc := m.analyses
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return DeleteResultMsg{ID: id, Err: svc.Delete(ctx, id)}
	}
}

func (m Model) selected() (domain.Analysis, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.Analysis{}, false
	}
	return m.items[m.cursor], true
}

// Update handles messages for the analyses view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.items = msg.Analyses
			m.total = msg.Total
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, nil

	case PublishResultMsg:
		delete(m.busy, msg.ID)
		if msg.Err != nil {
			m.log.WithField("analysis_id", msg.ID).WithError(msg.Err).Warn("publish toggle failed")
			return m, common.Notify("Failed to update sharing: "+msg.Err.Error(), true)
		}
		for i := range m.items {
			if m.items[i].ID == msg.ID {
				m.items[i].Public = !m.items[i].Public
				if m.items[i].Public {
					return m, common.Notify("Shared to the community!", false)
				}
				return m, common.Notify("Removed from the community.", false)
			}
		}
		return m, nil

	case DeleteResultMsg:
		delete(m.busy, msg.ID)
		if msg.Err != nil {
			m.log.WithField("analysis_id", msg.ID).WithError(msg.Err).Warn("delete failed")
			return m, common.Notify("Error deleting: "+msg.Err.Error(), true)
		}
		for i := range m.items {
			if m.items[i].ID == msg.ID {
				m.items = append(m.items[:i:i], m.items[i+1:]...)
				m.total--
				break
			}
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, common.Notify("Analysis deleted.", false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		a, ok := m.selected()
		if !ok || !key.Matches(msg, m.confirm) {
			return m, nil
		}
		m.busy[a.ID] = true
		return m, m.delete(a.ID)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.reqSeq++
		return m, tea.Batch(m.fetch(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Open):
		if a, ok := m.selected(); ok {
			return m, func() tea.Msg { return OpenChatMsg{Analysis: a} }
		}
	case key.Matches(msg, m.keys.OpenImage):
		if a, ok := m.selected(); ok && m.imageURL != nil && a.ImageFilename != "" {
			return m, common.OpenURL(m.imageURL(a.ImageFilename))
		}
	case key.Matches(msg, m.keys.Publish):
		if a, ok := m.selected(); ok && !m.busy[a.ID] {
			m.busy[a.ID] = true
			return m, m.togglePublic(a)
		}
	case key.Matches(msg, m.keys.Delete):
		if a, ok := m.selected(); ok && !m.busy[a.ID] {
			m.confirmDelete = true
		}
	}
	return m, nil
}

// Confirming reports whether the delete prompt is open.
func (m Model) Confirming() bool { return m.confirmDelete }
