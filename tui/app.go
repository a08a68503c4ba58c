package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/analyses"
	"github.com/stylesense/stylesense/tui/chat"
	"github.com/stylesense/stylesense/tui/common"
	"github.com/stylesense/stylesense/tui/community"
	"github.com/stylesense/stylesense/tui/compose"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Community app.CommunityService
	Analyses  app.AnalysisService
	Chat      app.ChatService
	Editor    compose.Editor
	User      domain.User
	ImageURL  func(filename string) string
	FeedLimit int
	Timeout   time.Duration
}

type activeView int

const (
	communityView activeView = iota
	analysesView
	chatView
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views and owns the
// status line.
type App struct {
	deps           Deps
	active         activeView
	community      community.Model
	analyses       analyses.Model
	analysesLoaded bool
	chat           chat.Model
	chatOpen       bool
	compose        compose.Model
	keys           common.KeyMap
	status         *common.Notice
	width, height  int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:      deps,
		active:    communityView,
		community: community.New(deps.Community, deps.User, deps.ImageURL, deps.FeedLimit, deps.Timeout),
		analyses:  analyses.New(deps.Analyses, deps.ImageURL, deps.Timeout),
		keys:      common.DefaultKeyMap(),
	}
}

// Init starts the community feed.
func (a App) Init() tea.Cmd {
	return a.community.Init()
}

// Update handles messages and routes to the sub-models.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(0, msg.Height-headerHeight)}
		a.community, _ = a.community.Update(inner)
		a.analyses, _ = a.analyses.Update(inner)
		if a.chatOpen {
			a.chat, _ = a.chat.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		a.status = nil
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.atTopLevel() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.SwitchView):
				return a.switchTab()
			}
		}

	case common.Notice:
		a.status = &msg
		return a, nil

	case spinner.TickMsg:
		// Spinners ignore ticks that carry another spinner's ID.
		var cmds [3]tea.Cmd
		a.community, cmds[0] = a.community.Update(msg)
		a.analyses, cmds[1] = a.analyses.Update(msg)
		if a.chatOpen {
			a.chat, cmds[2] = a.chat.Update(msg)
		}
		return a, tea.Batch(cmds[:]...)

	// Results settle the view that issued them even when another view is active.
	case community.PostsLoadedMsg, community.PostsErrorMsg,
		community.ReactionSettledMsg, community.CommentPostedMsg:
		var cmd tea.Cmd
		a.community, cmd = a.community.Update(msg)
		return a, cmd

	case analyses.LoadedMsg, analyses.PublishResultMsg, analyses.DeleteResultMsg:
		var cmd tea.Cmd
		a.analyses, cmd = a.analyses.Update(msg)
		return a, cmd

	case community.ComposeCommentMsg:
		a.active = composeView
		if msg.UseInline {
			a.compose = compose.NewInline(msg.PostID, msg.Subject)
		} else {
			a.compose = compose.NewEditor(a.deps.Editor, msg.PostID, msg.Subject)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = communityView
		if msg.Err != nil {
			a.status = &common.Notice{Text: "Error: " + msg.Err.Error(), Err: true}
			return a, nil
		}
		var cmd tea.Cmd
		a.community, cmd = a.community.Update(community.SubmitCommentMsg{PostID: msg.PostID, Text: msg.Content})
		if cmd == nil {
			a.status = &common.Notice{Text: "Cancelled."}
		}
		return a, cmd

	case analyses.OpenChatMsg:
		a.chat = chat.New(a.deps.Chat, msg.Analysis, a.deps.Timeout)
		a.chatOpen = true
		a.active = chatView
		if a.width > 0 {
			a.chat, _ = a.chat.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		return a, a.chat.Init()

	case chat.CloseMsg:
		a.chat = chat.Model{}
		a.chatOpen = false
		a.active = analysesView
		return a, nil

	case chat.ReplyMsg:
		if !a.chatOpen {
			return a, nil
		}
		var cmd tea.Cmd
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}

	return a.updateActive(msg)
}

func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case communityView:
		a.community, cmd = a.community.Update(msg)
	case analysesView:
		a.analyses, cmd = a.analyses.Update(msg)
	case chatView:
		a.chat, cmd = a.chat.Update(msg)
	case composeView:
		a.compose, cmd = a.compose.Update(msg)
	}
	return a, cmd
}

// atTopLevel reports whether global keys apply: a list view is showing and
// no prompt or detail is open.
func (a App) atTopLevel() bool {
	switch a.active {
	case communityView:
		return !a.community.IsInDetailView()
	case analysesView:
		return !a.analyses.Confirming()
	}
	return false
}

func (a App) switchTab() (tea.Model, tea.Cmd) {
	if a.active == communityView {
		a.active = analysesView
		if !a.analysesLoaded {
			a.analysesLoaded = true
			return a, a.analyses.Init()
		}
		return a, nil
	}
	a.active = communityView
	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case communityView:
		s = a.header() + a.community.View()
	case analysesView:
		s = a.header() + a.analyses.View()
	case chatView:
		s = a.chat.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != nil {
		s += "\n" + common.StatusBarStyle.Render(a.status.Render())
	}
	return s
}

const headerHeight = 3

func (a App) header() string {
	tab := func(label string, v activeView) string {
		if a.active == v {
			return common.TabActiveStyle.Render("[" + label + "]")
		}
		return common.TabInactiveStyle.Render(" " + label + " ")
	}
	user := ""
	if a.deps.User.Username != "" {
		user = common.MetadataStyle.Render("  @" + a.deps.User.Username)
	}
	return common.AppTitleStyle.Render("StyleSense") + tab("Community", communityView) + " " +
		tab("My analyses", analysesView) + user + "\n\n"
}
