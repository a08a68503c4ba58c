package community

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/app"
	"github.com/stylesense/stylesense/core/comments"
	"github.com/stylesense/stylesense/core/reaction"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/tui/common"
)

// --- Messages ---

// PostsLoadedMsg is sent when a feed page fetch completes successfully.
// Skip is zero for a fresh load.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	Skip   int
	ReqSeq int
}

// PostsErrorMsg is sent when a feed fetch fails.
type PostsErrorMsg struct {
	Err    error
	Skip   int
	ReqSeq int
}

// ReactionSettledMsg carries the outcome of a like or dislike confirmation.
type ReactionSettledMsg struct {
	Result reaction.Result
}

// CommentPostedMsg carries the outcome of a comment submission.
type CommentPostedMsg struct {
	Posted comments.Posted
}

// ComposeCommentMsg asks the root model to open the comment composer.
type ComposeCommentMsg struct {
	PostID    string
	Subject   string
	UseInline bool
}

// SubmitCommentMsg delivers composed comment text back to the feed.
type SubmitCommentMsg struct {
	PostID string
	Text   string
}

// --- Model ---

// Model holds the state for the community feed view.
type Model struct {
	community app.CommunityService
	user      domain.User
	imageURL  func(filename string) string
	limit     int
	timeout   time.Duration
	log       *logrus.Entry
	now       func() time.Time

	posts       []domain.Post
	reactions   map[string]*reaction.Reconciler
	threads     map[string]*comments.Thread
	cursor      int
	startIndex  int
	loading     bool
	loadingMore bool
	hasMore     bool
	err         error
	feedReqSeq  int

	showDetail   bool
	detailScroll int

	keys          common.KeyMap
	spinner       spinner.Model
	width, height int
}

// New creates a feed model for user. imageURL resolves an outfit image
// filename to a browsable URL; timeout bounds every remote call.
func New(community app.CommunityService, user domain.User, imageURL func(string) string, limit int, timeout time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#C6A0F6"))

	return Model{
		community: community,
		user:      user,
		imageURL:  imageURL,
		limit:     limit,
		timeout:   timeout,
		log:       logrus.WithField("component", "community"),
		now:       time.Now,
		reactions: make(map[string]*reaction.Reconciler),
		threads:   make(map[string]*comments.Thread),
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		loading:   true,
		hasMore:   true,
	}
}

// Init starts the initial feed fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPosts(m.feedReqSeq, 0),
		m.spinner.Tick,
	)
}

// IsInDetailView reports whether a post detail is open.
func (m Model) IsInDetailView() bool { return m.showDetail }

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch msg.(type) {
	case PostsLoadedMsg, PostsErrorMsg:
		return m.handleFeedLoadingMsg(msg)
	case ReactionSettledMsg:
		return m.handleReactionMsg(msg)
	case SubmitCommentMsg, CommentPostedMsg:
		return m.handleCommentMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}

func (m Model) selected() (domain.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.posts) {
		return domain.Post{}, false
	}
	return m.posts[m.cursor], true
}

// State returns the displayed reaction state of a post.
func (m Model) State(postID string) (reaction.State, bool) {
	r, ok := m.reactions[postID]
	if !ok {
		return reaction.State{}, false
	}
	return r.State(), true
}

// Comments returns the displayed comment thread of a post.
func (m Model) Comments(postID string) []domain.Comment {
	if th, ok := m.threads[postID]; ok {
		return th.Comments()
	}
	return nil
}
