package tui

import (
	"context"
	"os/exec"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesense/stylesense/core/reaction"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/logging"
	"github.com/stylesense/stylesense/tui/analyses"
	"github.com/stylesense/stylesense/tui/chat"
	"github.com/stylesense/stylesense/tui/common"
	"github.com/stylesense/stylesense/tui/community"
	"github.com/stylesense/stylesense/tui/compose"
)

func init() { logging.Discard(logrus.StandardLogger()) }

type stubCommunity struct {
	posts    []domain.Post
	comments []string
}

func (s *stubCommunity) Feed(context.Context, int, int) ([]domain.Post, error) { return s.posts, nil }
func (s *stubCommunity) React(context.Context, domain.Reaction, string) error  { return nil }
func (s *stubCommunity) PostComment(_ context.Context, _ string, text string) (*domain.Comment, error) {
	s.comments = append(s.comments, text)
	return nil, nil
}

type stubAnalyses struct{ items []domain.Analysis }

func (s stubAnalyses) Analyze(context.Context, string, string) (domain.Analysis, error) {
	return domain.Analysis{}, nil
}
func (s stubAnalyses) Get(context.Context, string) (domain.Analysis, error) {
	return domain.Analysis{}, nil
}
func (s stubAnalyses) List(context.Context, int, int) ([]domain.Analysis, int, error) {
	return s.items, len(s.items), nil
}
func (s stubAnalyses) Delete(context.Context, string) error                 { return nil }
func (s stubAnalyses) TogglePublic(context.Context, string, []string) error { return nil }

type stubChat struct{}

func (stubChat) SendMessage(context.Context, string, string, []domain.ChatMessage) (string, error) {
	return "Looks great.", nil
}

type stubEditor struct{}

func (stubEditor) Cmd(string, string) (*exec.Cmd, string, error) { return exec.Command("true"), "x", nil }
func (stubEditor) ReadContent(string) (string, error)           { return "", nil }

func newApp(svc *stubCommunity) App {
	a := NewApp(Deps{
		Community: svc,
		Analyses:  stubAnalyses{items: []domain.Analysis{{ID: "a1", StyleDescription: "Denim"}}},
		Chat:      stubChat{},
		Editor:    stubEditor{},
		User:      domain.User{ID: "u1", Username: "maya"},
		FeedLimit: 20,
		Timeout:   time.Second,
	})
	return step(a, community.PostsLoadedMsg{Posts: svc.posts})
}

func step(a App, msg tea.Msg) App {
	m, _ := a.Update(msg)
	return m.(App)
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestQuit_OnlyFromListViews(t *testing.T) {
	a := newApp(&stubCommunity{posts: []domain.Post{{ID: "p1"}}})
	_, cmd := a.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	a = step(a, tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd = a.Update(keyRune('q'))
	assert.Nil(t, cmd, "q does nothing inside the post detail")
}

func TestComposeDone_PostsCommentThroughFeed(t *testing.T) {
	svc := &stubCommunity{posts: []domain.Post{{ID: "p1"}}}
	a := newApp(svc)

	m, cmd := a.Update(community.ComposeCommentMsg{PostID: "p1", UseInline: true})
	a = m.(App)
	require.NotNil(t, cmd)
	assert.Equal(t, composeView, a.active)

	m, cmd = a.Update(compose.DoneMsg{PostID: "p1", Content: "sharp"})
	a = m.(App)
	assert.Equal(t, communityView, a.active)
	require.NotNil(t, cmd)

	m, cmd = a.Update(cmd())
	a = m.(App)
	assert.Equal(t, []string{"sharp"}, svc.comments)

	m, _ = a.Update(cmd())
	a = m.(App)
	require.NotNil(t, a.status)
	assert.Equal(t, "Comment added!", a.status.Text)
	assert.Contains(t, a.View(), "Comment added!")
}

func TestComposeDone_EmptyCancels(t *testing.T) {
	a := newApp(&stubCommunity{posts: []domain.Post{{ID: "p1"}}})
	a = step(a, compose.DoneMsg{PostID: "p1"})
	require.NotNil(t, a.status)
	assert.Equal(t, "Cancelled.", a.status.Text)
}

func TestReactionResult_SettlesWhileAnotherViewIsActive(t *testing.T) {
	a := newApp(&stubCommunity{posts: []domain.Post{{ID: "p1"}}})
	m, confirm := a.Update(keyRune('l'))
	a = m.(App)

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	assert.Equal(t, analysesView, a.active)

	res := confirm().(community.ReactionSettledMsg)
	res.Result.Err = assert.AnError
	a = step(a, res)

	st, _ := a.community.State("p1")
	assert.Equal(t, reaction.State{}, st)
}

func TestChat_OpensFromAnalysesAndCloses(t *testing.T) {
	a := newApp(&stubCommunity{})
	a = step(a, tea.WindowSizeMsg{Width: 100, Height: 40})
	a = step(a, analyses.OpenChatMsg{Analysis: domain.Analysis{ID: "a1"}})
	require.Equal(t, chatView, a.active)
	assert.Equal(t, "a1", a.chat.Session().AnalysisID())

	_, cmd := a.Update(keyRune('q'))
	assert.NotEqual(t, tea.Quit(), runMaybe(cmd), "q is typed into the chat input")

	a = step(a, chat.CloseMsg{})
	assert.Equal(t, analysesView, a.active)
	assert.False(t, a.chatOpen)
}

func TestNotice_SetsAndClearsStatus(t *testing.T) {
	a := newApp(&stubCommunity{})
	a = step(a, common.Notice{Text: "Failed to like post.", Err: true})
	assert.Contains(t, a.View(), "Failed to like post.")
	a = step(a, keyRune('j'))
	assert.Nil(t, a.status)
}

func runMaybe(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
