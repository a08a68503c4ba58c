package community

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesense/stylesense/core/reaction"
	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/stylesense"
	"github.com/stylesense/stylesense/tui/common"
)

func TestPostsLoaded_BuildsReactionStateFromMembership(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1", "u1", "u2"), makePost("p2", "u3", "u1"))

	st, ok := m.State("p1")
	require.True(t, ok)
	assert.Equal(t, reaction.State{Liked: true, LikeCount: 2, DislikeCount: 1}, st)

	st, _ = m.State("p2")
	assert.Equal(t, reaction.State{Disliked: true, LikeCount: 1, DislikeCount: 1}, st)
}

func TestLike_AppliesImmediatelyAndConfirms(t *testing.T) {
	svc := &stubCommunity{}
	m := newLoaded(svc, makePost("p1"))

	m, cmd := m.Update(keyRune('l'))
	require.NotNil(t, cmd)
	st, _ := m.State("p1")
	assert.Equal(t, reaction.State{Liked: true, LikeCount: 1}, st)

	m, cmd = m.Update(cmd())
	assert.Nil(t, cmd)
	assert.Equal(t, []domain.Reaction{domain.ReactionLike}, svc.reacts)
	st, _ = m.State("p1")
	assert.Equal(t, reaction.State{Liked: true, LikeCount: 1}, st)
}

func TestDislike_FailureRestoresExactPriorState(t *testing.T) {
	svc := &stubCommunity{reactErr: errors.New("boom")}
	m := newLoaded(svc, makePost("p1", "u1", "u9"))
	before, _ := m.State("p1")

	m, cmd := m.Update(keyRune('x'))
	mid, _ := m.State("p1")
	assert.Equal(t, reaction.State{Disliked: true, DislikeCount: 2}, mid)

	m, cmd = m.Update(cmd())
	after, _ := m.State("p1")
	assert.Equal(t, before, after)

	require.NotNil(t, cmd)
	notice, ok := cmd().(common.Notice)
	require.True(t, ok)
	assert.True(t, notice.Err)
	assert.Equal(t, "Failed to dislike post.", notice.Text)
}

func TestReact_SecondToggleWhileInFlightIsRejected(t *testing.T) {
	svc := &stubCommunity{}
	m := newLoaded(svc, makePost("p1"))

	m, confirm := m.Update(keyRune('l'))
	m, cmd := m.Update(keyRune('x'))

	notice, ok := cmd().(common.Notice)
	require.True(t, ok)
	assert.False(t, notice.Err)
	st, _ := m.State("p1")
	assert.Equal(t, reaction.State{Liked: true, LikeCount: 1}, st)

	m, _ = m.Update(confirm())
	_, next := m.Update(keyRune('x'))
	assert.NotNil(t, next)
}

func TestRefreshWhileInFlight_KeepsLocalStateForSettlement(t *testing.T) {
	svc := &stubCommunity{reactErr: errors.New("timeout")}
	m := newLoaded(svc, makePost("p1"))

	m, confirm := m.Update(keyRune('l'))
	m, _ = m.Update(PostsLoadedMsg{Posts: []domain.Post{makePost("p1", "u7")}})

	st, _ := m.State("p1")
	assert.True(t, st.Liked, "in-flight reaction survives the refresh")

	m, _ = m.Update(confirm())
	st, _ = m.State("p1")
	assert.Equal(t, reaction.State{}, st)
}

func TestPostsLoaded_IgnoresStaleRequest(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1"))
	m, _ = m.Update(keyRune('r'))

	m, _ = m.Update(PostsLoadedMsg{Posts: []domain.Post{makePost("old")}, ReqSeq: 0})
	_, ok := m.State("old")
	assert.False(t, ok)

	m, _ = m.Update(PostsLoadedMsg{Posts: []domain.Post{makePost("new")}, ReqSeq: 1})
	_, ok = m.State("new")
	assert.True(t, ok)
}

func TestFeedError_ShowsRetry(t *testing.T) {
	m := New(&stubCommunity{}, me, nil, 2, 0)
	m, _ = m.Update(PostsErrorMsg{Err: errors.New("offline")})
	assert.Contains(t, m.View(), "Error: offline")
	assert.Contains(t, m.View(), "Press r to retry.")
}

func TestDownNearEnd_LoadsNextPage(t *testing.T) {
	svc := &stubCommunity{posts: []domain.Post{makePost("p3")}}
	m := newLoaded(svc, makePost("p1"), makePost("p2"))

	m, cmd := m.Update(keyRune('j'))
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(PostsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 2, loaded.Skip)

	m, _ = m.Update(msg)
	assert.Len(t, m.posts, 3)
	assert.False(t, m.hasMore)

	_, cmd = m.Update(keyRune('j'))
	assert.Nil(t, cmd)
}

func TestCommentKeys_RequestComposer(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1"))

	_, cmd := m.Update(keyRune('c'))
	msg, ok := cmd().(ComposeCommentMsg)
	require.True(t, ok)
	assert.Equal(t, ComposeCommentMsg{PostID: "p1", Subject: "Relaxed denim look p1", UseInline: true}, msg)

	_, cmd = m.Update(keyRune('C'))
	msg = cmd().(ComposeCommentMsg)
	assert.False(t, msg.UseInline)
}

func TestSubmitComment_CanonicalRecord(t *testing.T) {
	server := &domain.Comment{Author: "maya_s", Text: "love it", CreatedAt: now}
	m := newLoaded(&stubCommunity{comment: server}, makePost("p1"))

	m, cmd := m.Update(SubmitCommentMsg{PostID: "p1", Text: "love it"})
	require.NotNil(t, cmd)
	m, cmd = m.Update(cmd())

	assert.Equal(t, []domain.Comment{*server}, m.Comments("p1"))
	assert.Equal(t, common.Notice{Text: "Comment added!"}, cmd())
}

func TestSubmitComment_AmbiguousResponseSynthesizesWithDisplayName(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1"))

	m, cmd := m.Update(SubmitCommentMsg{PostID: "p1", Text: "great colors"})
	m, _ = m.Update(cmd())

	assert.Equal(t, []domain.Comment{{Author: "maya", Text: "great colors", CreatedAt: now}}, m.Comments("p1"))
}

type fixedToken string

func (f fixedToken) AccessToken() (string, error) { return string(f), nil }

func TestSubmitComment_AcceptedWithPlainTextBodySynthesizes(t *testing.T) {
	for _, body := range []string{"OK", `{"data":"Comment added"}`, `{"data":{}}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, body)
		}))
		client := stylesense.NewClient(srv.URL, fixedToken("tok"), time.Second)
		m := newLoaded(&stubCommunity{}, makePost("p1"))
		m.community = stylesense.NewCommunityService(client)

		m, cmd := m.Update(SubmitCommentMsg{PostID: "p1", Text: "great colors"})
		posted := cmd().(CommentPostedMsg)
		srv.Close()
		require.NoError(t, posted.Posted.Err, body)
		assert.Nil(t, posted.Posted.Comment, body)

		m, cmd = m.Update(posted)
		assert.Equal(t, []domain.Comment{{Author: "maya", Text: "great colors", CreatedAt: now}}, m.Comments("p1"), body)
		assert.Equal(t, common.Notice{Text: "Comment added!"}, cmd(), body)
	}
}

func TestSubmitComment_FailureAppendsNothing(t *testing.T) {
	m := newLoaded(&stubCommunity{commentErr: fmt.Errorf("posting: %w", domain.ErrUnauthorized)}, makePost("p1"))

	m, cmd := m.Update(SubmitCommentMsg{PostID: "p1", Text: "hi"})
	m, cmd = m.Update(cmd())

	assert.Empty(t, m.Comments("p1"))
	notice := cmd().(common.Notice)
	assert.True(t, notice.Err)
	assert.True(t, strings.HasPrefix(notice.Text, "Session expired"))
}

func TestSubmitComment_BlankIsNoop(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1"))
	_, cmd := m.Update(SubmitCommentMsg{PostID: "p1", Text: "   "})
	assert.Nil(t, cmd)
}

func TestDetailView_ShowsCommentsAndClosesOnEsc(t *testing.T) {
	p := makePost("p1")
	p.Comments = []domain.Comment{{Author: "ana", Text: "so good", CreatedAt: now.Add(-2 * time.Minute)}}
	m := newLoaded(&stubCommunity{}, p)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.IsInDetailView())
	view := m.View()
	assert.Contains(t, view, "ana")
	assert.Contains(t, view, "so good")
	assert.Contains(t, view, "2m ago")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsInDetailView())
}

func TestView_RendersCountersFromReconciler(t *testing.T) {
	m := newLoaded(&stubCommunity{}, makePost("p1", "u2"))
	m, _ = m.Update(keyRune('l'))
	assert.Contains(t, m.View(), "♥ 2")
	assert.Contains(t, m.View(), "saving")
}
