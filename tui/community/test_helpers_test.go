package community

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/logging"
)

func init() { logging.Discard(logrus.StandardLogger()) }

type stubCommunity struct {
	mu         sync.Mutex
	posts      []domain.Post
	feedErr    error
	reactErr   error
	comment    *domain.Comment
	commentErr error
	reacts     []domain.Reaction
	skips      []int
}

func (s *stubCommunity) Feed(_ context.Context, _ int, skip int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips = append(s.skips, skip)
	return s.posts, s.feedErr
}

func (s *stubCommunity) React(_ context.Context, kind domain.Reaction, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reacts = append(s.reacts, kind)
	return s.reactErr
}

func (s *stubCommunity) PostComment(context.Context, string, string) (*domain.Comment, error) {
	return s.comment, s.commentErr
}

var (
	me  = domain.User{ID: "u1", Username: "maya"}
	now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func makePost(id string, who ...string) domain.Post {
	var likes, dislikes []string
	if len(who) > 0 {
		likes, dislikes = who[:1], who[1:]
	}
	return domain.Post{
		ID:               id,
		StyleDescription: "Relaxed denim look " + id,
		Score:            8,
		Tags:             []string{"denim"},
		Likes:            likes,
		Dislikes:         dislikes,
		CreatedAt:        now.Add(-time.Hour),
	}
}

func newLoaded(svc *stubCommunity, posts ...domain.Post) Model {
	m := New(svc, me, func(f string) string { return "http://localhost:8000/uploads/" + f }, 2, time.Second)
	m.now = func() time.Time { return now }
	m, _ = m.Update(PostsLoadedMsg{Posts: posts})
	return m
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
