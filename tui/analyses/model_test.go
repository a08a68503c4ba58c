package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesense/stylesense/domain"
	"github.com/stylesense/stylesense/infra/logging"
	"github.com/stylesense/stylesense/tui/common"
)

func init() { logging.Discard(logrus.StandardLogger()) }

type stubAnalyses struct {
	items     []domain.Analysis
	toggleErr error
	deleteErr error
	toggled   []string
	tags      [][]string
	deleted   []string
}

func (s *stubAnalyses) Analyze(context.Context, string, string) (domain.Analysis, error) {
	return domain.Analysis{}, nil
}
func (s *stubAnalyses) Get(context.Context, string) (domain.Analysis, error) {
	return domain.Analysis{}, nil
}
func (s *stubAnalyses) List(context.Context, int, int) ([]domain.Analysis, int, error) {
	return s.items, len(s.items), nil
}
func (s *stubAnalyses) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}
func (s *stubAnalyses) TogglePublic(_ context.Context, id string, tags []string) error {
	s.toggled = append(s.toggled, id)
	s.tags = append(s.tags, tags)
	return s.toggleErr
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func loaded(t *testing.T, svc *stubAnalyses) Model {
	t.Helper()
	m := New(svc, nil, time.Second)
	m, _ = m.Update(m.fetch()())
	require.Len(t, m.Items(), len(svc.items))
	return m
}

func sample() []domain.Analysis {
	return []domain.Analysis{
		{ID: "a1", StyleDescription: "Weekend denim", Score: 7.5, Tags: []string{"denim"}},
		{ID: "a2", StyleDescription: "Office navy", Score: 9, Public: true},
	}
}

func TestEnter_OpensChatForSelected(t *testing.T) {
	m := loaded(t, &stubAnalyses{items: sample()})
	m, _ = m.Update(keyRune('j'))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(OpenChatMsg)
	require.True(t, ok)
	assert.Equal(t, "a2", msg.Analysis.ID)
}

func TestPublish_TogglesAfterSuccess(t *testing.T) {
	svc := &stubAnalyses{items: sample()}
	m := loaded(t, svc)

	m, cmd := m.Update(keyRune('p'))
	require.NotNil(t, cmd)
	assert.False(t, m.Items()[0].Public, "flag flips only after the server agrees")

	m, cmd = m.Update(cmd())
	assert.True(t, m.Items()[0].Public)
	assert.Equal(t, []string{"denim"}, svc.tags[0])
	assert.Equal(t, common.Notice{Text: "Shared to the community!"}, cmd())
}

func TestPublish_FailureKeepsFlag(t *testing.T) {
	m := loaded(t, &stubAnalyses{items: sample(), toggleErr: errors.New("403")})
	m, cmd := m.Update(keyRune('p'))
	m, cmd = m.Update(cmd())
	assert.False(t, m.Items()[0].Public)
	assert.True(t, cmd().(common.Notice).Err)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	svc := &stubAnalyses{items: sample()}
	m := loaded(t, svc)

	m, cmd := m.Update(keyRune('d'))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Delete this analysis?")

	m, cmd = m.Update(keyRune('n'))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.deleted)

	m, _ = m.Update(keyRune('d'))
	m, cmd = m.Update(keyRune('y'))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, []string{"a1"}, svc.deleted)
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "a2", m.Items()[0].ID)
}

func TestDelete_FailureKeepsItem(t *testing.T) {
	m := loaded(t, &stubAnalyses{items: sample(), deleteErr: domain.ErrNotFound})
	m, _ = m.Update(keyRune('d'))
	m, cmd := m.Update(keyRune('y'))
	m, cmd = m.Update(cmd())
	assert.Len(t, m.Items(), 2)
	assert.True(t, cmd().(common.Notice).Err)
}

func TestView_ShowsDetailOfSelected(t *testing.T) {
	items := sample()
	items[0].Suggestions = []string{"Roll the cuffs"}
	m := loaded(t, &stubAnalyses{items: items})
	view := m.View()
	assert.Contains(t, view, "7.5/10")
	assert.Contains(t, view, "Roll the cuffs")
	assert.Contains(t, view, "#denim")
}

func TestRefresh_IgnoresSupersededResponse(t *testing.T) {
	m := loaded(t, &stubAnalyses{items: sample()})
	m, _ = m.Update(keyRune('r'))
	m, _ = m.Update(keyRune('r'))

	fresh := []domain.Analysis{{ID: "a3", StyleDescription: "Linen summer"}}
	m, _ = m.Update(LoadedMsg{Analyses: fresh, Total: 1, ReqSeq: 2})
	m, _ = m.Update(LoadedMsg{Analyses: sample(), Total: 2, ReqSeq: 1})

	assert.Equal(t, fresh, m.Items())
	assert.Contains(t, m.View(), "Linen summer")
}
