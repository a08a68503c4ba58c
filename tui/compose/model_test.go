package compose

import (
	"errors"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEditor struct {
	content string
	readErr error
	cmdErr  error
	subject string
}

func (s *stubEditor) Cmd(_ string, subject string) (*exec.Cmd, string, error) {
	s.subject = subject
	if s.cmdErr != nil {
		return nil, "", s.cmdErr
	}
	return exec.Command("true"), "/tmp/comment.md", nil
}

func (s *stubEditor) ReadContent(string) (string, error) { return s.content, s.readErr }

func TestInline_CtrlDSubmitsForPost(t *testing.T) {
	m := NewInline("p1", "Denim look")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("nice fit")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd)
	assert.Equal(t, DoneMsg{PostID: "p1", Content: "nice fit"}, cmd())
}

func TestInline_EscCancels(t *testing.T) {
	m := NewInline("p1", "")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("draft")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, DoneMsg{PostID: "p1"}, cmd())
}

func TestEditor_PassesSubjectAndReadsContent(t *testing.T) {
	ed := &stubEditor{content: "love the colors"}
	m := NewEditor(ed, "p2", "Office navy")
	require.NotNil(t, m.Init())
	assert.Equal(t, "Office navy", ed.subject)

	_, cmd := m.Update(editorFinishedMsg{tmpPath: "/tmp/comment.md"})
	assert.Equal(t, DoneMsg{PostID: "p2", Content: "love the colors"}, cmd())
}

func TestEditor_Failures(t *testing.T) {
	ed := &stubEditor{cmdErr: errors.New("no temp dir")}
	msg := NewEditor(ed, "p2", "").Init()().(DoneMsg)
	assert.ErrorContains(t, msg.Err, "preparing editor")

	m := NewEditor(&stubEditor{readErr: errors.New("gone")}, "p2", "")
	_, cmd := m.Update(editorFinishedMsg{tmpPath: "x"})
	assert.Error(t, cmd().(DoneMsg).Err)

	_, cmd = m.Update(editorFinishedMsg{err: errors.New("exit 1")})
	assert.ErrorContains(t, cmd().(DoneMsg).Err, "editor")
}

func TestInlineView_ShowsSubjectAndCounter(t *testing.T) {
	m := NewInline("p1", "Weekend denim")
	view := m.View()
	assert.Contains(t, view, "on: Weekend denim")
	assert.Contains(t, view, "0/500 chars")
}
