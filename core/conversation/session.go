// Package conversation holds the transcript of one stylist chat and enforces
// that at most one request is outstanding at a time.
package conversation

import (
	"context"
	"strings"

	"github.com/stylesense/stylesense/domain"
)

// Greeting opens every session. It is shown to the user but never sent as history.
const Greeting = "Hi! I can help you with styling advice for this outfit. Ask me anything!"

// Turn is one message in the transcript.
type Turn struct {
	Role     domain.Role
	Content  string
	Greeting bool
}

// Sender issues the remote chat call.
type Sender interface {
	SendMessage(ctx context.Context, analysisID, message string, history []domain.ChatMessage) (string, error)
}

// Exchange is the single outstanding request of a session.
type Exchange struct {
	AnalysisID string
	Message    string
	History    []domain.ChatMessage
	seq        uint64
}

// Send performs exactly one remote call for the exchange.
func (e Exchange) Send(ctx context.Context, s Sender) Reply {
	text, err := s.SendMessage(ctx, e.AnalysisID, e.Message, e.History)
	return Reply{Exchange: e, Text: text, Err: err}
}

// Reply is the completion of an Exchange.
type Reply struct {
	Exchange Exchange
	Text     string
	Err      error
}

// Session is the chat thread for one analysis.
type Session struct {
	analysisID string
	transcript []Turn
	pending    bool
	seq        uint64
}

// NewSession opens a session seeded with the greeting.
func NewSession(analysisID string) *Session {
	return &Session{
		analysisID: analysisID,
		transcript: []Turn{{Role: domain.RoleAssistant, Content: Greeting, Greeting: true}},
	}
}

// AnalysisID returns the analysis being discussed.
func (s *Session) AnalysisID() string { return s.analysisID }

// Pending reports whether a request is outstanding.
func (s *Session) Pending() bool { return s.pending }

// Transcript returns a copy of the turns in chat order.
func (s *Session) Transcript() []Turn {
	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// History returns the conversational turns as wire messages.
func (s *Session) History() []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(s.transcript))
	for _, t := range s.transcript {
		if t.Greeting || t.Role == domain.RoleSystem {
			continue
		}
		out = append(out, domain.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return out
}

// Submit appends the user's turn and returns the exchange to send.
// Blank text and submissions while pending change nothing.
func (s *Session) Submit(text string) (Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, domain.ErrEmptyMessage
	}
	if s.pending {
		return Exchange{}, domain.ErrSessionBusy
	}
	s.transcript = append(s.transcript, Turn{Role: domain.RoleUser, Content: text})
	s.pending = true
	s.seq++
	return Exchange{
		AnalysisID: s.analysisID,
		Message:    text,
		History:    s.History(),
		seq:        s.seq,
	}, nil
}

// Resolve records the reply. A failed reply leaves the user's turn in place.
// It reports false when the reply does not belong to the outstanding exchange.
func (s *Session) Resolve(r Reply) bool {
	if !s.pending || r.Exchange.seq != s.seq || r.Exchange.AnalysisID != s.analysisID {
		return false
	}
	defer func() { s.pending = false }()
	if r.Err != nil {
		return true
	}
	s.transcript = append(s.transcript, Turn{Role: domain.RoleAssistant, Content: r.Text})
	return true
}
