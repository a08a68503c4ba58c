package app

import (
	"context"

	"github.com/stylesense/stylesense/domain"
)

// ChatService talks to the stylist assistant about one analysis.
type ChatService interface {
	// SendMessage sends message with the conversation so far and returns the reply text.
	SendMessage(ctx context.Context, analysisID, message string, history []domain.ChatMessage) (string, error)
}
