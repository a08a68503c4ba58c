package stylesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/stylesense/stylesense/domain"
)

// chatService implements app.ChatService.
type chatService struct {
	client *Client
}

// NewChatService creates a ChatService backed by the API.
func NewChatService(client *Client) *chatService {
	return &chatService{client: client}
}

type chatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
}

func (s *chatService) SendMessage(ctx context.Context, analysisID, message string, history []domain.ChatMessage) (string, error) {
	if history == nil {
		history = []domain.ChatMessage{}
	}
	path := fmt.Sprintf("/api/outfit/chat/%s", url.PathEscape(analysisID))

	var out struct {
		Message *string `json:"message"`
	}
	if err := s.client.do(ctx, http.MethodPost, path, chatRequest{Message: message, History: history}, &out); err != nil {
		return "", fmt.Errorf("sending chat message: %w", err)
	}
	if out.Message == nil {
		return "", errors.New("sending chat message: response has no message")
	}
	return sanitizeForTerminal(*out.Message), nil
}
