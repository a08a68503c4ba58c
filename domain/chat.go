package domain

// Role tags the speaker of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one history entry sent to the stylist assistant.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
