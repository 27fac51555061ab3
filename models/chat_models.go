package models

// Message roles understood by the completion service
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in conversation history
type ChatMessage struct {
	Role    string `json:"role"` // "human" or "assistant" as sent by the frontend
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat request
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse represents the response for one chat turn.
// Sources holds at most 2 knowledge titles and Products at most 6
// catalog entries; both are kept non-nil so they serialize as [].
type ChatResponse struct {
	Response      string    `json:"response"`
	Sources       []string  `json:"sources"`
	Products      []Product `json:"products"`
	KnowledgeUsed bool      `json:"knowledgeUsed"`
}

// Message is a single role/content unit sent to the completion service
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}
