package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/termchat/termchat/internal/llm"
)

// SessionStatus represents the current state of a session.
type SessionStatus string

const (
	StatusActive      SessionStatus = "active"      // Session is open/current (may or may not be streaming)
	StatusComplete    SessionStatus = "complete"    // Session finished normally
	StatusError       SessionStatus = "error"       // Session ended with an error
	StatusInterrupted SessionStatus = "interrupted" // Session was cancelled by user
)

// Session represents a chat session stored in the database.
type Session struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Summary      string        `json:"summary,omitempty"` // First user message or auto-generated
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	InputTokens  int           `json:"input_tokens,omitempty"`
	OutputTokens int           `json:"output_tokens,omitempty"`
	Status       SessionStatus `json:"status,omitempty"`
}

// Message represents one message in a session. Content is the full raw
// text of the turn; during streaming it grows monotonically and is only
// persisted once the turn settles. StreamError records a mid-stream
// failure so partial output stays attributed to the turn that produced it.
type Message struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Role        llm.Role  `json:"role"`
	Content     string    `json:"content"`
	StreamError string    `json:"stream_error,omitempty"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Sequence    int       `json:"sequence"`
}

// NewMessage creates a Message from an llm.Message. Sequence -1 asks the
// store to allocate the next sequence number.
func NewMessage(sessionID string, msg llm.Message, sequence int) *Message {
	return &Message{
		SessionID: sessionID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: time.Now(),
		Sequence:  sequence,
	}
}

// ToLLMMessage converts a Message back to an llm.Message.
func (m *Message) ToLLMMessage() llm.Message {
	return llm.Message{Role: m.Role, Content: m.Content}
}

// SessionSummary is a lightweight view of a session for listing.
type SessionSummary struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	MessageCount int           `json:"message_count"`
	InputTokens  int           `json:"input_tokens,omitempty"`
	OutputTokens int           `json:"output_tokens,omitempty"`
	Status       SessionStatus `json:"status,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ListOptions configures session listing.
type ListOptions struct {
	Provider string        // Filter by provider
	Model    string        // Filter by model
	Status   SessionStatus // Filter by status
	Limit    int           // Max results (0 = use default)
	Offset   int           // Pagination offset
}

// SearchResult represents a full-text search match.
type SearchResult struct {
	SessionID   string    `json:"session_id"`
	MessageID   int64     `json:"message_id"`
	SessionName string    `json:"session_name"`
	Summary     string    `json:"summary"`
	Snippet     string    `json:"snippet"` // Matched text snippet
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the first segment of a UUID, enough to identify a
// session in listings and accept as a command argument prefix.
func ShortID(id string) string {
	if idx := strings.Index(id, "-"); idx != -1 {
		return id[:idx]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TruncateSummary returns the first line of content, truncated to 100 chars.
func TruncateSummary(content string) string {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "\n"); idx != -1 {
		content = content[:idx]
	}
	if len(content) > 100 {
		content = content[:97] + "..."
	}
	return content
}
