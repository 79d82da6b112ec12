package storage

import "time"

// Message sender labels. The history window rendered for the reasoning
// pipeline uses these verbatim as speaker names.
const (
	SenderUser      = "User"
	SenderAssistant = "AI"
)

// ChatSession represents one conversation thread.
type ChatSession struct {
	ID        int
	Slug      string // UUID, the public identifier
	Title     string // first user question, set once
	CreatedAt time.Time
}

// Message represents one turn persisted in a session.
type Message struct {
	ID        int64
	SessionID int
	Sender    string
	Content   string
	Sources   []string // display-ready citations, stored as JSON
	CreatedAt time.Time
}
