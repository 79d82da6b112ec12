package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_message_store.go -package=mocks lawadvisor-ai/internal/storage MessageStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// MessageStore defines the interface for message storage operations.
type MessageStore interface {
	// Append persists a message at the end of a session.
	Append(ctx context.Context, msg *Message) error
	// RecentBySession returns the last limit messages of a session,
	// oldest first. This is the bounded history window the reasoning
	// pipeline sees.
	RecentBySession(ctx context.Context, sessionID, limit int) ([]Message, error)
	// ListBySession returns all messages of a session, oldest first.
	ListBySession(ctx context.Context, sessionID int) ([]Message, error)
}

// MessageRepo provides methods for message operations.
// It implements the MessageStore interface.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Append persists a message at the end of a session.
func (r *MessageRepo) Append(ctx context.Context, msg *Message) error {
	sources := msg.Sources
	if sources == nil {
		sources = []string{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (session_id, sender, content, sources, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.SessionID, msg.Sender, msg.Content, string(sourcesJSON), now.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get message id: %w", err)
	}
	msg.ID = id
	msg.CreatedAt = now
	return nil
}

// RecentBySession returns the last limit messages of a session, oldest first.
func (r *MessageRepo) RecentBySession(ctx context.Context, sessionID, limit int) ([]Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id, sender, content, sources, created_at FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	messages, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}

	// Rows came newest-first; reverse for chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ListBySession returns all messages of a session, oldest first.
func (r *MessageRepo) ListBySession(ctx context.Context, sessionID int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, session_id, sender, content, sources, created_at FROM messages WHERE session_id = ? ORDER BY id ASC",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]Message, error) {
	var messages []Message
	for rows.Next() {
		var msg Message
		var sourcesJSON string
		var createdAtStr string

		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Sender, &msg.Content, &sourcesJSON, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		if err := json.Unmarshal([]byte(sourcesJSON), &msg.Sources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sources: %w", err)
		}

		createdAt, err := parseTimestamp(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
		}
		msg.CreatedAt = createdAt

		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}
