package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_session_store.go -package=mocks lawadvisor-ai/internal/storage SessionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// SessionStore defines the interface for chat session storage operations.
type SessionStore interface {
	// GetBySlug gets a session by its public slug.
	// Returns nil and ErrNotFound if not found.
	GetBySlug(ctx context.Context, slug string) (*ChatSession, error)
	// Create inserts a new session with a generated slug.
	Create(ctx context.Context) (*ChatSession, error)
	// SetTitle sets the session title if it is still empty.
	SetTitle(ctx context.Context, sessionID int, title string) error
}

// SessionRepo provides methods for chat session operations.
// It implements the SessionStore interface.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new SessionRepo.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetBySlug gets a session by its public slug.
func (r *SessionRepo) GetBySlug(ctx context.Context, slug string) (*ChatSession, error) {
	var session ChatSession
	var title sql.NullString
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, slug, title, created_at FROM chat_sessions WHERE slug = ?",
		slug,
	).Scan(&session.ID, &session.Slug, &title, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session.Title = title.String
	session.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}

	return &session, nil
}

// Create inserts a new session with a generated UUID slug.
func (r *SessionRepo) Create(ctx context.Context) (*ChatSession, error) {
	slug := uuid.New().String()
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_sessions (slug, title, created_at) VALUES (?, '', ?)",
		slug, now.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get session id: %w", err)
	}

	return &ChatSession{
		ID:        int(id),
		Slug:      slug,
		CreatedAt: now,
	}, nil
}

// SetTitle sets the session title if it is still empty.
func (r *SessionRepo) SetTitle(ctx context.Context, sessionID int, title string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE chat_sessions SET title = ? WHERE id = ? AND (title IS NULL OR title = '')",
		title, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to set session title: %w", err)
	}
	return nil
}

// parseTimestamp handles the DATETIME formats SQLite may store.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
