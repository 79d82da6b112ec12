package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answer_engine.go -package=mocks lawadvisor-ai/internal/service AnswerEngine
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService lawadvisor-ai/internal/service ChatService

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"lawadvisor-ai/internal/agent"
	"lawadvisor-ai/internal/contextutil"
	"lawadvisor-ai/internal/storage"
)

// maxTitleRunes bounds the session title derived from the first question.
const maxTitleRunes = 80

// AnswerEngine is the reasoning pipeline as the service layer consumes it.
type AnswerEngine interface {
	Run(ctx context.Context, req agent.Request) agent.Result
}

// AskRequest represents a chat request in the domain layer.
type AskRequest struct {
	// SessionSlug identifies an existing conversation. Empty starts a new one.
	SessionSlug string
	Question    string
	// LawContext optionally pins a specific law document the conversation
	// concerns; it is passed to the pipeline verbatim.
	LawContext string
}

// AskResponse represents a chat response in the domain layer.
type AskResponse struct {
	SessionSlug string
	Answer      string
	Sources     []string
	Trace       []string
}

// MessageView is one persisted turn as exposed to the HTTP layer.
type MessageView struct {
	Sender    string
	Content   string
	Sources   []string
	CreatedAt string
}

// ChatService provides the conversational question-answering surface.
type ChatService interface {
	// Ask answers a legal question within a session, persisting both turns.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
	// History returns the full message list of a session, oldest first.
	History(ctx context.Context, sessionSlug string) ([]MessageView, error)
}

// chatService implements ChatService.
type chatService struct {
	engine       AnswerEngine
	sessions     storage.SessionStore
	messages     storage.MessageStore
	historyLimit int
	logger       *slog.Logger
}

// NewChatService creates a new ChatService. historyLimit bounds the recent
// history window handed to the pipeline.
func NewChatService(engine AnswerEngine, sessions storage.SessionStore, messages storage.MessageStore, historyLimit int) ChatService {
	return &chatService{
		engine:       engine,
		sessions:     sessions,
		messages:     messages,
		historyLimit: historyLimit,
		logger:       slog.Default(),
	}
}

// Ask resolves the session, builds the bounded history window, runs the
// pipeline, and persists both turns. The pipeline itself never fails; only
// validation and persistence can surface an error here.
func (s *chatService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in chat request")
		return AskResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}

	session, err := s.resolveSession(ctx, req.SessionSlug)
	if err != nil {
		return AskResponse{}, err
	}

	recent, err := s.messages.RecentBySession(ctx, session.ID, s.historyLimit)
	if err != nil {
		return AskResponse{}, WrapError(err, "failed to load chat history")
	}

	history := make([]agent.Turn, 0, len(recent))
	for _, msg := range recent {
		history = append(history, agent.Turn{Speaker: msg.Sender, Text: msg.Content})
	}

	result := s.engine.Run(ctx, agent.Request{
		Query:      question,
		History:    history,
		LawContext: req.LawContext,
	})

	// Persistence happens strictly after the pipeline returns.
	userMsg := &storage.Message{
		SessionID: session.ID,
		Sender:    storage.SenderUser,
		Content:   question,
	}
	if err := s.messages.Append(ctx, userMsg); err != nil {
		return AskResponse{}, WrapError(err, "failed to persist user message")
	}

	assistantMsg := &storage.Message{
		SessionID: session.ID,
		Sender:    storage.SenderAssistant,
		Content:   result.Answer,
		Sources:   result.Sources,
	}
	if err := s.messages.Append(ctx, assistantMsg); err != nil {
		return AskResponse{}, WrapError(err, "failed to persist assistant message")
	}

	if session.Title == "" {
		if err := s.sessions.SetTitle(ctx, session.ID, truncateTitle(question)); err != nil {
			logger.WarnContext(ctx, "failed to set session title", "error", err)
		}
	}

	logger.InfoContext(ctx, "chat request processed",
		"session", session.Slug,
		"question_length", len(question),
		"sources", len(result.Sources),
	)

	return AskResponse{
		SessionSlug: session.Slug,
		Answer:      result.Answer,
		Sources:     result.Sources,
		Trace:       result.Trace,
	}, nil
}

// History returns the full message list of a session, oldest first.
func (s *chatService) History(ctx context.Context, sessionSlug string) ([]MessageView, error) {
	session, err := s.sessions.GetBySlug(ctx, strings.TrimSpace(sessionSlug))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, WrapError(err, "failed to load session")
	}

	messages, err := s.messages.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, WrapError(err, "failed to load messages")
	}

	views := make([]MessageView, 0, len(messages))
	for _, msg := range messages {
		views = append(views, MessageView{
			Sender:    msg.Sender,
			Content:   msg.Content,
			Sources:   msg.Sources,
			CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return views, nil
}

// resolveSession loads the referenced session or creates a new one when no
// slug is given. An unknown slug is an error rather than a silent new
// session, so clients notice lost conversations.
func (s *chatService) resolveSession(ctx context.Context, slug string) (*storage.ChatSession, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		session, err := s.sessions.Create(ctx)
		if err != nil {
			return nil, WrapError(err, "failed to create session")
		}
		return session, nil
	}

	session, err := s.sessions.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, WrapError(err, "failed to load session")
	}
	return session, nil
}

func truncateTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= maxTitleRunes {
		return question
	}
	return string(runes[:maxTitleRunes])
}
