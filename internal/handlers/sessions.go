package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawadvisor-ai/internal/contextutil"
	"lawadvisor-ai/internal/service"
)

// SessionsHandler serves the persisted message history of a session.
type SessionsHandler struct {
	chatService service.ChatService
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(chatService service.ChatService) *SessionsHandler {
	return &SessionsHandler{chatService: chatService}
}

// MessageResponse is one persisted turn in the HTTP response.
type MessageResponse struct {
	Sender    string   `json:"sender"`
	Content   string   `json:"content"`
	Sources   []string `json:"sources"`
	CreatedAt string   `json:"created_at"`
}

// MessagesResponse is the payload of GET /api/sessions/{slug}/messages.
type MessagesResponse struct {
	SessionSlug string            `json:"session_slug"`
	Messages    []MessageResponse `json:"messages"`
}

// Messages handles GET /api/sessions/{slug}/messages.
func (h *SessionsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	views, err := h.chatService.History(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load session history", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load session history")
		return
	}

	messages := make([]MessageResponse, 0, len(views))
	for _, view := range views {
		messages = append(messages, MessageResponse{
			Sender:    view.Sender,
			Content:   view.Content,
			Sources:   view.Sources,
			CreatedAt: view.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MessagesResponse{
		SessionSlug: slug,
		Messages:    messages,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
