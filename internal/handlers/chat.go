package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lawadvisor-ai/internal/contextutil"
	"lawadvisor-ai/internal/service"
)

// ChatHandler handles HTTP requests for legal chat queries.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest represents the HTTP request payload for chat queries.
type ChatRequest struct {
	// SessionSlug identifies an existing conversation. Omit to start a new one.
	SessionSlug string `json:"session_slug,omitempty"`
	Question    string `json:"question"`
	// LawContext optionally pins a law document the conversation concerns.
	LawContext string `json:"law_context,omitempty"`
}

// ChatResponse represents the HTTP response payload for chat queries.
type ChatResponse struct {
	SessionSlug string   `json:"session_slug"`
	Answer      string   `json:"answer"`
	Sources     []string `json:"sources"`
	Trace       []string `json:"trace,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.chatService.Ask(ctx, service.AskRequest{
		SessionSlug: req.SessionSlug,
		Question:    req.Question,
		LawContext:  req.LawContext,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ChatResponse{
		SessionSlug: resp.SessionSlug,
		Answer:      resp.Answer,
		Sources:     resp.Sources,
		Trace:       resp.Trace,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *ChatHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := contextutil.LoggerFromContext(r.Context())

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(r.Context(), "chat request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found")
	default:
		logger.ErrorContext(r.Context(), "chat request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process chat request")
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
