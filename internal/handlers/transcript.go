package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"lawadvisor-ai/internal/contextutil"
	"lawadvisor-ai/internal/service"
)

// TranscriptHandler renders a session transcript as HTML. Assistant answers
// are markdown; the transcript view turns them into a readable page.
type TranscriptHandler struct {
	chatService service.ChatService
	markdown    goldmark.Markdown
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(chatService service.ChatService) *TranscriptHandler {
	return &TranscriptHandler{
		chatService: chatService,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// ServeHTTP handles GET /api/sessions/{slug}/transcript.
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	views, err := h.chatService.History(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load session transcript", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load session transcript")
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(buildTranscriptMarkdown(slug, views)), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render transcript", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render transcript")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}

// buildTranscriptMarkdown lays out the conversation as a markdown document,
// one section per turn with cited sources underneath assistant answers.
func buildTranscriptMarkdown(slug string, views []service.MessageView) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Phiên tư vấn %s\n\n", slug))
	for _, view := range views {
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", view.Sender, view.CreatedAt))
		sb.WriteString(view.Content)
		sb.WriteString("\n\n")
		if len(view.Sources) > 0 {
			sb.WriteString("**Nguồn tham khảo:**\n\n")
			for _, source := range view.Sources {
				sb.WriteString(fmt.Sprintf("- %s\n", source))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
