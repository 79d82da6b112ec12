package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lawadvisor-ai/internal/handlers"
	"lawadvisor-ai/internal/service"
	"lawadvisor-ai/internal/service/mocks"
)

func newSessionsRouter(chatService service.ChatService) http.Handler {
	r := chi.NewRouter()
	sessionsHandler := handlers.NewSessionsHandler(chatService)
	transcriptHandler := handlers.NewTranscriptHandler(chatService)
	r.Get("/api/sessions/{slug}/messages", sessionsHandler.Messages)
	r.Method(http.MethodGet, "/api/sessions/{slug}/transcript", transcriptHandler)
	return r
}

func TestSessionsHandlerReturnsMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	chatService := mocks.NewMockChatService(ctrl)
	chatService.EXPECT().
		History(gomock.Any(), "abc").
		Return([]service.MessageView{
			{Sender: "User", Content: "câu hỏi", Sources: []string{}, CreatedAt: "2025-11-03 09:30:00"},
			{Sender: "AI", Content: "trả lời", Sources: []string{"Bộ luật Dân sự"}, CreatedAt: "2025-11-03 09:30:05"},
		}, nil)

	router := newSessionsRouter(chatService)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/abc/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.MessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp.SessionSlug)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "AI", resp.Messages[1].Sender)
	assert.Equal(t, []string{"Bộ luật Dân sự"}, resp.Messages[1].Sources)
}

func TestSessionsHandlerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	chatService := mocks.NewMockChatService(ctrl)
	chatService.EXPECT().
		History(gomock.Any(), "missing").
		Return(nil, service.ErrSessionNotFound)

	router := newSessionsRouter(chatService)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTranscriptHandlerRendersHTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	chatService := mocks.NewMockChatService(ctrl)
	chatService.EXPECT().
		History(gomock.Any(), "abc").
		Return([]service.MessageView{
			{Sender: "User", Content: "Trộm cắp bị phạt thế nào?", CreatedAt: "2025-11-03 09:30:00"},
			{Sender: "AI", Content: "Theo **Điều 173**...", Sources: []string{"Điều 173 (Bộ luật Hình sự)"}, CreatedAt: "2025-11-03 09:30:05"},
		}, nil)

	router := newSessionsRouter(chatService)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/abc/transcript", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	// Markdown in the stored answer must come out as HTML.
	assert.Contains(t, body, "<strong>Điều 173</strong>")
	assert.Contains(t, body, "Điều 173 (Bộ luật Hình sự)")
	if !strings.Contains(body, "<h1") {
		t.Errorf("transcript missing page heading: %s", body)
	}
}

func TestTranscriptHandlerNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	chatService := mocks.NewMockChatService(ctrl)
	chatService.EXPECT().
		History(gomock.Any(), "missing").
		Return(nil, service.ErrSessionNotFound)

	router := newSessionsRouter(chatService)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing/transcript", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
