package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lawadvisor-ai/internal/handlers"
	"lawadvisor-ai/internal/service"
	"lawadvisor-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService    service.ChatService
	VectorStore    vectorstore.VectorStore
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	sessionsHandler := handlers.NewSessionsHandler(deps.ChatService)
	transcriptHandler := handlers.NewTranscriptHandler(deps.ChatService)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Get("/sessions/{slug}/messages", sessionsHandler.Messages)
		r.Method(http.MethodGet, "/sessions/{slug}/transcript", transcriptHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
