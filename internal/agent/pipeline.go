package agent

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks lawadvisor-ai/internal/agent Completer,Embedder

import (
	"context"
	"log/slog"
	"strings"

	"lawadvisor-ai/internal/contextutil"
	"lawadvisor-ai/internal/vectorstore"
)

// Completer is a single-turn completion client.
// This interface is defined from the agent's perspective (consumer-first).
type Completer interface {
	// Complete sends a prompt and returns the raw text reply.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteJSON sends a prompt requesting structured JSON output.
	CompleteJSON(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a fixed-dimensionality vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Request is one pipeline invocation. History is the bounded recent window;
// LawContext carries a caller-pinned document when the conversation already
// concerns a specific law.
type Request struct {
	Query      string
	History    []Turn
	LawContext string
}

// Result is the terminal outcome of a pipeline run. Answer is always a
// coherent natural-language message, never an error string.
type Result struct {
	Answer  string
	Sources []string
	Trace   []string
}

// genericFailureMessage is returned when an unhandled failure escapes a node.
const genericFailureMessage = "Xin lỗi, tôi không thể xử lý yêu cầu này. Bạn vui lòng thử lại sau."

// Pipeline wires the reasoning stages into a fixed state machine:
// contextualize -> route -> retrieve -> check -> (answer | fallback).
// It holds only shared, concurrency-safe clients; all per-request state
// lives in State.
type Pipeline struct {
	completer   Completer
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	threshold   float32
	logger      *slog.Logger
}

// NewPipeline creates a pipeline. threshold is the hard relevance score below
// which retrieval hits are rejected as noise.
func NewPipeline(completer Completer, embedder Embedder, store vectorstore.VectorStore, collection string, threshold float32) *Pipeline {
	return &Pipeline{
		completer:   completer,
		embedder:    embedder,
		vectorStore: store,
		collection:  collection,
		threshold:   threshold,
		logger:      slog.Default(),
	}
}

func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	if l := contextutil.LoggerFromContext(ctx); l != nil {
		return l
	}
	return p.logger
}

// Run executes the pipeline to completion and returns the terminal outcome.
// No stage may let a failure escape; as a last line of defense the whole run
// is wrapped so the caller always receives a coherent message.
func (p *Pipeline) Run(ctx context.Context, req Request) (res Result) {
	logger := p.getLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "pipeline panicked", "panic", r)
			res = Result{Answer: genericFailureMessage, Sources: []string{}}
		}
	}()

	st := &State{
		Query:       req.Query,
		ChatHistory: renderHistory(req.History),
	}
	if strings.TrimSpace(req.LawContext) != "" {
		st.HasLawContext = true
		st.LawContext = req.LawContext
	}

	p.contextualize(ctx, st)
	p.route(ctx, st)
	p.retrieve(ctx, st)
	p.check(ctx, st)

	if st.CheckStatus == StatusSufficient {
		p.answer(ctx, st)
	} else {
		p.fallback(ctx, st)
	}

	if strings.TrimSpace(st.Generation) == "" {
		st.Generation = genericFailureMessage
	}
	if st.Sources == nil {
		st.Sources = []string{}
	}

	logger.InfoContext(ctx, "pipeline completed",
		"intent", st.Intent,
		"check_status", st.CheckStatus,
		"docs", len(st.RetrievedDocs),
		"sources", len(st.Sources),
		"trace", st.Trace,
	)
	if st.ErrorMessage != "" {
		logger.WarnContext(ctx, "pipeline degraded", "error_message", st.ErrorMessage)
	}

	return Result{Answer: st.Generation, Sources: st.Sources, Trace: st.Trace}
}

// renderHistory flattens the recent turns into the "speaker: text" form the
// prompts expect.
func renderHistory(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, turn.Speaker+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}
