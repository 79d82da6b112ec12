package agent

import (
	"context"
	"strings"
)

// Markers callers embed when they assemble a combined prompt. The
// contextualizer strips this scaffolding so downstream stages see only the
// actual question.
const (
	lawContextMarker      = "Ngữ cảnh luật:"
	contentSectionMarker  = "Nội dung:"
	currentQuestionMarker = "Câu hỏi hiện tại:"
	questionMarker        = "Câu hỏi:"
	historySectionMarker  = "Lịch sử chat:"
	boilerplateMarker     = "Dựa trên văn bản"
)

// contextualize derives StandaloneQuery from the raw query and chat history.
// It never fails: any rewrite error falls back to the extracted question, so
// StandaloneQuery is guaranteed non-empty afterwards.
func (p *Pipeline) contextualize(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "contextualize")
	logger := p.getLogger(ctx)

	query := strings.TrimSpace(st.Query)

	// A pre-supplied law context (set on the request) wins over anything
	// embedded in the query text.
	if !st.HasLawContext {
		if strings.Contains(query, lawContextMarker) || strings.Contains(query, contentSectionMarker) {
			st.HasLawContext = true
		}
		if lawCtx, ok := extractLawContext(query); ok {
			st.LawContext = lawCtx
		}
	}

	question := extractQuestion(query)
	st.Query = question

	if strings.TrimSpace(st.ChatHistory) == "" {
		st.StandaloneQuery = question
		return
	}

	reply, err := p.completer.Complete(ctx, renderRewritePrompt(st.ChatHistory, question))
	if err != nil {
		logger.WarnContext(ctx, "standalone rewrite failed, using extracted question", "error", err)
		st.StandaloneQuery = question
		return
	}

	rewritten := cleanQuestion(reply)
	if rewritten == "" {
		rewritten = question
	}
	st.StandaloneQuery = rewritten
}

// extractLawContext pulls the pinned-document block out of a combined prompt.
// The block runs from the marker to the next major section.
func extractLawContext(query string) (string, bool) {
	_, rest, found := strings.Cut(query, lawContextMarker)
	if !found {
		return "", false
	}
	for _, marker := range []string{historySectionMarker, currentQuestionMarker, questionMarker} {
		if idx := strings.Index(rest, marker); idx >= 0 {
			rest = rest[:idx]
		}
	}
	return lawContextMarker + strings.TrimSpace(rest), true
}

// extractQuestion finds the actual question inside a combined prompt.
// Ordered rules, first match wins; an empty result falls back to the input.
func extractQuestion(query string) string {
	var question string
	switch {
	case strings.Contains(query, currentQuestionMarker):
		_, rest, _ := strings.Cut(query, currentQuestionMarker)
		question = firstLine(rest)
	case strings.Contains(query, questionMarker):
		_, rest, _ := strings.Cut(query, questionMarker)
		question = firstLine(rest)
	default:
		before, _, found := strings.Cut(query, boilerplateMarker)
		if found {
			question = strings.TrimSpace(before)
		}
		if question == "" {
			question = firstLine(query)
		}
	}
	if question == "" {
		question = query
	}
	return question
}

// cleanQuestion strips boilerplate from an LLM rewrite before trusting it.
func cleanQuestion(text string) string {
	cleaned, _, found := strings.Cut(text, boilerplateMarker)
	if found {
		cleaned = strings.TrimSpace(cleaned)
	} else {
		cleaned = strings.TrimSpace(text)
	}
	if cleaned == "" {
		cleaned = firstLine(text)
	}
	return cleaned
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(line)
}
