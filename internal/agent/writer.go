package agent

import (
	"context"
	"fmt"
	"strings"
)

const (
	// writerApologyMessage replaces the answer when generation itself fails.
	writerApologyMessage = "Xin lỗi, tôi gặp sự cố khi soạn thảo câu trả lời."
	// noEvidenceMessage covers the defensive case of reaching the writer with
	// nothing to cite.
	noEvidenceMessage = "Xin lỗi, tôi không tìm thấy căn cứ pháp lý phù hợp để trả lời câu hỏi này."
)

// answer generates the cited answer from the pinned law context (preferred)
// or the retrieved passages. The prompt forbids citing anything outside the
// supplied context; the source list is computed here, never by the model.
func (p *Pipeline) answer(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "writer")
	logger := p.getLogger(ctx)

	if len(st.RetrievedDocs) == 0 && st.LawContext == "" {
		st.Generation = noEvidenceMessage
		st.Sources = []string{}
		return
	}

	contextText := buildAnswerContext(st)
	question := st.StandaloneQuery
	if question == "" {
		question = st.Query
	}

	reply, err := p.completer.Complete(ctx, renderWriterPrompt(contextText, question))
	if err != nil {
		logger.ErrorContext(ctx, "answer generation failed", "error", err)
		st.ErrorMessage = "writer: " + err.Error()
		st.Generation = writerApologyMessage
		st.Sources = []string{}
		return
	}

	st.Generation = strings.TrimSpace(reply)
	if st.LawContext != "" {
		st.Sources = sourcesFromLawContext(st.LawContext)
	} else {
		st.Sources = FormatSources(st.RetrievedDocs)
	}

	logger.InfoContext(ctx, "answer generated", "answer_length", len(st.Generation), "sources", len(st.Sources))
}

// buildAnswerContext prefers the pinned document verbatim; otherwise it
// frames each retrieved passage with its article number and law name so the
// model can cite precisely.
func buildAnswerContext(st *State) string {
	if st.LawContext != "" {
		return st.LawContext
	}

	blocks := make([]string, 0, len(st.RetrievedDocs))
	for _, doc := range st.RetrievedDocs {
		articleNumber := extractArticleNumber(doc.LawID)
		if articleNumber == "" {
			articleNumber = strings.TrimSpace(doc.LawID)
		}
		lawName := strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(doc.LawName))

		blocks = append(blocks, fmt.Sprintf("Điều %s\nVăn bản: %s\nNội dung:\n%s", articleNumber, lawName, doc.Content))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}
