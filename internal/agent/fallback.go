package agent

import (
	"context"
	"strings"
)

const (
	// refusalMessage is the hard refusal for NO_LAW. It is a fixed string,
	// never LLM-generated, so the refusal wording stays reviewable.
	refusalMessage = "Xin lỗi, hiện tại cơ sở dữ liệu của tôi chưa có văn bản pháp lý chính xác về vấn đề này. " +
		"Để đảm bảo an toàn pháp lý, tôi xin phép không tự suy đoán. Bạn vui lòng tham vấn luật sư trực tiếp."

	// statusUnknownMessage covers an unrecognized check status and a failed
	// clarification call.
	statusUnknownMessage = "Hệ thống đang gặp sự cố xác định trạng thái. Bạn vui lòng thử lại sau."
)

// contentQuestionKeywords mark definition/content-style questions. A pinned
// document is by construction sufficient context for these even when vector
// retrieval found nothing additional.
var contentQuestionKeywords = []string{
	"nội dung", "là gì", "định nghĩa", "khái niệm", "quy định",
	"quy định gì", "có nội dung gì", "bao gồm", "gồm những gì",
}

// fallback is the non-answer terminal branch: a targeted clarifying question
// when relevant law was found but user facts are missing, or a hard refusal
// when no law was found.
func (p *Pipeline) fallback(ctx context.Context, st *State) {
	st.Trace = append(st.Trace, "fallback")
	logger := p.getLogger(ctx)

	question := st.StandaloneQuery
	if question == "" {
		question = st.Query
	}

	// Pinned document + content question: delegate to the writer.
	if st.HasLawContext && st.LawContext != "" && isContentQuestion(question) {
		logger.InfoContext(ctx, "content question with pinned law context, delegating to writer")
		p.answer(ctx, st)
		return
	}

	if st.CheckStatus == StatusNoLaw || len(st.RetrievedDocs) == 0 {
		st.Generation = refusalMessage
		st.Sources = []string{}
		return
	}

	if st.CheckStatus == StatusMissingInfo {
		contextText := buildClarifyContext(st.RetrievedDocs)
		reply, err := p.completer.Complete(ctx, renderClarifyPrompt(contextText, question))
		if err != nil {
			logger.ErrorContext(ctx, "clarification generation failed", "error", err)
			st.ErrorMessage = "fallback: " + err.Error()
			st.Generation = statusUnknownMessage
			st.Sources = []string{}
			return
		}

		st.Generation = strings.TrimSpace(reply)
		// The partial grounding is still shown so the user can verify it.
		st.Sources = dedupLawNames(st.RetrievedDocs)
		return
	}

	st.Generation = statusUnknownMessage
	st.Sources = []string{}
}

func isContentQuestion(question string) bool {
	lowered := strings.ToLower(question)
	for _, keyword := range contentQuestionKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func buildClarifyContext(docs []RetrievedDocument) string {
	lines := make([]string, 0, len(docs))
	for _, doc := range docs {
		lines = append(lines, "- "+doc.Content)
	}
	return strings.Join(lines, "\n")
}
