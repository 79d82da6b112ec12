package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"lawadvisor-ai/internal/agent/mocks"
)

func TestExtractQuestion(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"plain question",
			"Ly hôn đơn phương cần điều kiện gì?",
			"Ly hôn đơn phương cần điều kiện gì?",
		},
		{
			"current question marker",
			"Lịch sử chat:\nUser: xin chào\nCâu hỏi hiện tại: Điều 56 nội dung là gì?",
			"Điều 56 nội dung là gì?",
		},
		{
			"question marker",
			"Ngữ cảnh luật:\nTiêu đề: Luật Đất đai\nCâu hỏi: Sổ đỏ đứng tên ai?",
			"Sổ đỏ đứng tên ai?",
		},
		{
			"boilerplate prefix stripped",
			"Mức phạt nồng độ cồn là bao nhiêu? Dựa trên văn bản được cung cấp hãy trả lời.",
			"Mức phạt nồng độ cồn là bao nhiêu?",
		},
		{
			"multi line falls back to first line",
			"Trộm cắp tài sản bị xử lý thế nào?\nthêm một dòng nữa",
			"Trộm cắp tài sản bị xử lý thế nào?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractQuestion(tt.query); got != tt.want {
				t.Errorf("extractQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLawContext(t *testing.T) {
	query := "Ngữ cảnh luật:\nTiêu đề: Luật Hôn nhân và Gia đình\nNội dung: Điều 56...\nCâu hỏi: Điều 56 nói gì?"

	lawCtx, ok := extractLawContext(query)
	if !ok {
		t.Fatal("extractLawContext() ok = false, want true")
	}
	if !strings.HasPrefix(lawCtx, "Ngữ cảnh luật:") {
		t.Errorf("law context missing marker prefix: %q", lawCtx)
	}
	if !strings.Contains(lawCtx, "Tiêu đề: Luật Hôn nhân và Gia đình") {
		t.Errorf("law context missing title: %q", lawCtx)
	}
	if strings.Contains(lawCtx, "Câu hỏi:") {
		t.Errorf("law context should stop before the question section: %q", lawCtx)
	}
}

func TestExtractLawContextStopsBeforeCurrentQuestion(t *testing.T) {
	query := "Ngữ cảnh luật:\nTiêu đề: Luật Hôn nhân và Gia đình\nNội dung: Điều 56...\nCâu hỏi hiện tại: Điều 56 nói gì?"

	lawCtx, ok := extractLawContext(query)
	if !ok {
		t.Fatal("extractLawContext() ok = false, want true")
	}
	if strings.Contains(lawCtx, "Câu hỏi hiện tại:") {
		t.Errorf("law context should stop before the question section: %q", lawCtx)
	}
	if !strings.Contains(lawCtx, "Nội dung: Điều 56...") {
		t.Errorf("law context missing document content: %q", lawCtx)
	}
}

func TestExtractLawContextAbsent(t *testing.T) {
	if _, ok := extractLawContext("một câu hỏi bình thường"); ok {
		t.Error("extractLawContext() ok = true for query without marker")
	}
}

func TestContextualizeWithoutHistorySkipsRewrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	// No EXPECT: the rewrite must not be invoked without history.

	p := newTestPipeline(completer, nil, nil)
	st := &State{Query: "Ly hôn cần giấy tờ gì?"}
	p.contextualize(context.Background(), st)

	if st.StandaloneQuery != "Ly hôn cần giấy tờ gì?" {
		t.Errorf("StandaloneQuery = %q, want original question", st.StandaloneQuery)
	}
}

func TestContextualizeRewritesWithHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return("Thủ tục ly hôn đơn phương gồm những bước nào?", nil)

	p := newTestPipeline(completer, nil, nil)
	st := &State{
		Query:       "Vậy thủ tục gồm những bước nào?",
		ChatHistory: "User: Tôi muốn ly hôn đơn phương\nAI: Bạn có quyền yêu cầu...",
	}
	p.contextualize(context.Background(), st)

	if st.StandaloneQuery != "Thủ tục ly hôn đơn phương gồm những bước nào?" {
		t.Errorf("StandaloneQuery = %q, want rewritten question", st.StandaloneQuery)
	}
}

func TestContextualizeRewriteFailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		Return("", errors.New("llm unavailable"))

	p := newTestPipeline(completer, nil, nil)
	st := &State{
		Query:       "Vậy mức phạt là bao nhiêu?",
		ChatHistory: "User: nồng độ cồn khi lái xe",
	}
	p.contextualize(context.Background(), st)

	if st.StandaloneQuery != "Vậy mức phạt là bao nhiêu?" {
		t.Errorf("StandaloneQuery = %q, want extracted question on rewrite failure", st.StandaloneQuery)
	}
}

func TestContextualizeDetectsEmbeddedLawContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	p := newTestPipeline(completer, nil, nil)
	st := &State{
		Query: "Ngữ cảnh luật:\nTiêu đề: Luật Đất đai\nNội dung: Điều 12...\nCâu hỏi: Điều 12 quy định gì?",
	}
	p.contextualize(context.Background(), st)

	if !st.HasLawContext {
		t.Error("HasLawContext = false, want true for embedded context")
	}
	if !strings.Contains(st.LawContext, "Luật Đất đai") {
		t.Errorf("LawContext = %q, want extracted block", st.LawContext)
	}
	if st.Query != "Điều 12 quy định gì?" {
		t.Errorf("Query = %q, want stripped question", st.Query)
	}
}

func TestContextualizeKeepsPresuppliedLawContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	p := newTestPipeline(completer, nil, nil)
	st := &State{
		Query:         "Ngữ cảnh luật: một đoạn khác\nCâu hỏi: Điều 5?",
		HasLawContext: true,
		LawContext:    "Tiêu đề: Luật Gốc",
	}
	p.contextualize(context.Background(), st)

	if st.LawContext != "Tiêu đề: Luật Gốc" {
		t.Errorf("LawContext = %q, pre-supplied context must win", st.LawContext)
	}
}

func TestCleanQuestion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Câu hỏi độc lập", "Câu hỏi độc lập"},
		{"boilerplate stripped", "Mức án là gì? Dựa trên văn bản hãy trả lời", "Mức án là gì?"},
		{"whitespace trimmed", "  có khoảng trắng  ", "có khoảng trắng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanQuestion(tt.in); got != tt.want {
				t.Errorf("cleanQuestion(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
