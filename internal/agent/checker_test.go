package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lawadvisor-ai/internal/agent/mocks"
)

func TestCheckWithoutDocumentsIsNoLaw(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	// No EXPECT: with nothing retrieved there is nothing to judge.

	p := newTestPipeline(completer, nil, nil)
	st := &State{StandaloneQuery: "một câu hỏi"}
	p.check(context.Background(), st)

	assert.Equal(t, StatusNoLaw, st.CheckStatus)
}

func TestCheckParsesVerdict(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  CheckStatus
	}{
		{"sufficient", `{"status": "SUFFICIENT", "reason": "đủ căn cứ"}`, StatusSufficient},
		{"missing info", `{"status": "MISSING_INFO", "reason": "thiếu tình tiết"}`, StatusMissingInfo},
		{"no law", `{"status": "NO_LAW", "reason": "không liên quan"}`, StatusNoLaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mocks.NewMockCompleter(ctrl)
			completer.EXPECT().
				CompleteJSON(gomock.Any(), gomock.Any()).
				Return(tt.reply, nil)

			p := newTestPipeline(completer, nil, nil)
			st := &State{
				StandaloneQuery: "trộm cắp tài sản bị phạt thế nào",
				RetrievedDocs: []RetrievedDocument{
					{LawID: "Điều 173", LawName: "Bộ luật Hình sự", Content: "..."},
				},
			}
			p.check(context.Background(), st)

			assert.Equal(t, tt.want, st.CheckStatus)
		})
	}
}

func TestCheckFailsTowardNoLaw(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"llm error", "", errors.New("llm unavailable")},
		{"malformed json", "không phải json", nil},
		{"unknown status", `{"status": "MAYBE"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mocks.NewMockCompleter(ctrl)
			completer.EXPECT().
				CompleteJSON(gomock.Any(), gomock.Any()).
				Return(tt.reply, tt.err)

			p := newTestPipeline(completer, nil, nil)
			st := &State{
				StandaloneQuery: "một câu hỏi",
				RetrievedDocs: []RetrievedDocument{
					{LawID: "Điều 1", LawName: "Bộ luật Dân sự", Content: "..."},
				},
			}
			p.check(context.Background(), st)

			assert.Equal(t, StatusNoLaw, st.CheckStatus)
		})
	}
}

func TestBuildCheckerContext(t *testing.T) {
	docs := []RetrievedDocument{
		{LawID: "Điều 173", LawName: "Bộ luật Hình sự", Content: "người nào trộm cắp..."},
		{LawID: "Điều 174", LawName: "Bộ luật Hình sự", Content: "người nào lừa đảo..."},
	}

	got := buildCheckerContext(docs)
	if !strings.Contains(got, "Văn bản: Điều 173 Bộ luật Hình sự") {
		t.Errorf("checker context missing first document header: %q", got)
	}
	if !strings.Contains(got, "Nội dung: người nào lừa đảo...") {
		t.Errorf("checker context missing second document content: %q", got)
	}
}
